// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "VocabMastery"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort       = ":8080"
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "json"
	DefaultAppReviewLimit   = 20
	DefaultCacheTTLSeconds  = 300 // 5分
	DefaultCacheCapacity    = 256
	DefaultJWTExpiryMinutes = 60
)
