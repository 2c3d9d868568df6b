// internal/model/progress.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ProgressStatus はUI表示用の学習ステータス (レガシー表現)
type ProgressStatus string

const (
	StatusNew      ProgressStatus = "NEW"
	StatusLearning ProgressStatus = "LEARNING"
	StatusReview   ProgressStatus = "REVIEW"
	StatusMastered ProgressStatus = "MASTERED"
)

// CardState はFSRS系モデルの数値ステート
type CardState int

const (
	StateNew        CardState = 0
	StateLearning   CardState = 1
	StateReview     CardState = 2
	StateRelearning CardState = 3
)

// LearningProgress は (UserID, WordID) ごとに1件のスケジューリング状態を表します。
//
// レガシー表現 (Status/Interval/Streak/NextReviewAt) とモダン表現 (State以下) が
// 同居する。State が非NULLのレコードではモダン表現が常に正であり、レガシー項目は
// 表示・後方互換のための派生値としてのみ書き込まれる。
type LearningProgress struct {
	ProgressID uuid.UUID `gorm:"type:uuid;primaryKey" json:"progress_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_user_word,unique" json:"user_id"` // 複合ユニークインデックスの一部
	WordID     uuid.UUID `gorm:"type:uuid;not null;index:idx_user_word,unique" json:"word_id"` // 複合ユニークインデックスの一部

	// --- レガシー表現 ---
	Status         ProgressStatus `gorm:"type:varchar(16);not null;default:'NEW'" json:"status"`
	Interval       float64        `gorm:"not null;default:0" json:"interval"` // 日数 (0.5 = 12時間)
	Streak         int            `gorm:"not null;default:0" json:"streak"`
	LastReviewedAt *time.Time     `json:"last_reviewed_at,omitempty"`
	NextReviewAt   time.Time      `gorm:"not null;index" json:"next_review_at"`

	// --- モダン (FSRS系) 表現。State が非NULLならこちらが正 ---
	State         *CardState `json:"state,omitempty"`
	Stability     *float64   `json:"stability,omitempty"` // 日数
	Difficulty    *float64   `json:"difficulty,omitempty"`
	ElapsedDays   int        `gorm:"not null;default:0" json:"elapsed_days"`
	ScheduledDays float64    `gorm:"not null;default:0" json:"scheduled_days"`
	LearningSteps int        `gorm:"not null;default:0" json:"learning_steps"`
	Reps          int        `gorm:"not null;default:0" json:"reps"`
	Lapses        int        `gorm:"not null;default:0" json:"lapses"`
	Due           *time.Time `json:"due,omitempty"`
	LastReview    *time.Time `json:"last_review,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// GORMのDeletedAtは不要 (リセットは物理削除)

	// 関連 (Preload用)
	Word *Word `gorm:"foreignKey:WordID;references:WordID" json:"-"`
}

func (LearningProgress) TableName() string {
	return "learning_progress"
}
