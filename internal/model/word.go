// internal/model/word.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Word はマスター辞書の単語エントリを表します。
// Term (表層形) で一意。インポート時は既存レコードへのパッチのみで、重複は作らない。
type Word struct {
	WordID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"word_id"`
	Term          string         `gorm:"not null;uniqueIndex:uq_words_term" json:"term"` // 表層形 (自然キー)
	Meaning       string         `gorm:"not null" json:"meaning"`                        // 基本の意味
	PartOfSpeech  *string        `json:"part_of_speech,omitempty"`
	Hanja         *string        `json:"hanja,omitempty"`
	Pronunciation *string        `json:"pronunciation,omitempty"`
	AudioURL      *string        `json:"audio_url,omitempty"`
	Tips          *string        `json:"tips,omitempty"` // 類義語・反意語・ニュアンスなどの補足
	MeaningEn     *string        `json:"meaning_en,omitempty"`
	MeaningZh     *string        `json:"meaning_zh,omitempty"`
	MeaningVi     *string        `json:"meaning_vi,omitempty"`
	MeaningMn     *string        `json:"meaning_mn,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用

	// 関連 (Preload用)
	Appearances []Appearance `gorm:"foreignKey:WordID;references:WordID" json:"-"`
}

func (Word) TableName() string {
	return "words"
}
