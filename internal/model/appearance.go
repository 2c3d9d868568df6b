// internal/model/appearance.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Appearance は単語の特定コース・ユニット内での出現を表します。
// (WordID, CourseID, UnitID) で一意。文脈固有の例文や訳を保持し、
// 単語本体の意味を文脈に応じて上書きできる。
type Appearance struct {
	AppearanceID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"appearance_id"`
	WordID             uuid.UUID `gorm:"type:uuid;not null;index:idx_word_course_unit,unique" json:"word_id"`
	CourseID           uuid.UUID `gorm:"type:uuid;not null;index:idx_word_course_unit,unique" json:"course_id"`
	UnitID             uuid.UUID `gorm:"type:uuid;not null;index:idx_word_course_unit,unique" json:"unit_id"`
	Meaning            *string   `json:"meaning,omitempty"` // 文脈固有の意味 (単語本体の意味を上書き)
	Example            *string   `json:"example,omitempty"`
	ExampleTranslation *string   `json:"example_translation,omitempty"`
	MeaningEn          *string   `json:"meaning_en,omitempty"`
	MeaningZh          *string   `json:"meaning_zh,omitempty"`
	MeaningVi          *string   `json:"meaning_vi,omitempty"`
	MeaningMn          *string   `json:"meaning_mn,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	// 関連 (Preload用)
	Word *Word `gorm:"foreignKey:WordID;references:WordID" json:"-"`
}

func (Appearance) TableName() string {
	return "appearances"
}
