// internal/model/vocabimport.go
package model

import "github.com/google/uuid"

// ImportItem は一括インポートの1項目。単語フェーズと出現フェーズの両方の
// 入力を持つ。ポインタのフィールドは「未指定」を表現でき、未指定の入力が
// 既存の値を消すことはない。
type ImportItem struct {
	Term          string  `json:"term" validate:"required,min=1"`
	Meaning       *string `json:"meaning,omitempty"`
	PartOfSpeech  *string `json:"part_of_speech,omitempty"`
	Hanja         *string `json:"hanja,omitempty"`
	Pronunciation *string `json:"pronunciation,omitempty"`
	AudioURL      *string `json:"audio_url,omitempty"`
	Tips          *string `json:"tips,omitempty"`
	MeaningEn     *string `json:"meaning_en,omitempty"`
	MeaningZh     *string `json:"meaning_zh,omitempty"`
	MeaningVi     *string `json:"meaning_vi,omitempty"`
	MeaningMn     *string `json:"meaning_mn,omitempty"`

	CourseID           uuid.UUID `json:"course_id" validate:"required"`
	UnitID             uuid.UUID `json:"unit_id" validate:"required"`
	Example            *string   `json:"example,omitempty"`
	ExampleTranslation *string   `json:"example_translation,omitempty"`
}

// ImportBatchRequest は一括インポートのリクエストDTO
type ImportBatchRequest struct {
	Items []ImportItem `json:"items" validate:"required,min=1,dive"`
}

// ImportItemError は項目単位の失敗の記録
type ImportItemError struct {
	Index int    `json:"index"`
	Term  string `json:"term"`
	Error string `json:"error"`
}

// ImportReport は一括インポートの結果。全体トランザクションは張らず、
// 項目ごとのベストエフォートで処理した結果を集計する。
type ImportReport struct {
	SuccessCount int               `json:"success_count"`
	FailedCount  int               `json:"failed_count"`
	NewWordCount int               `json:"new_word_count"`
	Errors       []ImportItemError `json:"errors"`
}
