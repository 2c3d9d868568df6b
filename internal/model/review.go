// internal/model/review.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// レビューのモデル種別。レガシー(0〜5段階)とFSRS系(1〜4段階)は採点スケールが
// 異なるため、リクエストで明示させて混在を防ぐ。
const (
	ReviewModelLegacy = "legacy"
	ReviewModelFSRS   = "fsrs"
)

// RateCardRequest は採点結果送信リクエストのDTO
type RateCardRequest struct {
	Model   string             `json:"model" validate:"required,oneof=legacy fsrs"`
	Quality *int               `json:"quality,omitempty" validate:"omitempty,min=0,max=5"` // legacy用 (0〜5)
	State   *ModernReviewState `json:"state,omitempty"`                                    // fsrs用 (呼び出し側で計算済み)
}

// ModernReviewState は呼び出し側のFSRS計算エンジンが算出した次状態です。
// この層の責務は検証と永続化のみで、スケジューリング計算は行わない。
type ModernReviewState struct {
	State         CardState `json:"state" validate:"min=0,max=3"`
	Stability     float64   `json:"stability" validate:"min=0"`
	Difficulty    float64   `json:"difficulty"`
	ElapsedDays   int       `json:"elapsed_days" validate:"min=0"`
	ScheduledDays float64   `json:"scheduled_days" validate:"min=0"`
	LearningSteps int       `json:"learning_steps" validate:"min=0"`
	Reps          int       `json:"reps" validate:"min=0"`
	Lapses        int       `json:"lapses" validate:"min=0"`
	Due           int64     `json:"due" validate:"required"`     // epoch ms
	LastReview    *int64    `json:"last_review,omitempty"`       // epoch ms。省略時は now
}

// SetMasteryRequest は習得フラグの明示上書きリクエストのDTO
type SetMasteryRequest struct {
	Mastered *bool `json:"mastered" validate:"required"`
}

// SetMasteryResponse は setMastery の実行結果
type SetMasteryResponse struct {
	Success bool   `json:"success"`
	Action  string `json:"action"` // "mastered" / "reset_to_learning" / "noop"
}

// ResetCardResponse は resetCard の実行結果
type ResetCardResponse struct {
	Success bool `json:"success"`
}

// ReviewWordResponse は復習キューのレスポンスDTO
type ReviewWordResponse struct {
	WordID       uuid.UUID      `json:"word_id"`
	Term         string         `json:"term"`
	Meaning      string         `json:"meaning"` // 正解表示用に含める
	Status       ProgressStatus `json:"status"`
	Streak       int            `json:"streak"`
	NextReviewAt time.Time      `json:"next_review_at"`
}

// VocabBookEntry は単語帳 (vocab book) の1行
type VocabBookEntry struct {
	WordID       uuid.UUID      `json:"word_id"`
	Term         string         `json:"term"`
	Meaning      string         `json:"meaning"`
	Hanja        *string        `json:"hanja,omitempty"`
	Status       ProgressStatus `json:"status"`
	Streak       int            `json:"streak"`
	NextReviewAt *time.Time     `json:"next_review_at,omitempty"`
}

// VocabStats はダッシュボード用の集計
type VocabStats struct {
	Total    int `json:"total"`
	New      int `json:"new"`
	Learning int `json:"learning"`
	Review   int `json:"review"`
	Mastered int `json:"mastered"`
	DueNow   int `json:"due_now"`
}
