// internal/srs/modern.go
package srs

import (
	"math"
	"time"

	"go_vocab_mastery/internal/model"
)

// ApplyModern は呼び出し側のFSRS計算エンジンが算出した状態オブジェクトを検証し、
// 進捗レコードへそのまま反映します。この層はスケジューリング計算を行わない。
//
// レガシー項目はモダン状態からの派生値として必ず上書きする:
// interval=scheduled_days, streak=reps, nextReviewAt=due, lastReviewedAt=now。
// last_review は呼び出し側が省略した場合 now を採用する。
//
// レガシーのみのレコードに初めてモダン状態が入るときはコールドスタートであり、
// 既存の interval/streak との数値的な整合は取らない (呼び出し側の状態が正)。
func ApplyModern(p *model.LearningProgress, st model.ModernReviewState, now time.Time) error {
	if st.State < model.StateNew || st.State > model.StateRelearning {
		return model.ErrInvalidInput
	}
	if !isFinite(st.Stability) || !isFinite(st.Difficulty) || !isFinite(st.ScheduledDays) {
		return model.ErrInvalidInput
	}
	if st.Stability < 0 || st.ScheduledDays < 0 || st.Reps < 0 || st.Lapses < 0 {
		return model.ErrInvalidInput
	}

	due := time.UnixMilli(st.Due)
	lastReview := now
	if st.LastReview != nil {
		lastReview = time.UnixMilli(*st.LastReview)
	}
	// 不変条件: due は last_review より前に来ない
	if due.Before(lastReview) {
		return model.ErrInvalidInput
	}

	state := st.State
	stability := st.Stability
	difficulty := st.Difficulty

	p.State = &state
	p.Stability = &stability
	p.Difficulty = &difficulty
	p.ElapsedDays = st.ElapsedDays
	p.ScheduledDays = st.ScheduledDays
	p.LearningSteps = st.LearningSteps
	p.Reps = st.Reps
	p.Lapses = st.Lapses
	p.Due = &due
	p.LastReview = &lastReview

	// レガシーミラー (表示・後方互換用の派生値)
	p.Status = DeriveStatus(state, stability)
	p.Interval = st.ScheduledDays
	p.Streak = st.Reps
	p.NextReviewAt = due
	reviewedAt := now
	p.LastReviewedAt = &reviewedAt

	return nil
}

// ForceMastered は習得フラグの明示上書き (mastered=true) を反映します。
// stability を 31日以上へ引き上げるため、レビュー履歴に関係なく
// DeriveStatus の30日ルールで必ず MASTERED に分類される。
func ForceMastered(p *model.LearningProgress, now time.Time) {
	state := model.StateReview
	stability := MasteryStabilityDays + 1
	if p.Stability != nil && *p.Stability > stability {
		stability = *p.Stability
	}

	p.State = &state
	p.Stability = &stability
	p.ScheduledDays = 365
	p.Reps++
	due := now.AddDate(0, 0, 365)
	p.Due = &due
	lastReview := now
	p.LastReview = &lastReview

	p.Status = model.StatusMastered
	p.Interval = 365
	p.Streak = p.Reps
	p.NextReviewAt = due
	reviewedAt := now
	p.LastReviewedAt = &reviewedAt
}

// ResetToLearning は習得フラグ解除 (mastered=false) 時に、既存レコードを
// 学習中の初期状態へ戻します。存在しないレコードへの解除は呼び出し側で
// no-op として扱う。
func ResetToLearning(p *model.LearningProgress, now time.Time) {
	state := model.StateLearning
	stability := 1.0

	p.State = &state
	p.Stability = &stability
	p.ScheduledDays = 1
	p.LearningSteps = 0
	p.Reps = 0
	due := now.AddDate(0, 0, 1)
	p.Due = &due
	lastReview := now
	p.LastReview = &lastReview

	p.Status = model.StatusLearning
	p.Interval = 1
	p.Streak = 0
	p.NextReviewAt = due
	reviewedAt := now
	p.LastReviewedAt = &reviewedAt
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
