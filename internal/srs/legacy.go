// internal/srs/legacy.go
package srs

import (
	"time"

	"go_vocab_mastery/internal/model"
)

// レガシーアルゴリズムの定数。quality は 0〜5 の6段階で、4以上を正解扱いとする。
const (
	legacyPassThreshold = 4
	// interval がこの日数を超えたら MASTERED へ遷移する
	legacyMasteryIntervalDays = 30.0
)

// LegacyResult はレガシーアルゴリズムが算出した次の進捗状態です。
type LegacyResult struct {
	Status         model.ProgressStatus
	Interval       float64 // 日数 (0.5 = 12時間サイクル)
	Streak         int
	LastReviewedAt time.Time
	NextReviewAt   time.Time
}

// NextLegacy はレガシー (間隔倍増) アルゴリズムで次の進捗状態を計算します。
// 純粋関数であり、I/Oは行わない。prev が nil なら初回レビューとして扱う。
//
//   - 初回 quality>=4: streak=1, interval=1日, LEARNING
//   - 初回 quality<4 : streak=0, interval=0.5日, NEW
//   - 既存 quality>=4: streak+1, interval×2, interval>30 なら MASTERED それ以外は REVIEW
//   - 既存 quality<4 : streak=0, interval=1日, LEARNING (部分的な引き継ぎはしない完全リセット)
func NextLegacy(prev *model.LearningProgress, quality int, now time.Time) (LegacyResult, error) {
	if quality < 0 || quality > 5 {
		return LegacyResult{}, model.ErrInvalidInput
	}

	res := LegacyResult{LastReviewedAt: now}

	switch {
	case prev == nil && quality >= legacyPassThreshold:
		res.Streak = 1
		res.Interval = 1
		res.Status = model.StatusLearning
	case prev == nil:
		res.Streak = 0
		res.Interval = 0.5
		res.Status = model.StatusNew
	case quality >= legacyPassThreshold:
		res.Streak = prev.Streak + 1
		res.Interval = prev.Interval * 2
		if res.Interval > legacyMasteryIntervalDays {
			res.Status = model.StatusMastered
		} else {
			res.Status = model.StatusReview
		}
	default:
		res.Streak = 0
		res.Interval = 1
		res.Status = model.StatusLearning
	}

	res.NextReviewAt = now.Add(time.Duration(res.Interval * float64(24*time.Hour)))
	return res, nil
}

// ApplyLegacy は計算結果を進捗レコードのレガシー項目へ反映します。
// レガシー経路では数値ステートには触らない (Stateを持つレコードの分類は
// 引き続き StatusOf がモダン表現で行う)。
func ApplyLegacy(p *model.LearningProgress, res LegacyResult) {
	p.Status = res.Status
	p.Interval = res.Interval
	p.Streak = res.Streak
	last := res.LastReviewedAt
	p.LastReviewedAt = &last
	p.NextReviewAt = res.NextReviewAt
}
