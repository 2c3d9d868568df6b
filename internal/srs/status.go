// internal/srs/status.go
package srs

import "go_vocab_mastery/internal/model"

// MasteryStabilityDays はモダンモデルでの習得判定のしきい値 (日数)。
// State=Review かつ stability がこれを超えたら MASTERED とみなす。
// モダンモデルにおける唯一の習得判定基準。
const MasteryStabilityDays = 30.0

// DeriveStatus は数値ステートと stability から表示用ステータスを導出します。
func DeriveStatus(state model.CardState, stability float64) model.ProgressStatus {
	switch state {
	case model.StateNew:
		return model.StatusNew
	case model.StateLearning, model.StateRelearning:
		return model.StatusLearning
	case model.StateReview:
		if stability <= MasteryStabilityDays {
			return model.StatusReview
		}
		return model.StatusMastered
	default:
		// 不正な値は安全側に倒して NEW 扱い
		return model.StatusNew
	}
}

// StatusOf は進捗レコードの表示用ステータスを決める唯一の経路です。
//
// State (数値) を持つレコードでは常に DeriveStatus の結果が正であり、
// Status 文字列は読まない (古いStatusが残っていても無視する)。
// State を持たない最古のレコードのみ Status 文字列をそのまま使う。
// この優先順位が新旧スキーマをマイグレーションなしで同居させる仕組みなので、
// 変更してはならない。
func StatusOf(p *model.LearningProgress) model.ProgressStatus {
	if p == nil {
		return model.StatusNew
	}
	if p.State != nil {
		var stability float64
		if p.Stability != nil {
			stability = *p.Stability
		}
		return DeriveStatus(*p.State, stability)
	}
	if p.Status == "" {
		return model.StatusNew
	}
	return p.Status
}
