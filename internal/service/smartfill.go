package service

import "go_vocab_mastery/internal/model"

// このファイルはインポート時のスマートフィル (欠損フィールドの継承) の
// 優先順位解決ロジックをまとめたもの。フィールド単位の三段階の優先順位:
//
//	明示的なインポート値 > 最新の兄弟出現からの継承値 > 未指定のまま
//
// 未指定 (nil) の入力が既存の値を消すことはない。

// resolveField は新規レコードに書き込む値を三段階の優先順位で決定します。
func resolveField(explicit, inherited *string) *string {
	if explicit != nil {
		return explicit
	}
	return inherited
}

// patchValue は既存レコードのフィールドに対する更新値を決定します。
// 明示値は常に上書きし、継承値は既存値が未設定の場合のみ埋める。
// 戻り値の changed が false の場合、更新は不要。
func patchValue(explicit, inherited, current *string) (*string, bool) {
	if explicit != nil {
		if current == nil || *current != *explicit {
			return explicit, true
		}
		return current, false
	}
	if current == nil && inherited != nil {
		return inherited, true
	}
	return current, false
}

// smartFillSource は継承元となる出現レコードから、スマートフィル対象の
// フィールド集合を取り出します。継承元がない場合はすべて未指定。
type smartFillSource struct {
	Meaning   *string
	Example   *string
	ExampleTr *string
	MeaningEn *string
	MeaningZh *string
	MeaningVi *string
	MeaningMn *string
}

func newSmartFillSource(app *model.Appearance) smartFillSource {
	if app == nil {
		return smartFillSource{}
	}
	return smartFillSource{
		Meaning:   app.Meaning,
		Example:   app.Example,
		ExampleTr: app.ExampleTranslation,
		MeaningEn: app.MeaningEn,
		MeaningZh: app.MeaningZh,
		MeaningVi: app.MeaningVi,
		MeaningMn: app.MeaningMn,
	}
}
