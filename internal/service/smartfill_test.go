package service

import (
	"testing"

	"go_vocab_mastery/internal/model"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func Test_resolveField(t *testing.T) {
	tests := []struct {
		name      string
		explicit  *string
		inherited *string
		want      *string
	}{
		{"明示値があればそれを使う", strPtr("explicit"), strPtr("inherited"), strPtr("explicit")},
		{"明示値がなければ継承値", nil, strPtr("inherited"), strPtr("inherited")},
		{"両方なければ未指定のまま", nil, nil, nil},
		{"空文字の明示値も有効な値として扱う", strPtr(""), strPtr("inherited"), strPtr("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveField(tt.explicit, tt.inherited)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func Test_patchValue(t *testing.T) {
	tests := []struct {
		name        string
		explicit    *string
		inherited   *string
		current     *string
		wantValue   *string
		wantChanged bool
	}{
		{"明示値は既存値を上書きする", strPtr("new"), nil, strPtr("old"), strPtr("new"), true},
		{"明示値が既存値と同一なら変更なし", strPtr("same"), nil, strPtr("same"), strPtr("same"), false},
		{"既存値が未設定なら継承値で埋める", nil, strPtr("inherited"), nil, strPtr("inherited"), true},
		{"既存値があれば継承値で上書きしない", nil, strPtr("inherited"), strPtr("existing"), strPtr("existing"), false},
		{"全部未指定なら変更なし", nil, nil, nil, nil, false},
		{"明示値は未設定の既存値にも入る", strPtr("new"), nil, nil, strPtr("new"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := patchValue(tt.explicit, tt.inherited, tt.current)
			assert.Equal(t, tt.wantChanged, changed)
			if tt.wantValue == nil {
				assert.Nil(t, got)
			} else {
				assert.Equal(t, *tt.wantValue, *got)
			}
		})
	}
}

func Test_newSmartFillSource(t *testing.T) {
	t.Run("正常系: 出現レコードからフィールドを取り出す", func(t *testing.T) {
		app := &model.Appearance{
			Meaning:   strPtr("文脈上の意味"),
			Example:   strPtr("例文"),
			MeaningEn: strPtr("apple"),
		}
		fill := newSmartFillSource(app)
		assert.Equal(t, "文脈上の意味", *fill.Meaning)
		assert.Equal(t, "例文", *fill.Example)
		assert.Equal(t, "apple", *fill.MeaningEn)
		assert.Nil(t, fill.MeaningZh)
	})

	t.Run("正常系: 継承元がなければすべて未指定", func(t *testing.T) {
		fill := newSmartFillSource(nil)
		assert.Nil(t, fill.Meaning)
		assert.Nil(t, fill.MeaningEn)
	})
}
