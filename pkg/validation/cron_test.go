package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestValidateCronExpression Cron 表現式の検証規則を確認します。
//
// 検証項目:
//   - 標準 Cron（5 フィールド）- 6 フィールド設定のため拒否される
//   - 拡張 Cron（6 フィールド）- 秒単位を含む
//   - 特殊表現式（@daily、@hourly など）
//   - 不正な形式（フィールド不足、不正な文字）
//   - 空文字
func TestValidateCronExpression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    string
		wantErr bool
	}{
		{
			name:    "標準Cron(5フィールド)は6フィールド厳格設定のため無効",
			spec:    "0 5 * * *",
			wantErr: true,
		},
		{
			name:    "拡張Cron(6フィールド・秒単位を含む)",
			spec:    "0 */5 * * * *", // 5分ごと(0秒)
			wantErr: false,
		},
		{
			name:    "毎日深夜0時",
			spec:    "@daily",
			wantErr: false,
		},
		{
			name:    "フィールド不足",
			spec:    "* * *",
			wantErr: true,
		},
		{
			name:    "不正な文字列",
			spec:    "invalid-cron",
			wantErr: true,
		},
		{
			name:    "空文字",
			spec:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateCronExpression(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, strings.Contains(err.Error(), "Cron表現式の解析に失敗しました"), "エラーメッセージが一致しません: %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
