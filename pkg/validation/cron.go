package validation

import (
	"fmt"

	"github.com/sofvo/catalog-server/pkg/cronx"
)

// ValidateCronExpression Cron 表現式の妥当性を検証します。
//
// 標準の Linux Cron（5 フィールド）ではなく、秒フィールドを含む拡張形式
// （6 フィールド）を基準に検証します。例: "0 30 * * * *"（毎時 30 分 0 秒）
func ValidateCronExpression(spec string) error {
	if _, err := cronx.StandardParser().Parse(spec); err != nil {
		return fmt.Errorf("Cron表現式の解析に失敗しました (spec=%q): %w", spec, err)
	}
	return nil
}
