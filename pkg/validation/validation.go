// Package validation 設定値の検証に使用する共通の検証関数を提供します。
//
// このパッケージのエラーは標準の error で返します。呼び出し側（主に設定の
// ロード処理）がドメインエラーへ変換します。
package validation

import (
	"fmt"
	"time"
)

// ValidatePort ポート番号が有効な範囲（1-65535）内にあるかどうかを検証します。
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("有効なポート範囲(1-65535)ではありません (port=%d)", port)
	}
	return nil
}

// ValidateDuration 文字列が time.ParseDuration で解釈可能かどうかを検証します。
func ValidateDuration(d string) error {
	if _, err := time.ParseDuration(d); err != nil {
		return fmt.Errorf("時間指定の形式が正しくありません (input=%q, 例: 8s, 500ms): %w", d, err)
	}
	return nil
}
