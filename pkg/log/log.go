// Package log アプリケーション全体で使用する構造化ロギングを提供します。
//
// sirupsen/logrus の薄いラッパーであり、コンポーネント名付きのログエントリ生成、
// lumberjack によるファイルローテーション、機密情報のマスキングを担当します。
package log

import (
	"context"

	"github.com/sirupsen/logrus"
)

// maskVisiblePrefixLen マスキング時に先頭から表示する文字数です。
const maskVisiblePrefixLen = 4

// WithComponent コンポーネント名を付与したログエントリを返します。
func WithComponent(component string) *Entry {
	return logrus.WithField("component", component)
}

// WithComponentAndFields コンポーネント名と追加フィールドを付与したログエントリを返します。
func WithComponentAndFields(component string, fields Fields) *Entry {
	return logrus.WithField("component", component).WithFields(fields)
}

// WithFields 追加フィールドを付与したログエントリを返します。
func WithFields(fields Fields) *Entry {
	return logrus.WithFields(fields)
}

// WithContext コンテキストを付与したログエントリを返します。
func WithContext(ctx context.Context) *Entry {
	return logrus.WithContext(ctx)
}

// MaskSensitiveData アクセスキーやトークンなどの機密文字列をログ出力用にマスキングします。
// 先頭の数文字のみを残し、残りを「****」に置き換えます。短すぎる値は全体を伏せます。
func MaskSensitiveData(data string) string {
	if data == "" {
		return ""
	}
	if len(data) <= maskVisiblePrefixLen {
		return "****"
	}
	return data[:maskVisiblePrefixLen] + "****"
}
