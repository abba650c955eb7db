// Package cronx Cron 表現式の取り扱いに関する共通規約を提供します。
package cronx

import "github.com/robfig/cron/v3"

// StandardParser アプリケーション標準の Cron 表現式パーサーを返します。
//
// 秒フィールドを含む 6 フィールドの拡張形式を使用します。標準の 5 フィールド
// 形式はサポートしません。
//
// 対応スペック:
//   - フィールド順: [秒] [分] [時] [日] [月] [曜日]
//   - 特殊表現: @daily, @hourly, @every <duration> など
//
// 例:
//   - "0 */5 * * * *" : 5 分ごと（0 秒時点）に実行
//   - "@daily"        : 毎日 0 時に実行
func StandardParser() cron.Parser {
	return cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}
