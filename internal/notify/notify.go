// Package notify サーバー運用上の重要イベントを管理者へ通知する機能を提供します。
package notify

// Sender 管理者への通知送信機能を抽象化するインターフェースです。
type Sender interface {
	// NotifyError エラーメッセージを管理者へ通知します。
	// 通知自体の失敗はログに記録するのみで、呼び出し側へは伝播させません。
	NotifyError(message string)
}

// NopSender 何も送信しない Sender 実装です。
// 通知が設定されていない環境で利用します。
type NopSender struct{}

// NewNopSender NopSender を生成します。
func NewNopSender() *NopSender {
	return &NopSender{}
}

// NotifyError 何も行いません。
func (s *NopSender) NotifyError(_ string) {}
