package errors

// ErrorType エラーの種類を表す型です。
type ErrorType int

// エラータイプ定数
const (
	// Unknown 分類できないエラー
	Unknown ErrorType = iota

	// Internal 内部ロジックの誤り（バグ等）
	Internal

	// System システムまたはインフラの障害（ディスク、ネットワーク等）
	System

	// InvalidInput 入力値の検証失敗（必須値の欠落、形式違反等）
	InvalidInput

	// NotConfigured 必要な設定・認証情報が構成されていない
	NotConfigured

	// NotFound 要求されたリソースが見つからない
	NotFound

	// ExecutionFailed 外部 API 呼び出しなどの処理実行失敗
	ExecutionFailed

	// ParsingFailed データの解析・変換・デコード失敗
	ParsingFailed

	// Timeout 処理時間の超過
	Timeout

	// Unavailable サービスの一時的な利用不可
	Unavailable
)

// String ErrorType の文字列表現を返します。
func (t ErrorType) String() string {
	switch t {
	case Internal:
		return "Internal"
	case System:
		return "System"
	case InvalidInput:
		return "InvalidInput"
	case NotConfigured:
		return "NotConfigured"
	case NotFound:
		return "NotFound"
	case ExecutionFailed:
		return "ExecutionFailed"
	case ParsingFailed:
		return "ParsingFailed"
	case Timeout:
		return "Timeout"
	case Unavailable:
		return "Unavailable"
	default:
		return "Unknown"
	}
}
