package log

import (
	"github.com/sirupsen/logrus"
)

// Level logrus.Level の別名です。
type Level = logrus.Level

const (
	// PanicLevel 最も高い深刻度です。ログ記録後に panic() を呼び出します。
	PanicLevel Level = logrus.PanicLevel

	// FatalLevel 致命的なエラーです。ログ記録後に os.Exit(1) でプロセスを終了します。
	FatalLevel Level = logrus.FatalLevel

	// ErrorLevel エラー状況です。プロセスは継続しますが、管理者の対応が必要な状態を示します。
	ErrorLevel Level = logrus.ErrorLevel

	// WarnLevel 警告状況です。直ちにエラーではないものの、注意が必要な状態を示します。
	WarnLevel Level = logrus.WarnLevel

	// InfoLevel 通常の情報です。システムの正常な動作や状態変化を記録します。
	InfoLevel Level = logrus.InfoLevel

	// DebugLevel デバッグ情報です。開発・検証段階での問題解決のために記録します。
	DebugLevel Level = logrus.DebugLevel

	// TraceLevel 最も細かい情報です。Debug よりさらに詳細なデータの流れを追跡します。
	TraceLevel Level = logrus.TraceLevel
)

// Fields logrus.Fields の別名です。
type Fields = logrus.Fields

// Entry logrus.Entry の別名です。
type Entry = logrus.Entry

// Logger logrus.Logger の別名です。
type Logger = logrus.Logger
