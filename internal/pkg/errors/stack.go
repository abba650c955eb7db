package errors

import (
	"path/filepath"
	"runtime"
)

// defaultCallerSkip スタックトレース収集時にスキップする呼び出しスタックの深さです。
//
// runtime.Callers を呼び出すと、現在実行中の関数から逆順にスタックが積まれます。
// 利用者がエラーを生成した位置（New/Wrap の呼び出し地点）を正確に記録するため、
// 内部関数の呼び出し 3 段階をスキップします:
//
// 1. runtime.Callers      （スタック収集関数）
// 2. captureStack         （内部ユーティリティ関数）
// 3. New/Wrap/Newf/Wrapf  （公開エラー生成関数）
const defaultCallerSkip = 3

// StackFrame 単一の関数呼び出しスタックの実行コンテキスト情報です。
type StackFrame struct {
	File     string // ファイル名
	Line     int    // 行番号
	Function string // 関数名
}

// captureStack 現在の実行位置のスタック情報を収集して返します。（最大 5 段階）
func captureStack(skip int) []StackFrame {
	const maxFrames = 5
	pc := make([]uintptr, maxFrames)
	n := runtime.Callers(skip, pc)

	if n == 0 {
		return nil
	}

	callersFrames := runtime.CallersFrames(pc[:n])

	frames := make([]StackFrame, 0, n)
	for {
		frame, more := callersFrames.Next()
		frames = append(frames, StackFrame{
			File:     filepath.Base(frame.File),
			Line:     frame.Line,
			Function: frame.Function,
		})
		if !more {
			break
		}
	}

	return frames
}
