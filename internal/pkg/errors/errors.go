// Package errors アプリケーション専用のエラー処理システムを提供します。
//
// このパッケージは標準 errors パッケージを拡張し、タイプベースのエラー分類と
// エラーチェーンをサポートします。すべてのエラーは ErrorType で分類され、
// Wrap 関数を通じてコンテキストを積み重ねることができます。
//
// # 基本的な使い方
//
// 新しいエラーの生成:
//
//	err := errors.New(errors.NotFound, "商品が見つかりません")
//
// エラーのラップ（コンテキストの追加）:
//
//	if err != nil {
//	    return errors.Wrap(err, errors.ExecutionFailed, "商品検索 API の呼び出しに失敗しました")
//	}
//
// エラータイプの検査:
//
//	if errors.Is(err, errors.NotFound) {
//	    // NotFound タイプのエラー処理
//	}
//
// # ErrorType 選択の指針
//
//   - InvalidInput: 呼び出し元の入力値の検証失敗（必須パラメータの欠落など）
//   - NotConfigured: 認証情報・必須設定が未構成の状態での操作
//   - ExecutionFailed: 外部 API 呼び出しや業務ロジックの実行失敗
//   - ParsingFailed: HTML/JSON の解析、形式変換の失敗
//   - Timeout: HTTP リクエストタイムアウトなどの時間超過
//   - Unavailable: 外部サービスの一時的な利用不可（ネットワーク障害含む）
//   - System: ディスク I/O、DB 接続などインフラレベルの障害
//   - Internal: 想定外の nil 参照など、バグとみなすべき内部エラー
package errors

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// AppError アプリケーションで発生するすべてのエラーを標準化して表現する構造体です。
type AppError struct {
	errType ErrorType    // エラーの種類
	message string       // 利用者に見せるメッセージ
	cause   error        // このエラーの根本原因（エラーチェーン）
	stack   []StackFrame // エラー発生時点の関数呼び出しスタック情報
}

// Type エラーのタイプを返します。
func (e *AppError) Type() ErrorType {
	return e.errType
}

// Message エラーメッセージを返します。
func (e *AppError) Message() string {
	return e.message
}

// Stack スタックトレースを返します。
func (e *AppError) Stack() []StackFrame {
	return e.stack
}

// Error 標準 errors.Error インターフェースを実装します。
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.errType, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.errType, e.message)
}

// Unwrap 標準 errors.Unwrap インターフェースを実装します。
func (e *AppError) Unwrap() error {
	return e.cause
}

// Format fmt.Formatter インターフェースを実装します。
// %+v 使用時はエラーチェーンとスタックトレースを詳細に出力します。
func (e *AppError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "[%s] %s", e.errType, e.message)

			// スタックの重複出力を防ぐため、チェーンの末端（Root）または
			// 外部エラーとの境界でのみスタックを出力します。
			var target *AppError
			if e.cause == nil || !errors.As(e.cause, &target) {
				if len(e.stack) > 0 {
					fmt.Fprint(s, "\nStack trace:")
					for _, frame := range e.stack {
						funcName := frame.Function
						if idx := strings.LastIndex(funcName, "/"); idx != -1 {
							funcName = funcName[idx+1:]
						}
						fmt.Fprintf(s, "\n\t%s:%d %s", frame.File, frame.Line, funcName)
					}
				}
			}

			if e.cause != nil {
				fmt.Fprint(s, "\nCaused by:\n")
				if formatter, ok := e.cause.(fmt.Formatter); ok {
					formatter.Format(s, verb)
				} else {
					fmt.Fprintf(s, "\t%v", e.cause)
				}
			}
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

// New 新しいエラーを生成します。
func New(errType ErrorType, message string) error {
	return &AppError{
		errType: errType,
		message: message,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Newf フォーマット文字列を使用して新しいエラーを生成します。
func Newf(errType ErrorType, format string, args ...any) error {
	return &AppError{
		errType: errType,
		message: fmt.Sprintf(format, args...),
		stack:   captureStack(defaultCallerSkip),
	}
}

// Wrap 既存のエラーをラップして新しいエラーを生成します。
func Wrap(err error, errType ErrorType, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		errType: errType,
		message: message,
		cause:   err,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Wrapf フォーマット文字列を使用して既存のエラーをラップします。
func Wrapf(err error, errType ErrorType, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &AppError{
		errType: errType,
		message: fmt.Sprintf(format, args...),
		cause:   err,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Is エラーチェーンに特定の ErrorType が含まれているかどうかを確認します。
func Is(err error, errType ErrorType) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok {
			if appErr.errType == errType {
				return true
			}
		}
		err = errors.Unwrap(err)
	}
	return false
}

// As エラーチェーンから特定の型のエラーを探して対象の変数に割り当てます。
func As(err error, target any) bool {
	return errors.As(err, target)
}

// RootCause エラーが発生した最も根本的な原因エラーを返します。
func RootCause(err error) error {
	if err == nil {
		return nil
	}

	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}

// UnderlyingType エラーチェーンの最も内側にある AppError の ErrorType を返します。
//
// 複数回ラップされたエラーの根本的な分類を求める際に使用します。外部ライブラリの
// エラー（context.DeadlineExceeded 等）を AppError でラップした場合でも、
// 意図した ErrorType を正しく返します。チェーンに AppError が存在しない場合は
// Unknown を返します。
func UnderlyingType(err error) ErrorType {
	var lastAppErrorType = Unknown

	for err != nil {
		if appErr, ok := err.(*AppError); ok {
			lastAppErrorType = appErr.errType
		}
		err = errors.Unwrap(err)
	}

	return lastAppErrorType
}
