package log

import (
	"fmt"
	"os"
)

// Options ロガー設定のための構造体です。
type Options struct {
	Name  string // ログファイル名の生成に使用されるアプリケーション識別子
	Dir   string // ログファイルを保存するディレクトリパス
	Level Level  // ログレベル

	MaxAge     int // 古いログを削除する基準日数（0: 削除しない）
	MaxSizeMB  int // ログファイルの最大サイズ（MB、0: 既定値 100MB）
	MaxBackups int // バックアップファイルの最大数（0: 既定値 20 個）

	EnableConsoleLog bool // 標準出力(Stdout)にもログを出力するかどうか（開発環境推奨）

	// ログを出力したソースコードの位置（ファイル名:行番号）を併せて記録するかどうか
	ReportCaller bool

	// 出力される呼び出し元のパスが長すぎる場合に、先頭部分を省略して表示します。
	// 例: prefix が "github.com/sofvo/catalog-server" の場合、それ以降のみ出力されます。
	CallerPathPrefix string
}

// Validate Options 構造体のフィールド値が有効かどうかを検証します。
func (opts *Options) Validate() error {
	if opts.Name == "" {
		return fmt.Errorf("アプリケーション識別子(Name)が設定されていません")
	}

	// Dir がすでにファイルとして存在しているかどうかを確認
	if opts.Dir != "" {
		if info, err := os.Stat(opts.Dir); err == nil && !info.IsDir() {
			return fmt.Errorf("ログディレクトリのパス(%s)がすでにファイルとして存在します", opts.Dir)
		}
	}

	if opts.MaxAge < 0 {
		return fmt.Errorf("MaxAge は 0 以上である必要があります: %d", opts.MaxAge)
	}
	if opts.MaxSizeMB < 0 {
		return fmt.Errorf("MaxSizeMB は 0 以上である必要があります: %d", opts.MaxSizeMB)
	}
	if opts.MaxBackups < 0 {
		return fmt.Errorf("MaxBackups は 0 以上である必要があります: %d", opts.MaxBackups)
	}

	return nil
}
