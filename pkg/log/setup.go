package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// 生成されるログファイルの既定の拡張子
	fileExt = "log"

	// 既定のログローテーションポリシー
	defaultMaxSizeMB  = 100 // ログファイル 1 つあたりの最大サイズ（単位: MB）
	defaultMaxBackups = 20  // ローテーションされたログファイルの最大保管数
)

var (
	// Setup() の重複呼び出しを防ぐための同期オブジェクト。
	// プロセスの生存期間中、Setup() が一度だけ実行されることを保証します。
	setupOnce sync.Once

	// グローバルなロギングリソースの解放オブジェクト(Closer)を保持します。
	globalCloser io.Closer

	// 初期化段階で発生したエラーを保持します。
	// 初期化に失敗した場合、以後 Setup() が再呼び出しされても再試行せず最初のエラーを返します。
	globalSetupErr error
)

// Setup グローバルなロギングシステムを初期化し、設定されたオプションに従いファイル出力を構成します。
//
// 注意:
//   - アプリケーションの開始時点（main 関数の冒頭）で呼び出すことを推奨します。
//   - 返された Closer は必ず defer によってリソースが解放されるようにしてください。
func Setup(opts Options) (io.Closer, error) {
	setupOnce.Do(func() {
		globalCloser, globalSetupErr = setupInternal(opts)
	})

	return globalCloser, globalSetupErr
}

// setupInternal 実際のロギングシステム初期化ロジックを実行します。
// この関数は Setup() から sync.Once を通じて一度だけ呼び出されます。
func setupInternal(opts Options) (io.Closer, error) {
	// Options の検証（誤った設定値によるランタイムエラーの防止）
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("無効なログ設定: %w", err)
	}

	// ログレベル設定
	level := opts.Level
	if level == 0 {
		level = InfoLevel
	}
	logrus.SetLevel(level)

	// 呼び出し元情報（ファイル名・行番号）の記録可否を設定します。
	logrus.SetReportCaller(opts.ReportCaller)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
			function = frame.Function + "(line:" + strconv.Itoa(frame.Line) + ")"
			if opts.CallerPathPrefix != "" {
				if cut, found := strings.CutPrefix(function, opts.CallerPathPrefix); found {
					function = "..." + cut
				}
			}
			return
		},
	})

	// ログ保存先が指定されていない場合は、実行位置の 'logs' ディレクトリを既定値として使用します。
	logDir := opts.Dir
	if logDir == "" {
		logDir = "logs"
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("ログディレクトリの作成に失敗しました: %w", err)
	}

	maxSize := opts.MaxSizeMB
	if maxSize == 0 {
		maxSize = defaultMaxSizeMB
	}
	maxBackups := opts.MaxBackups
	if maxBackups == 0 {
		maxBackups = defaultMaxBackups
	}

	// メインログファイルのローテーションを lumberjack に委譲します。
	mainLogger := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, fmt.Sprintf("%s.%s", opts.Name, fileExt)),
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     opts.MaxAge,
		Compress:   false,
		LocalTime:  true,
	}

	// コンソール出力が有効な場合は、ファイルと標準出力の両方へ書き込みます。
	if opts.EnableConsoleLog {
		logrus.SetOutput(io.MultiWriter(os.Stdout, mainLogger))
	} else {
		logrus.SetOutput(mainLogger)
	}

	return mainLogger, nil
}

// SetDebugMode デバッグモードの有効・無効に応じてログレベルを切り替えます。
func SetDebugMode(debug bool) {
	if debug {
		logrus.SetLevel(TraceLevel)
	} else {
		logrus.SetLevel(InfoLevel)
	}
}

// StandardLogger logrus の標準ロガーを返します。
// 外部ライブラリ（cron、echo など）のログ出力先を統合する際に使用します。
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}
