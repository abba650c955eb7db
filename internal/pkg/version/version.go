// Package version アプリケーションのビルド・バージョン情報を管理します。
//
// ビルド時にリンカフラグ（-ldflags）で注入されたメタデータと、実行時の
// 環境情報（Go バージョン、OS、アーキテクチャ）を統合して提供します。
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync/atomic"
)

const unknown = "unknown"

// globalBuildInfo 全域のビルド情報（atomic.Value によるスレッドセーフ保証）
var globalBuildInfo atomic.Value

// readBuildInfo テストで差し替え可能にするための変数です。
var readBuildInfo = debug.ReadBuildInfo

// 以下の変数はビルド時にリンカフラグ（ldflags）で注入されます。
// アプリケーションロジックからは直接参照せず、必ず Get() を通して取得してください。
var (
	appVersion    = "" // アプリケーションバージョン (例: v1.2.0-12-g0a1b2c3)
	gitCommitHash = "" // Git コミットハッシュ
	buildDate     = "" // ビルド実行時刻
)

func init() {
	set(enrichBuildInfo(Info{
		Version:   strings.TrimSpace(appVersion),
		Commit:    strings.TrimSpace(gitCommitHash),
		BuildDate: strings.TrimSpace(buildDate),
	}))
}

// Info アプリケーションのビルド情報です。
// 主に /version エンドポイントとログ出力で使用されます。
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// Get アプリケーションのビルド情報を返します。
func Get() Info {
	bi := globalBuildInfo.Load()
	if bi == nil {
		return Info{Version: unknown, Commit: unknown, BuildDate: unknown}
	}
	return bi.(Info)
}

func set(bi Info) {
	globalBuildInfo.Store(bi)
}

// enrichBuildInfo 未設定のビルド情報に実行時の環境値を補完します。
// ldflags の注入が無い開発環境（go run など）でも、実行ファイルのデバッグ
// メタデータから最低限のバージョン情報を確保します。
func enrichBuildInfo(bi Info) Info {
	if bi.GoVersion == "" {
		bi.GoVersion = runtime.Version()
	}
	if bi.OS == "" {
		bi.OS = runtime.GOOS
	}
	if bi.Arch == "" {
		bi.Arch = runtime.GOARCH
	}

	if val, ok := readBuildInfo(); ok {
		for _, setting := range val.Settings {
			switch setting.Key {
			case "vcs.revision":
				if bi.Commit == "" || bi.Commit == unknown {
					bi.Commit = setting.Value
				}
			case "vcs.time":
				if bi.BuildDate == "" || bi.BuildDate == unknown {
					bi.BuildDate = setting.Value
				}
			}
		}
		if bi.Version == "" && val.Main.Version != "(devel)" {
			bi.Version = val.Main.Version
		}
	}

	if bi.Version == "" {
		bi.Version = unknown
	}
	if bi.Commit == "" {
		bi.Commit = unknown
	}

	return bi
}

// String ビルド情報を人間が読みやすい 1 行の文字列にまとめて返します。
func (i Info) String() string {
	var details []string

	if i.Commit != "" && i.Commit != unknown {
		commit := i.Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		details = append(details, fmt.Sprintf("commit: %s", commit))
	}
	if i.BuildDate != "" && i.BuildDate != unknown {
		details = append(details, fmt.Sprintf("date: %s", i.BuildDate))
	}
	if i.GoVersion != "" {
		details = append(details, fmt.Sprintf("go_version: %s", i.GoVersion))
	}
	if i.OS != "" && i.Arch != "" {
		details = append(details, fmt.Sprintf("platform: %s/%s", i.OS, i.Arch))
	}

	if len(details) == 0 {
		return i.Version
	}
	return fmt.Sprintf("%s (%s)", i.Version, strings.Join(details, ", "))
}
