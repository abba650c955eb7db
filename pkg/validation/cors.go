package validation

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// ValidateCORSOrigin 文字列が CORS の Origin として有効かどうかを検証します。
//
// 'Scheme://Host[:Port]' 形式を厳格に要求します。ワイルドカード（'*'）は
// 有効な値として扱います。
//
// 検証規則:
//   - スキーマは 'http' または 'https' のみ許可
//   - ホストはドメイン名・localhost・IPv4/IPv6 アドレスのいずれか
//   - パス・クエリ・フラグメント・ユーザー情報を含む場合は無効
func ValidateCORSOrigin(origin string) error {
	trimmed := strings.TrimSpace(origin)
	if trimmed == "*" {
		return nil
	}

	if trimmed == "" {
		return fmt.Errorf("CORS Originは空にできません")
	}

	if strings.HasSuffix(trimmed, "/") {
		return fmt.Errorf("CORS Originはパス区切り文字('/')で終わることはできません (input=%q)", trimmed)
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return fmt.Errorf("CORS Originの解析に失敗しました (input=%q): %w", trimmed, err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("CORS Originのスキーマは'http'または'https'のみ許可されます (input=%q)", trimmed)
	}

	if parsed.Path != "" && parsed.Path != "/" {
		return fmt.Errorf("CORS Originにパスを含めることはできません (input=%q)", trimmed)
	}
	if parsed.RawQuery != "" {
		return fmt.Errorf("CORS Originにクエリパラメータを含めることはできません (input=%q)", trimmed)
	}
	if parsed.Fragment != "" {
		return fmt.Errorf("CORS OriginにFragment(#)を含めることはできません (input=%q)", trimmed)
	}
	if parsed.User != nil {
		return fmt.Errorf("CORS Originにユーザー資格情報を含めることはできません (input=%q)", trimmed)
	}

	if portStr := parsed.Port(); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("CORS Originのポート番号が有効ではありません (input=%q, port=%s)", trimmed, portStr)
		}
		if err := ValidatePort(port); err != nil {
			return fmt.Errorf("CORS Originのポート番号が有効ではありません: %w (input=%q)", err, trimmed)
		}
	}

	host := parsed.Hostname()
	if host == "" {
		return fmt.Errorf("CORS Originにホスト情報がありません (input=%q)", trimmed)
	}
	if err := ValidateHostname(host); err != nil {
		return fmt.Errorf("CORS Originのホストが有効ではありません: %w", err)
	}

	return nil
}

// ValidateHostname ホスト名が RFC 1123 に準拠しているか、または IP アドレス・
// localhost であるかどうかを検証します。
func ValidateHostname(host string) error {
	if host == "localhost" {
		return nil
	}

	if ip := net.ParseIP(host); ip != nil {
		return nil
	}

	// RFC 1123:
	//   - 全体で最大 253 文字
	//   - ラベルは 1〜63 文字の英数字とハイフンで構成され、ハイフンで開始・終了しない
	//   - TLD（最終ラベル）は数字のみで構成できない
	if len(host) > 253 {
		return fmt.Errorf("ホスト名は253文字を超えることはできません (len=%d)", len(host))
	}

	labels := strings.Split(host, ".")
	for _, label := range labels {
		if len(label) == 0 {
			return fmt.Errorf("ホスト名に空のラベル（連続したドットなど）が含まれています (host=%q)", host)
		}
		if len(label) > 63 {
			return fmt.Errorf("ホスト名の各ラベルは63文字を超えることはできません (label=%q)", label)
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return fmt.Errorf("ホスト名のラベルはハイフン(-)で開始・終了できません (label=%q)", label)
		}
		for _, r := range label {
			valid := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-'
			if !valid {
				return fmt.Errorf("ホスト名は英数字とハイフン(-)のみで構成してください (invalid_char=%q, host=%q)", r, host)
			}
		}
	}

	lastLabel := labels[len(labels)-1]
	allNumeric := true
	for _, r := range lastLabel {
		if r < '0' || r > '9' {
			allNumeric = false
			break
		}
	}
	if allNumeric {
		return fmt.Errorf("最上位ドメイン(TLD)を数字のみで構成することはできません (tld=%q)", lastLabel)
	}

	return nil
}
