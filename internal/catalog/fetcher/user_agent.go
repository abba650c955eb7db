package fetcher

import (
	"net/http"
)

// DefaultUserAgent スクレイピング時にブラウザとして振る舞うための固定 User-Agent です。
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// UserAgentFetcher HTTP リクエストに User-Agent を注入するデコレータです。
//
//   - リクエストに User-Agent が無い場合のみ注入します。
//   - すでに設定されている場合は変更せずそのまま委譲します。
//   - 原本のリクエストは変更せず、注入が必要な場合は req.Clone() で複製します。
type UserAgentFetcher struct {
	delegate Fetcher

	userAgent string
}

var _ Fetcher = (*UserAgentFetcher)(nil)

// NewUserAgentFetcher 新しい UserAgentFetcher を生成します。
// userAgent が空の場合は DefaultUserAgent を使用します。
func NewUserAgentFetcher(delegate Fetcher, userAgent string) *UserAgentFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &UserAgentFetcher{
		delegate:  delegate,
		userAgent: userAgent,
	}
}

// Do User-Agent 未設定のリクエストに既定値を注入してから委譲します。
func (f *UserAgentFetcher) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		cloned := req.Clone(req.Context())
		cloned.Header.Set("User-Agent", f.userAgent)
		req = cloned
	}
	return f.delegate.Do(req)
}
