package fetcher

import (
	"net/http"
	"time"
)

// defaultTimeout HTTP クライアントの既定タイムアウトです。
const defaultTimeout = 30 * time.Second

// HTTPFetcher net/http ベースの Fetcher 実装です。
type HTTPFetcher struct {
	client *http.Client
}

var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher 指定されたタイムアウト設定を持つ HTTPFetcher を生成します。
// timeout が 0 の場合は既定値（30 秒）を使用します。
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Do HTTP リクエストを実行します。
func (h *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	return h.client.Do(req)
}
