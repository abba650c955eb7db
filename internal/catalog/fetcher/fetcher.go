// Package fetcher HTTP リクエストの実行層を提供します。
//
// Fetcher インターフェースを中心に、User-Agent の注入やレートリミットなどの
// 横断的な関心事をデコレータとして積み重ねられる構成になっています。
package fetcher

import (
	"context"
	"net/http"
)

// Fetcher HTTP リクエストを実行するインターフェースです。
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Get 指定された URL へ HTTP GET リクエストを送信します。
// Fetcher インターフェースの実装が共通で使用できるヘルパー関数です。
func Get(ctx context.Context, f Fetcher, url string, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	return f.Do(req)
}
