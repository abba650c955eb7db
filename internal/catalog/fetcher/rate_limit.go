package fetcher

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimitFetcher リクエストの発行間隔を制限するデコレータです。
// スクレイピング先への過剰なアクセスを避けるために使用します。
type RateLimitFetcher struct {
	delegate Fetcher

	limiter *rate.Limiter
}

var _ Fetcher = (*RateLimitFetcher)(nil)

// NewRateLimitFetcher 新しい RateLimitFetcher を生成します。
//
// requestsPerSecond 秒間あたりの最大リクエスト数（burst は 1 に固定）。
// 0 以下が渡された場合は制限なしとして扱います。
func NewRateLimitFetcher(delegate Fetcher, requestsPerSecond float64) *RateLimitFetcher {
	var limiter *rate.Limiter
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
	return &RateLimitFetcher{
		delegate: delegate,
		limiter:  limiter,
	}
}

// Do リクエストの発行枠が空くまで待機してから委譲します。
// 待機中にコンテキストが取り消された場合はそのエラーを返します。
func (f *RateLimitFetcher) Do(req *http.Request) (*http.Response, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}
	return f.delegate.Do(req)
}
