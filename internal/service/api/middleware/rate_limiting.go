package middleware

import (
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/sofvo/catalog-server/internal/service/api/httputil"
	applog "github.com/sofvo/catalog-server/pkg/log"
)

// errMsgTooManyRequests レート制限超過時に利用者へ返すメッセージです。
const errMsgTooManyRequests = "リクエストが多すぎます。しばらく待ってからお試しください。"

// ipRateLimiter IP アドレスごとに独立した rate.Limiter を管理します。
// sync.RWMutex により複数ゴルーチンから安全にアクセスできます。
//
// 一度登録された IP はサーバー再起動まで保持されます。現在の規模では問題に
// なりませんが、大規模トラフィック環境では IP 数の上限や LRU による整理が
// 必要になります。
type ipRateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func newIPRateLimiter(requestsPerSecond int, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// getLimiter 指定された IP アドレスに対応する Limiter を返します。
// 未登録の IP に対しては新しい Limiter を生成します。
func (i *ipRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.RLock()
	limiter, exists := i.limiters[ip]
	i.mu.RUnlock()

	if exists {
		return limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	// 他のゴルーチンがすでに生成している可能性があるため再確認する
	if limiter, exists = i.limiters[ip]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(i.rate, i.burst)
	i.limiters[ip] = limiter

	return limiter
}

// RateLimiting IP ベースのレート制限ミドルウェアを返します。
//
// トークンバケット方式（golang.org/x/time/rate）で IP ごとに秒間リクエスト数を
// 制限します。制限を超過したリクエストには Retry-After ヘッダー付きの
// 429 Too Many Requests を返します。
func RateLimiting(requestsPerSecond int, burst int) echo.MiddlewareFunc {
	if requestsPerSecond <= 0 {
		panic("[RateLimiting] requestsPerSecondは正の値でなければなりません")
	}
	if burst <= 0 {
		panic("[RateLimiting] burstは正の値でなければなりません")
	}

	limiter := newIPRateLimiter(requestsPerSecond, burst)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			if !limiter.getLimiter(ip).Allow() {
				applog.WithComponentAndFields("api.middleware", applog.Fields{
					"remote_ip": ip,
					"path":      c.Request().URL.Path,
					"method":    c.Request().Method,
				}).Warn("Rate limit超過")

				c.Response().Header().Set("Retry-After", "1")

				return httputil.NewTooManyRequestsError(errMsgTooManyRequests)
			}

			return next(c)
		}
	}
}
