package middleware

import (
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	applog "github.com/sofvo/catalog-server/pkg/log"
)

// defaultBytesIn Content-Length ヘッダーが存在しない場合（Chunked 転送など）に
// bytes_in フィールドへ記録する既定値です。数値を期待するログ収集システムでの
// 解析エラーを防ぐため、空文字ではなく "0" を使用します。
const defaultBytesIn = "0"

// sensitiveQueryParams ログ出力時に値をマスキングするクエリパラメータのキー一覧です。
var sensitiveQueryParams = []string{
	"api_key",
	"password",
	"token",
	"secret",
}

// HTTPLogger HTTP リクエスト/レスポンスを構造化ログとして記録するミドルウェアを返します。
//
// 記録される情報:
//   - リクエスト: IP、メソッド、URI、User-Agent、Content-Length
//   - レスポンス: ステータスコード、応答サイズ、Request ID
//   - 性能: 処理時間（マイクロ秒と人間向け表記）
//   - セキュリティ: 機密クエリパラメータの自動マスキング
func HTTPLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return httpLoggerHandler(c, next)
		}
	}
}

func httpLoggerHandler(c echo.Context, next echo.HandlerFunc) error {
	req := c.Request()
	res := c.Response()
	start := time.Now()

	// panic 発生時でもログが記録されるように defer で処理する
	defer func() {
		stop := time.Now()
		latency := stop.Sub(start)

		path := req.URL.Path
		if path == "" {
			path = "/"
		}

		bytesIn := req.Header.Get(echo.HeaderContentLength)
		if bytesIn == "" {
			bytesIn = defaultBytesIn
		}

		applog.WithFields(applog.Fields{
			"time_rfc3339": stop.Format(time.RFC3339),

			"method":   req.Method,
			"path":     path,
			"uri":      maskSensitiveQueryParams(req.RequestURI),
			"host":     req.Host,
			"protocol": req.Proto,

			"remote_ip":  c.RealIP(),
			"user_agent": req.UserAgent(),
			"referer":    req.Referer(),

			"status":    res.Status,
			"bytes_in":  bytesIn,
			"bytes_out": strconv.FormatInt(res.Size, 10),

			"latency":       strconv.FormatInt(latency.Nanoseconds()/1000, 10),
			"latency_human": latency.String(),

			"request_id": res.Header().Get(echo.HeaderXRequestID),
		}).Info("HTTPリクエスト")
	}()

	if err := next(c); err != nil {
		c.Error(err)
	}

	return nil
}

// maskSensitiveQueryParams URI に含まれる機密クエリパラメータをマスキングします。
// URI の解析に失敗した場合はロギングを止めないよう原本をそのまま返します。
func maskSensitiveQueryParams(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}

	q := u.Query()
	masked := false

	for _, param := range sensitiveQueryParams {
		if q.Has(param) {
			q.Set(param, applog.MaskSensitiveData(q.Get(param)))
			masked = true
		}
	}

	if masked {
		u.RawQuery = q.Encode()
		return u.String()
	}

	return uri
}
