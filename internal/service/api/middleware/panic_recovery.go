package middleware

import (
	"fmt"
	"runtime"

	"github.com/labstack/echo/v4"

	apperrors "github.com/sofvo/catalog-server/internal/pkg/errors"
	applog "github.com/sofvo/catalog-server/pkg/log"
)

// stackBufferSize panic 発生時にスタックトレースを保存するバッファサイズ（4KB）
const stackBufferSize = 4 << 10

// PanicRecovery panic を復旧してログに記録するミドルウェアを返します。
//
// ハンドラで発生した panic を復旧してサーバーダウンを防ぎ、スタックトレース
// 付きでエラーを記録した上で Echo のエラーハンドラへ引き渡します。
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					err, ok := r.(error)
					if !ok {
						err = apperrors.New(apperrors.Internal, fmt.Sprintf("%v", r))
					}

					stack := make([]byte, stackBufferSize)
					length := runtime.Stack(stack, false)

					fields := applog.Fields{
						"error": err,
						"stack": string(stack[:length]),
					}
					if requestID := c.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
						fields["request_id"] = requestID
					}

					applog.WithComponentAndFields("api.middleware", fields).Error("PANIC RECOVERED")

					c.Error(err)
				}
			}()
			return next(c)
		}
	}
}
