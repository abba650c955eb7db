package httputil

import (
	"net/http"

	"github.com/labstack/echo/v4"

	applog "github.com/sofvo/catalog-server/pkg/log"
)

const (
	// ErrMsgInternalServer 内部エラー発生時に利用者へ返す既定メッセージです。
	// 上流サービスの生のエラー内容は決して応答に含めません。
	ErrMsgInternalServer = "サーバー内部でエラーが発生しました。しばらく待ってからお試しください。"

	// ErrMsgNotFound 存在しないリソースへのアクセス時に返すメッセージです。
	ErrMsgNotFound = "要求されたリソースが見つかりません"
)

// ErrorHandler Echo の全域エラーハンドラです。
//
// すべての HTTP エラーを標準の ErrorResponse JSON 形式（{"error": ...}）に
// 変換して返し、あわせて適切なレベル（Error/Warn）でログに記録します。
func ErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := ErrMsgInternalServer

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			message = m
		case ErrorResponse:
			message = m.Error
		}
	}

	// 404 は利用者向けの日本語メッセージに統一する
	if code == http.StatusNotFound && message == http.StatusText(http.StatusNotFound) {
		message = ErrMsgNotFound
	}

	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if code >= http.StatusInternalServerError {
		applog.WithComponentAndFields("api.error_handler", fields).Error("HTTP 5xx: サーバー内部エラー")
	} else if code >= http.StatusBadRequest {
		applog.WithComponentAndFields("api.error_handler", fields).Warn("HTTP 4xx: クライアントリクエストエラー")
	}

	// 二重応答の防止
	if c.Response().Committed {
		return
	}

	// HEAD リクエストは HTTP 仕様に従いヘッダーのみ返す
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	_ = c.JSON(code, ErrorResponse{Error: message})
}
