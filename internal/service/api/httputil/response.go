// Package httputil HTTP レスポンスとエラーの標準形式を提供します。
package httputil

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse エラー応答の標準 JSON 形式です。
// どのエンドポイントでもエラーは {"error": "<メッセージ>"} の形で返されます。
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewBadRequestError 400 Bad Request エラーを生成します。
func NewBadRequestError(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Error: message})
}

// NewNotFoundError 404 Not Found エラーを生成します。
func NewNotFoundError(message string) error {
	return echo.NewHTTPError(http.StatusNotFound, ErrorResponse{Error: message})
}

// NewTooManyRequestsError 429 Too Many Requests エラーを生成します。
func NewTooManyRequestsError(message string) error {
	return echo.NewHTTPError(http.StatusTooManyRequests, ErrorResponse{Error: message})
}

// NewInternalServerError 500 Internal Server Error エラーを生成します。
func NewInternalServerError(message string) error {
	return echo.NewHTTPError(http.StatusInternalServerError, ErrorResponse{Error: message})
}

// NewServiceUnavailableError 503 Service Unavailable エラーを生成します。
func NewServiceUnavailableError(message string) error {
	return echo.NewHTTPError(http.StatusServiceUnavailable, ErrorResponse{Error: message})
}
