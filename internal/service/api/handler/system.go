package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sofvo/catalog-server/internal/pkg/version"
)

// HealthResponse ヘルスチェックの応答形式です。
type HealthResponse struct {
	Status string `json:"status"`
	Uptime int64  `json:"uptime"`
}

// SystemHandler ヘルスチェック・バージョン情報など、システム水準のエンドポイントの
// ハンドラです。認証を必要とせず、監視システムからの呼び出しを想定しています。
type SystemHandler struct {
	buildInfo       version.Info
	serverStartTime time.Time
}

// NewSystemHandler SystemHandler を生成します。
func NewSystemHandler(buildInfo version.Info) *SystemHandler {
	return &SystemHandler{
		buildInfo:       buildInfo,
		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler サーバーの稼働状態を返します。
//
// GET /health
func (h *SystemHandler) HealthCheckHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status: "healthy",
		Uptime: int64(time.Since(h.serverStartTime).Seconds()),
	})
}

// VersionHandler サーバーのビルド・バージョン情報を返します。
//
// GET /version
func (h *SystemHandler) VersionHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, h.buildInfo)
}
