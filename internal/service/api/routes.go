package api

import (
	"github.com/labstack/echo/v4"

	"github.com/sofvo/catalog-server/internal/service/api/handler"
)

// RegisterRoutes API サービスのルートを登録します。
//
// 登録されるエンドポイント:
//   - システム: /health（稼働確認）、/version（ビルド情報）
//   - 商品カタログ: /api/v1/search、/api/v1/product
//   - 運用: /api/v1/sync/gadgets、/api/v1/sync/venues、/api/v1/notices/seed
func RegisterRoutes(e *echo.Echo, systemHandler *handler.SystemHandler, catalogHandler *handler.CatalogHandler, syncHandler *handler.SyncHandler) {
	registerSystemRoutes(e, systemHandler)
	registerV1Routes(e, catalogHandler, syncHandler)
}

func registerSystemRoutes(e *echo.Echo, h *handler.SystemHandler) {
	e.GET("/health", h.HealthCheckHandler)
	e.GET("/version", h.VersionHandler)
}

func registerV1Routes(e *echo.Echo, catalogHandler *handler.CatalogHandler, syncHandler *handler.SyncHandler) {
	v1 := e.Group("/api/v1")

	v1.GET("/search", catalogHandler.SearchHandler)
	v1.GET("/product", catalogHandler.ProductHandler)

	v1.POST("/sync/gadgets", syncHandler.SyncGadgetsHandler)
	v1.POST("/sync/venues", syncHandler.SyncVenuesHandler)
	v1.POST("/notices/seed", syncHandler.SeedNoticesHandler)
}
