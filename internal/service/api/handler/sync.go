package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sofvo/catalog-server/internal/service/api/httputil"
	applog "github.com/sofvo/catalog-server/pkg/log"
)

const (
	errMsgSyncDisabled = "シートミラーリングが無効になっています"
	errMsgSyncFailed   = "シートミラーリングに失敗しました。しばらく待ってからお試しください。"
	errMsgSeedFailed   = "お知らせの初期登録に失敗しました。しばらく待ってからお試しください。"
)

// SheetMirrorer MongoDB コレクションのスプレッドシートへのミラーリングを
// 抽象化するインターフェースです。
type SheetMirrorer interface {
	// SyncGadgets gadgets コレクションをミラーリングし、書き出した行数を返します。
	SyncGadgets(ctx context.Context) (int, error)

	// SyncVenues venues コレクションをミラーリングし、書き出した行数を返します。
	SyncVenues(ctx context.Context) (int, error)
}

// NoticeSeeder お知らせコレクションへの初期データ投入を抽象化するインターフェースです。
type NoticeSeeder interface {
	// SeedDefaults コレクションが空の場合のみ初期のお知らせを登録し、
	// 登録した件数を返します（すでにデータがある場合は 0）。
	SeedDefaults(ctx context.Context) (int, error)
}

// SyncHandler 手動同期・初期データ投入エンドポイントのハンドラです。
// mirrorer / seeder が nil の場合、対応するエンドポイントは 503 を返します。
type SyncHandler struct {
	mirrorer SheetMirrorer
	seeder   NoticeSeeder
}

// NewSyncHandler SyncHandler を生成します。
func NewSyncHandler(mirrorer SheetMirrorer, seeder NoticeSeeder) *SyncHandler {
	return &SyncHandler{
		mirrorer: mirrorer,
		seeder:   seeder,
	}
}

// SyncGadgetsHandler gadgets コレクションのミラーリングを実行します。
//
// POST /api/v1/sync/gadgets
func (h *SyncHandler) SyncGadgetsHandler(c echo.Context) error {
	return h.runSync(c, "gadgets", func(ctx context.Context) (int, error) {
		return h.mirrorer.SyncGadgets(ctx)
	})
}

// SyncVenuesHandler venues コレクションのミラーリングを実行します。
//
// POST /api/v1/sync/venues
func (h *SyncHandler) SyncVenuesHandler(c echo.Context) error {
	return h.runSync(c, "venues", func(ctx context.Context) (int, error) {
		return h.mirrorer.SyncVenues(ctx)
	})
}

func (h *SyncHandler) runSync(c echo.Context, collection string, sync func(ctx context.Context) (int, error)) error {
	if h.mirrorer == nil {
		return httputil.NewServiceUnavailableError(errMsgSyncDisabled)
	}

	rows, err := sync(c.Request().Context())
	if err != nil {
		applog.WithComponentAndFields("api.handler", applog.Fields{
			"collection": collection,
			"error":      err,
		}).Error("手動シートミラーリングに失敗しました")

		return httputil.NewInternalServerError(errMsgSyncFailed)
	}

	return c.JSON(http.StatusOK, map[string]int{"rows": rows})
}

// SeedNoticesHandler お知らせコレクションへの初期データ投入を実行します。
//
// POST /api/v1/notices/seed
func (h *SyncHandler) SeedNoticesHandler(c echo.Context) error {
	if h.seeder == nil {
		return httputil.NewServiceUnavailableError(errMsgSyncDisabled)
	}

	count, err := h.seeder.SeedDefaults(c.Request().Context())
	if err != nil {
		applog.WithComponentAndFields("api.handler", applog.Fields{
			"error": err,
		}).Error("お知らせの初期登録に失敗しました")

		return httputil.NewInternalServerError(errMsgSeedFailed)
	}

	return c.JSON(http.StatusOK, map[string]int{"count": count})
}
