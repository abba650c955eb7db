// Package handler API エンドポイントのハンドラを提供します。
package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sofvo/catalog-server/internal/catalog"
	apperrors "github.com/sofvo/catalog-server/internal/pkg/errors"
	"github.com/sofvo/catalog-server/internal/service/api/httputil"
	applog "github.com/sofvo/catalog-server/pkg/log"
)

const (
	// errMsgSearchFailed 商品解決の失敗時に利用者へ返すメッセージです。
	// 上流（PA-API・スクレイピング）の生のエラー内容は決して含めません。
	errMsgSearchFailed = "検索に失敗しました。しばらく待ってからお試しください。"

	errMsgKeywordRequired = "検索キーワード(q)が指定されていません"
	errMsgASINRequired    = "商品ID(asin)が指定されていません"
	errMsgProductNotFound = "指定された商品が見つかりませんでした"
)

// ProductResolver 商品情報の解決機能を抽象化するインターフェースです。
// 本番では catalog.Resolver が実装し、テストではフェイクに差し替えます。
type ProductResolver interface {
	SearchProducts(ctx context.Context, keywords string) ([]catalog.Product, error)
	GetProduct(ctx context.Context, asin string) (*catalog.Product, error)
}

// CatalogHandler 商品検索・商品取得エンドポイントのハンドラです。
type CatalogHandler struct {
	resolver ProductResolver
}

// NewCatalogHandler CatalogHandler を生成します。
func NewCatalogHandler(resolver ProductResolver) *CatalogHandler {
	if resolver == nil {
		panic("[CatalogHandler] resolverは必須です")
	}
	return &CatalogHandler{resolver: resolver}
}

// SearchHandler キーワードで商品を検索します。
//
// GET /api/v1/search?q=<keyword>
//
// 応答:
//   - 200: 商品レコードの JSON 配列（0 件の場合は空配列）
//   - 400: キーワード未指定
//   - 500: すべての取得経路が失敗（利用者向けメッセージのみを返す）
func (h *CatalogHandler) SearchHandler(c echo.Context) error {
	keywords := strings.TrimSpace(c.QueryParam("q"))
	if keywords == "" {
		return httputil.NewBadRequestError(errMsgKeywordRequired)
	}

	products, err := h.resolver.SearchProducts(c.Request().Context(), keywords)
	if err != nil {
		return h.toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, products)
}

// ProductHandler ASIN を指定して単一商品を取得します。
//
// GET /api/v1/product?asin=<id>
//
// 応答:
//   - 200: 商品レコード（縮退有効時は最小限のレコードが保証される）
//   - 400: ASIN 未指定または形式不正
//   - 404: 商品が見つからない（縮退無効時のみ発生）
//   - 500: 取得失敗（縮退無効時のみ発生）
func (h *CatalogHandler) ProductHandler(c echo.Context) error {
	asin := strings.TrimSpace(c.QueryParam("asin"))
	if asin == "" {
		return httputil.NewBadRequestError(errMsgASINRequired)
	}

	product, err := h.resolver.GetProduct(c.Request().Context(), asin)
	if err != nil {
		return h.toHTTPError(c, err)
	}

	return c.JSON(http.StatusOK, product)
}

// toHTTPError ドメインエラーを HTTP エラーへ変換します。
// 利用者へはエラータイプに応じた安全なメッセージのみを返し、詳細はログに残します。
func (h *CatalogHandler) toHTTPError(c echo.Context, err error) error {
	applog.WithComponentAndFields("api.handler", applog.Fields{
		"path":  c.Request().URL.Path,
		"error": err,
	}).Warn("商品解決リクエストが失敗しました")

	switch apperrors.UnderlyingType(err) {
	case apperrors.InvalidInput:
		if appErr, ok := err.(*apperrors.AppError); ok {
			return httputil.NewBadRequestError(appErr.Message())
		}
		return httputil.NewBadRequestError(errMsgSearchFailed)
	case apperrors.NotFound:
		return httputil.NewNotFoundError(errMsgProductNotFound)
	default:
		return httputil.NewInternalServerError(errMsgSearchFailed)
	}
}
