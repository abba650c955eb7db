package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sofvo/catalog-server/internal/service/api/httputil"
	appmiddleware "github.com/sofvo/catalog-server/internal/service/api/middleware"
	applog "github.com/sofvo/catalog-server/pkg/log"
)

const (
	// defaultReadTimeout リクエスト本文の読み取り制限時間
	defaultReadTimeout = 30 * time.Second

	// defaultReadHeaderTimeout リクエストヘッダーの読み取り制限時間
	defaultReadHeaderTimeout = 10 * time.Second

	// defaultWriteTimeout レスポンス書き込みの制限時間
	defaultWriteTimeout = 60 * time.Second

	// defaultIdleTimeout Keep-Alive 接続のアイドル制限時間
	defaultIdleTimeout = 120 * time.Second

	// defaultRequestTimeout 各リクエストの最大処理時間
	defaultRequestTimeout = 60 * time.Second

	// defaultRateLimitPerSecond IP ごとの秒間リクエスト数の上限
	defaultRateLimitPerSecond = 20

	// defaultRateLimitBurst IP ごとのバースト許容量
	defaultRateLimitBurst = 40

	// defaultMaxBodySize リクエスト本文サイズの上限
	defaultMaxBodySize = "2M"
)

// HTTPServerConfig HTTP サーバー生成に必要な設定を定義します。
type HTTPServerConfig struct {
	// Debug Echo フレームワークのデバッグモードを有効にするかどうか
	Debug bool

	// AllowOrigins CORS で許可する Origin の一覧
	// 開発環境: ["*"] または ["http://localhost:3000"]
	// 本番環境: 特定のドメインのみを明示（例: ["https://example.com"]）
	AllowOrigins []string

	// RequestTimeout 各 HTTP リクエストの最大処理時間（既定値: 60秒）
	// 超過時はコンテキストを取り消して 503 を返し、リソース枯渇を防ぎます。
	RequestTimeout time.Duration
}

// NewHTTPServer 設定済みミドルウェアを含む Echo インスタンスを生成します。
//
// ミドルウェアは次の順序で適用されます（順序が重要です）:
//
//  1. PanicRecovery - パニックの復旧とロギング
//     最初に適用することで後続ミドルウェアのパニックも復旧できます。
//
//  2. RequestID - リクエストごとに一意な ID を付与（X-Request-ID ヘッダー）
//     ロギングミドルウェアより先に適用し、ログに request_id を含めます。
//
//  3. ServerHeader - Server ヘッダーの削除
//     サーバースタック情報（Go/Echo のバージョンなど）の露出を防ぎます。
//
//  4. HTTPLogger - HTTP リクエスト/レスポンスの構造化ロギング
//     RateLimit/Timeout より前に置き、429/503 エラーも記録します。
//
//  5. RateLimiting - IP ベースのレート制限（既定: 20 req/s、バースト 40）
//     超過時は 429 Too Many Requests を返します。
//
//  6. BodyLimit - リクエスト本文サイズ制限（既定: 2MB、超過時 413）
//
//  7. Timeout - リクエスト処理時間制限（既定: 60秒、超過時 503）
//
//  8. CORS - クロスオリジンリクエストの処理（Preflight 自動応答）
//
//  9. Secure - X-XSS-Protection、X-Content-Type-Options などの保護ヘッダー付与
//
// ルート設定は含まれません。返された Echo インスタンスへ別途設定してください。
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true

	// セキュリティとリソース管理のための HTTP サーバータイムアウト設定
	e.Server.ReadTimeout = defaultReadTimeout
	e.Server.ReadHeaderTimeout = defaultReadHeaderTimeout
	e.Server.WriteTimeout = defaultWriteTimeout
	e.Server.IdleTimeout = defaultIdleTimeout

	// Echo フレームワークの内部ログをアプリケーションロガーへ統合します。
	// これにより、すべてのログが同じ形式と出力先を使用します。
	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}

	// グローバル HTTP エラーハンドラ設定
	e.HTTPErrorHandler = httputil.ErrorHandler

	// タイムアウト未設定時は既定値を適用して無限待機を防ぎます。
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = defaultRequestTimeout
	}

	// ミドルウェア適用（推奨順序）

	// 1. パニック復旧
	e.Use(appmiddleware.PanicRecovery())
	// 2. Request ID
	e.Use(middleware.RequestID())
	// 3. Server ヘッダー削除
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	})
	// 4. HTTP ロギング
	e.Use(appmiddleware.HTTPLogger())
	// 5. レート制限
	e.Use(appmiddleware.RateLimiting(defaultRateLimitPerSecond, defaultRateLimitBurst))
	// 6. 本文サイズ制限
	e.Use(middleware.BodyLimit(defaultMaxBodySize))
	// 7. タイムアウト
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: timeout,
	}))
	// 8. CORS 設定
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete},
	}))
	// 9. 保護ヘッダー
	e.Use(middleware.Secure())

	return e
}
