// Package api 商品カタログ API サーバーのサービスを提供します。
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sofvo/catalog-server/internal/config"
	"github.com/sofvo/catalog-server/internal/notify"
	"github.com/sofvo/catalog-server/internal/pkg/version"
	"github.com/sofvo/catalog-server/internal/service/api/handler"
	applog "github.com/sofvo/catalog-server/pkg/log"
)

const (
	// shutdownTimeout Graceful Shutdown 時の最大待機時間
	shutdownTimeout = 5 * time.Second

	componentService = "api.service"
)

// Service 商品カタログ API サーバーのライフサイクルを管理するサービスです。
//
// このサービスは次の役割を担います:
//   - Echo ベースの HTTP サーバーの起動と停止
//   - ミドルウェアチェーンの設定（PanicRecovery、RequestID、RateLimiting、HTTPLogger、CORS、Secure）
//   - エンドポイントのルーティング設定（商品検索、手動同期、ヘルスチェックなど）
//   - カスタム HTTP エラーハンドラの設定
//   - サービス状態の管理（起動/停止）
//   - Graceful Shutdown 対応（5秒タイムアウト）
//   - 予期しないサーバーエラーの処理と管理者通知
//
// サービスはゴルーチンで実行され、context を通じて終了シグナルを受け取ります。
type Service struct {
	appConfig *config.AppConfig

	resolver handler.ProductResolver
	mirrorer handler.SheetMirrorer
	seeder   handler.NoticeSeeder

	notificationSender notify.Sender

	buildInfo version.Info

	running   bool
	runningMu sync.Mutex
}

// NewService Service インスタンスを生成します。
// mirrorer と seeder はシートミラーリング無効時に nil を許容します。
func NewService(appConfig *config.AppConfig, resolver handler.ProductResolver, mirrorer handler.SheetMirrorer, seeder handler.NoticeSeeder, notificationSender notify.Sender, buildInfo version.Info) *Service {
	if appConfig == nil {
		panic("[api.Service] appConfigは必須です")
	}
	if resolver == nil {
		panic("[api.Service] resolverは必須です")
	}
	if notificationSender == nil {
		panic("[api.Service] notificationSenderは必須です")
	}

	return &Service{
		appConfig: appConfig,

		resolver: resolver,
		mirrorer: mirrorer,
		seeder:   seeder,

		notificationSender: notificationSender,

		buildInfo: buildInfo,

		running:   false,
		runningMu: sync.Mutex{},
	}
}

// Start API サービスを開始します。
//
// サービスは別のゴルーチンで実行され、次の処理を行います:
//  1. サービス状態の検証（重複起動の防止）
//  2. Echo サーバーの設定（ハンドラ、ミドルウェア、ルート）
//  3. HTTP サーバーの起動（別ゴルーチン）
//  4. 終了シグナルの待機
//  5. Graceful Shutdown 処理（5秒タイムアウト）
//
// この関数は即座に返り、実際のサーバーはゴルーチンで実行されます。
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(componentService).Info("APIサービスを開始します")

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(componentService).Warn("APIサービスはすでに実行中です")
		return nil
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponent(componentService).Info("APIサービスを開始しました")

	return nil
}

// runServiceLoop サービスのメイン実行ループです。
// サーバー設定、HTTP サーバー起動、Shutdown 待機を順に行います。
func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	e := s.setupServer()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer Echo サーバーインスタンスを生成し、すべての設定を完了します。
func (s *Service) setupServer() *echo.Echo {
	systemHandler := handler.NewSystemHandler(s.buildInfo)
	catalogHandler := handler.NewCatalogHandler(s.resolver)
	syncHandler := handler.NewSyncHandler(s.mirrorer, s.seeder)

	e := NewHTTPServer(HTTPServerConfig{
		Debug:        s.appConfig.Debug,
		AllowOrigins: s.appConfig.APIServer.CORS.AllowOrigins,
	})

	RegisterRoutes(e, systemHandler, catalogHandler, syncHandler)

	return e
}

// startHTTPServer HTTP サーバーを起動します。
// サーバーが終了すると done チャネルを閉じて待機中のゴルーチンへ通知します。
// この関数はサーバーが終了するまでブロックします。
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	port := s.appConfig.APIServer.ListenPort
	applog.WithComponentAndFields(componentService, applog.Fields{
		"port": port,
	}).Debug("HTTPサーバーを起動します")

	err := e.Start(fmt.Sprintf(":%d", port))

	s.handleServerError(err)
}

// handleServerError HTTP サーバー起動中に発生したエラーを処理します。
//
// エラーの扱い:
//   - nil: 何もしない（正常終了）
//   - http.ErrServerClosed: Info レベルでロギング（Graceful Shutdown）
//   - その他: Error レベルでロギングし、管理者へ通知（予期しないエラー）
func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(componentService).Info("HTTPサーバーを停止しました")
		return
	}

	message := "HTTPサーバーで致命的なエラーが発生しました"
	applog.WithComponentAndFields(componentService, applog.Fields{
		"port":  s.appConfig.APIServer.ListenPort,
		"error": err,
	}).Error(message)

	s.notificationSender.NotifyError(fmt.Sprintf("%s\r\n\r\n%s", message, err))
}

// waitForShutdown 終了シグナルを待機し、Graceful Shutdown を実行します。
// この関数はサービスが完全に終了するまでブロックします。
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(componentService).Info("APIサービスを停止します")
	case <-httpServerDone:
		// ポートバインド失敗などで HTTP サーバーが予期せず終了した。
		// すでに終了しているため Shutdown は呼ばず、状態だけを整理する。
		applog.WithComponent(componentService).Error("HTTPサーバーが予期せず終了しました")

		s.cleanup()

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(componentService, applog.Fields{
			"error": err,
		}).Error("HTTPサーバーのShutdown中にエラーが発生しました")
	}

	<-httpServerDone

	s.cleanup()
}

// cleanup サービス終了後の状態を整理します。
func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(componentService).Info("APIサービスを停止しました")
}
