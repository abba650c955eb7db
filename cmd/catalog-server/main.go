package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/sofvo/catalog-server/internal/catalog"
	"github.com/sofvo/catalog-server/internal/catalog/fetcher"
	"github.com/sofvo/catalog-server/internal/catalog/paapi"
	"github.com/sofvo/catalog-server/internal/catalog/scrape"
	"github.com/sofvo/catalog-server/internal/config"
	"github.com/sofvo/catalog-server/internal/notify"
	"github.com/sofvo/catalog-server/internal/pkg/version"
	"github.com/sofvo/catalog-server/internal/repository/mongodb"
	"github.com/sofvo/catalog-server/internal/service"
	"github.com/sofvo/catalog-server/internal/service/api"
	"github.com/sofvo/catalog-server/internal/service/api/handler"
	"github.com/sofvo/catalog-server/internal/service/sheetsync"
	applog "github.com/sofvo/catalog-server/pkg/log"
)

const (
	// paapiRequestsPerSecond PA-API へのリクエストレート上限
	// PA-API の無料枠は 1 リクエスト/秒のため、超過による throttling を防ぎます。
	paapiRequestsPerSecond = 1

	// scrapeRequestsPerSecond スクレイピング時のリクエストレート上限
	scrapeRequestsPerSecond = 1

	// startupTimeout 外部依存（MongoDB など）への接続確立の最大待機時間
	startupTimeout = 10 * time.Second
)

const (
	banner = `
   ____        _         _                 ____
  / ___| __ _ | |_  __ _ | |  ___    __ _ / ___|   ___  _ __ __   __ ___  _ __
 | |    / _` + "`" + ` || __|/ _` + "`" + ` || | / _ \  / _` + "`" + ` |\___ \  / _ \| '__|\ \ / // _ \| '__|
 | |___| (_| || |_| (_| || || (_) || (_| | ___) ||  __/| |    \ V /|  __/| |
  \____|\__,_| \__|\__,_||_| \___/  \__, ||____/  \___||_|     \_/  \___||_|
                                    |___/                    %s
--------------------------------------------------------------------------------
`
)

func main() {
	// .env ファイルから環境変数を読み込む（存在しない場合は無視）
	// Amazon PA-API の認証情報は設定ファイルではなく環境変数で管理します。
	_ = godotenv.Load()

	configFile := flag.String("config", config.DefaultFilename, "設定ファイルのパス")
	flag.Parse()

	// 1. 環境設定のロード（ログ設定に必要なため最初に行う）
	appConfig, err := config.LoadWithFile(*configFile)
	if err != nil {
		// ロガー初期化前のため標準エラーへ出力
		fmt.Fprintf(os.Stderr, "[FATAL] 環境設定のロードに失敗しました: %v\n", err)
		os.Exit(1)
	}

	// 2. ログシステムの初期化
	var logOpts applog.Options
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	} else {
		logOpts = applog.NewProductionOptions(config.AppName)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] ログシステムの初期化に失敗しました。サーバーの起動を中断します。(Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	// 3. ログレベルの最終確定
	applog.SetDebugMode(appConfig.Debug)

	buildInfo := version.Get()

	// アスキーアート出力(https://ja.rakko.tools/tools/68/、フォント:standard)
	fmt.Printf(banner, buildInfo.Version)

	applog.WithComponentAndFields("main", log.Fields{
		"version": buildInfo.String(),
		"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
	}).Info("サーバーの初期化を開始します")

	// 推奨設定からの逸脱を警告として出力する（起動は継続する）
	for _, warning := range appConfig.VerifyRecommendations() {
		applog.WithComponent("main").Warn(warning)
	}

	// 管理者への通知送信部を構成する
	notificationSender := newNotificationSender(appConfig)

	// 商品解決部を構成する
	resolver := newResolver(appConfig)

	// サービスを生成して初期化する
	var services []service.Service

	var mirrorer handler.SheetMirrorer
	var seeder handler.NoticeSeeder

	if appConfig.SheetSync.Enabled {
		startupCtx, startupCancel := context.WithTimeout(context.Background(), startupTimeout)

		db, err := mongodb.NewConnection(startupCtx, appConfig.SheetSync.MongoURI, appConfig.SheetSync.MongoDatabase)
		if err != nil {
			startupCancel()
			log.Fatalf("MongoDBへの接続に失敗したためプログラムを終了します: %v", err)
		}
		defer db.Close(context.Background())

		writer, err := sheetsync.NewSheetWriter(startupCtx, appConfig.SheetSync.CredentialsFile)
		startupCancel()
		if err != nil {
			log.Fatalf("Google Sheetsクライアントの生成に失敗したためプログラムを終了します: %v", err)
		}

		syncService := sheetsync.NewService(
			appConfig.SheetSync,
			mongodb.NewGadgetRepository(db),
			mongodb.NewVenueRepository(db),
			writer,
			notificationSender,
		)

		mirrorer = syncService
		seeder = mongodb.NewNoticeRepository(db)

		services = append(services, syncService)
	}

	apiService := api.NewService(appConfig, resolver, mirrorer, seeder, notificationSender, buildInfo)
	services = append(services, apiService)

	serviceStopCtx, cancel := context.WithCancel(context.Background())
	serviceStopWG := &sync.WaitGroup{}

	// サービスを開始する
	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields("main", log.Fields{
				"error": err,
			}).Error("サービスの初期化に失敗しました")

			cancel() // 他のサービスも終了させる
			serviceStopWG.Wait()

			log.Fatal("サービスの初期化に失敗したためプログラムを終了します")
		}
	}

	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	applog.WithComponent("main").Info("サーバーの起動が完了しました")

	<-termC // 終了シグナルを受信するまでブロック

	applog.WithComponent("main").Info("終了シグナルを受信しました")
	cancel()             // 各サービスへ終了を通知
	serviceStopWG.Wait() // すべてのサービスの終了完了を待機
}

// newNotificationSender 通知設定に応じた notify.Sender を構成します。
// テレグラムボットへの接続に失敗した場合は通知なしで起動を継続します。
func newNotificationSender(appConfig *config.AppConfig) notify.Sender {
	if !appConfig.Notifier.TelegramEnabled() {
		return notify.NewNopSender()
	}

	sender, err := notify.NewTelegramSender(appConfig.Notifier.TelegramBotToken, appConfig.Notifier.TelegramChatID)
	if err != nil {
		applog.WithComponentAndFields("main", log.Fields{
			"error": err,
		}).Warn("テレグラム通知の初期化に失敗したため通知なしで起動します")

		return notify.NewNopSender()
	}

	return sender
}

// newResolver 商品解決部を構成します。
//
// 取得経路は PA-API を優先し、設定で有効な場合のみスクレイピングへ
// フォールバックします。認証情報は環境変数から呼び出しごとに取得します。
func newResolver(appConfig *config.AppConfig) *catalog.Resolver {
	credentials := catalog.EnvCredentialProvider{}

	// 取得経路ごとに独立したレート制限を適用する
	paapiFetcher := fetcher.NewRateLimitFetcher(
		fetcher.NewHTTPFetcher(0),
		paapiRequestsPerSecond,
	)
	scrapeFetcher := fetcher.NewRateLimitFetcher(
		fetcher.NewUserAgentFetcher(fetcher.NewHTTPFetcher(0), fetcher.DefaultUserAgent),
		scrapeRequestsPerSecond,
	)

	paapiClient := paapi.NewClient(paapiFetcher, credentials, paapi.Options{
		Marketplace:     appConfig.Catalog.Marketplace,
		SearchItemCount: appConfig.Catalog.SearchItemCount,
	})

	sources := []catalog.Source{paapiClient}

	if appConfig.Catalog.FallbackToScraping {
		// 設定ロード時に duration として検証済みのため、ここでの失敗はあり得ない
		scrapeTimeout, _ := time.ParseDuration(appConfig.Catalog.ScrapeTimeout)

		scraper := scrape.NewScraper(scrapeFetcher, scrapeTimeout)
		sources = append(sources, scrape.NewSource(scraper, credentials))
	}

	return catalog.NewResolver(sources, credentials, appConfig.Catalog.FallbackToScraping)
}
