// Package sheetsync MongoDB コレクションを Google スプレッドシートへ
// 定期的にミラーリングするサービスを提供します。
package sheetsync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sofvo/catalog-server/internal/config"
	"github.com/sofvo/catalog-server/internal/notify"
	apperrors "github.com/sofvo/catalog-server/internal/pkg/errors"
	"github.com/sofvo/catalog-server/internal/repository/mongodb"
	"github.com/sofvo/catalog-server/pkg/cronx"
	applog "github.com/sofvo/catalog-server/pkg/log"
)

// component SheetSync サービスのロギング用コンポーネント名
const component = "sheetsync.service"

// syncTimeout 1 回のミラーリング処理の最大実行時間
const syncTimeout = 2 * time.Minute

// GadgetSource ミラーリング対象のガジェット一覧を提供するインターフェースです。
type GadgetSource interface {
	FindAll(ctx context.Context) ([]mongodb.Gadget, error)
}

// VenueSource ミラーリング対象の会場一覧を提供するインターフェースです。
type VenueSource interface {
	FindAll(ctx context.Context) ([]mongodb.Venue, error)
}

// Service MongoDB の gadgets / venues コレクションを Cron スケジュールに従って
// Google スプレッドシートへミラーリングするサービスです。
//
// シートは毎回クリアしてから全件を書き直すため、削除されたレコードも
// シートへ正しく反映されます。API ハンドラからの手動実行にも対応します。
type Service struct {
	cfg config.SheetSyncConfig

	gadgets GadgetSource
	venues  VenueSource
	writer  RowWriter

	notificationSender notify.Sender

	cron *cron.Cron

	running   bool
	runningMu sync.Mutex
}

// NewService Service インスタンスを生成します。
func NewService(cfg config.SheetSyncConfig, gadgets GadgetSource, venues VenueSource, writer RowWriter, notificationSender notify.Sender) *Service {
	if gadgets == nil {
		panic("[sheetsync.Service] gadgetsは必須です")
	}
	if venues == nil {
		panic("[sheetsync.Service] venuesは必須です")
	}
	if writer == nil {
		panic("[sheetsync.Service] writerは必須です")
	}
	if notificationSender == nil {
		panic("[sheetsync.Service] notificationSenderは必須です")
	}

	return &Service{
		cfg: cfg,

		gadgets: gadgets,
		venues:  venues,
		writer:  writer,

		notificationSender: notificationSender,
	}
}

// Start ミラーリングスケジュールを Cron エンジンへ登録し、サービスを開始します。
//
// Cron エンジンの構成:
//   - StandardParser: 秒単位のスケジュール指定に対応（6 フィールド）
//   - Recover: ジョブ内のパニックを復旧し、後続のジョブへ影響させない
//   - SkipIfStillRunning: 前回の実行が終わっていなければ次回をスキップ
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("SheetSyncサービスを開始します")

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("SheetSyncサービスはすでに実行中です")
		return nil
	}

	s.cron = cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithLogger(cron.VerbosePrintfLogger(applog.StandardLogger())),
		cron.WithChain(
			cron.Recover(cron.VerbosePrintfLogger(applog.StandardLogger())),
			cron.SkipIfStillRunning(cron.VerbosePrintfLogger(applog.StandardLogger())),
		),
	)

	if _, err := s.cron.AddFunc(s.cfg.TimeSpec, s.runScheduledSync); err != nil {
		serviceStopWG.Done()
		return apperrors.Wrapf(err, apperrors.NotConfigured, "ミラーリングスケジュールの登録に失敗しました (TimeSpec: %s)", s.cfg.TimeSpec)
	}

	s.cron.Start()
	s.running = true

	applog.WithComponentAndFields(component, applog.Fields{
		"time_spec": s.cfg.TimeSpec,
	}).Info("SheetSyncサービスを開始しました")

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.Stop()
	}()

	return nil
}

// Stop 実行中のスケジューラを安全に停止します。
// 実行中のミラーリングジョブの完了を待ってから戻ります。
func (s *Service) Stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(component).Info("SheetSyncサービスを停止します")

	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("SheetSyncサービスを停止しました")
}

// runScheduledSync スケジュール実行時にすべてのコレクションをミラーリングします。
//
// サービス終了シグナルとは独立した context を使用します。cron.Stop() が実行中の
// ジョブの完了を待つため、途中で取り消されてシートが中途半端な状態になることを
// 防ぎます。
func (s *Service) runScheduledSync() {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	if _, err := s.SyncGadgets(ctx); err != nil {
		s.logAndNotifyError("ガジェット一覧の定期ミラーリングに失敗しました", err)
	}

	if _, err := s.SyncVenues(ctx); err != nil {
		s.logAndNotifyError("会場一覧の定期ミラーリングに失敗しました", err)
	}
}

// SyncGadgets gadgets コレクションをスプレッドシートへミラーリングします。
// 書き出した行数（ヘッダーを除く）を返します。
func (s *Service) SyncGadgets(ctx context.Context) (int, error) {
	if s.cfg.GadgetSpreadsheetID == "" {
		return 0, apperrors.New(apperrors.NotConfigured, "ガジェット用スプレッドシートIDが設定されていません")
	}

	gadgets, err := s.gadgets.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	values := make([][]interface{}, 0, len(gadgets)+1)
	values = append(values, gadgetHeader)
	for _, gadget := range gadgets {
		values = append(values, gadgetRow(gadget))
	}

	if err := s.writer.ReplaceAll(ctx, s.cfg.GadgetSpreadsheetID, gadgetSheetName, gadgetSheetCols, values); err != nil {
		return 0, err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"rows": len(gadgets),
	}).Info("ガジェット一覧をミラーリングしました")

	return len(gadgets), nil
}

// SyncVenues venues コレクションをスプレッドシートへミラーリングします。
// 書き出した行数（ヘッダーを除く）を返します。
func (s *Service) SyncVenues(ctx context.Context) (int, error) {
	if s.cfg.VenueSpreadsheetID == "" {
		return 0, apperrors.New(apperrors.NotConfigured, "会場用スプレッドシートIDが設定されていません")
	}

	venues, err := s.venues.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	values := make([][]interface{}, 0, len(venues)+1)
	values = append(values, venueHeader)
	for _, venue := range venues {
		values = append(values, venueRow(venue))
	}

	if err := s.writer.ReplaceAll(ctx, s.cfg.VenueSpreadsheetID, venueSheetName, venueSheetCols, values); err != nil {
		return 0, err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"rows": len(venues),
	}).Info("会場一覧をミラーリングしました")

	return len(venues), nil
}

// logAndNotifyError ミラーリング中のエラーをロギングし、管理者へ通知します。
func (s *Service) logAndNotifyError(message string, err error) {
	applog.WithComponentAndFields(component, applog.Fields{
		"error": err,
	}).Error(message)

	s.notificationSender.NotifyError(fmt.Sprintf("%s\r\n\r\n%s", message, err))
}
