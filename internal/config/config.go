// Package config アプリケーション設定のロードと検証を提供します。
//
// 設定は次の優先順位でマージされます（後勝ち）。
//
//  1. 既定値（defaultConfig）
//  2. JSON 設定ファイル（catalog-server.json）
//  3. 環境変数（CATALOG_ プレフィックス）
//
// PA-API の認証情報はこのパッケージでは扱いません。署名要求のたびに
// 環境変数から読み取られます（internal/catalog パッケージを参照）。
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	apperrors "github.com/sofvo/catalog-server/internal/pkg/errors"
)

const (
	// AppName アプリケーションの全域で使用する識別子です。
	AppName string = "catalog-server"

	// DefaultFilename 実行引数で明示されなかった場合に参照する既定の設定ファイル名です。
	DefaultFilename = AppName + ".json"

	// envPrefix 設定を上書きする環境変数のプレフィックスです。
	// 二重アンダースコア（__）が階層の区切り（.）に変換されます。
	// 例: CATALOG_API_SERVER__LISTEN_PORT -> api_server.listen_port
	envPrefix = "CATALOG_"
)

// AppConfig アプリケーションのすべての設定を管理する最上位の構造体です。
type AppConfig struct {
	Debug     bool            `json:"debug"`
	Catalog   CatalogConfig   `json:"catalog"`
	APIServer APIServerConfig `json:"api_server"`
	SheetSync SheetSyncConfig `json:"sheet_sync"`
	Notifier  NotifierConfig  `json:"notifier"`
}

// validate 設定ロード直後に各設定項目の整合性と必須値の妥当性を検証します。
func (c *AppConfig) validate() error {
	if err := c.Catalog.validate(); err != nil {
		return err
	}
	if err := c.APIServer.validate(); err != nil {
		return err
	}
	if err := c.SheetSync.validate(); err != nil {
		return err
	}
	return c.Notifier.validate()
}

// VerifyRecommendations 運用上推奨される設定が守られているかどうかを診断します。
// エラーにはせず、潜在的なリスクに対する警告メッセージの一覧を返します。
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	warnings = append(warnings, c.APIServer.VerifyRecommendations()...)

	if c.SheetSync.Enabled && !c.Notifier.TelegramEnabled() {
		warnings = append(warnings, "シートミラーリングが有効ですが、失敗通知（notifier）が設定されていません。同期失敗に気づけない可能性があります")
	}

	return warnings
}

// CatalogConfig 商品情報の解決（PA-API・スクレイピング）に関する設定です。
type CatalogConfig struct {
	// FallbackToScraping PA-API が未構成・失敗の場合にスクレイピングへ
	// 縮退するかどうかを制御します。false の場合は API 経路のみを使用し、
	// 失敗はそのまま呼び出し元へ返されます。
	FallbackToScraping bool   `json:"fallback_to_scraping"`
	Marketplace        string `json:"marketplace" validate:"required"`
	SearchItemCount    int    `json:"search_item_count" validate:"min=1,max=10"`
	ScrapeTimeout      string `json:"scrape_timeout" validate:"required,duration"`
}

func (c *CatalogConfig) validate() error {
	return checkStruct(c, "catalog")
}

// APIServerConfig HTTP API サーバーに関する設定です。
type APIServerConfig struct {
	ListenPort int        `json:"listen_port" validate:"min=1,max=65535"`
	CORS       CORSConfig `json:"cors"`
}

func (c *APIServerConfig) validate() error {
	if err := checkStruct(c, "api_server"); err != nil {
		return err
	}
	return c.CORS.validate()
}

func (c *APIServerConfig) VerifyRecommendations() []string {
	var warnings []string

	// システム予約ポート（1024 未満）の使用は管理者権限が必要になる場合がある
	if c.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("システム予約ポート(1-1023)を使用する設定になっています(port: %d)。サーバー起動時に管理者権限が必要になる場合があります", c.ListenPort))
	}

	return warnings
}

// CORSConfig ブラウザのオリジン間リソース共有（CORS）ポリシーに関する設定です。
type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins" validate:"dive,cors_origin"`
}

func (c *CORSConfig) validate() error {
	if len(c.AllowOrigins) == 0 {
		return apperrors.New(apperrors.InvalidInput, "CORS許可オリジン(allow_origins)の一覧が空です")
	}

	for _, origin := range c.AllowOrigins {
		if origin == "*" && len(c.AllowOrigins) > 1 {
			return apperrors.New(apperrors.InvalidInput, "ワイルドカード(*)は他のオリジンと併用できません。すべてのオリジンを許可する場合はワイルドカードのみを設定してください")
		}
	}

	return checkStruct(c, "api_server.cors")
}

// SheetSyncConfig MongoDB から Google スプレッドシートへのミラーリングに関する設定です。
type SheetSyncConfig struct {
	Enabled             bool   `json:"enabled"`
	MongoURI            string `json:"mongo_uri"`
	MongoDatabase       string `json:"mongo_database"`
	CredentialsFile     string `json:"credentials_file"`
	GadgetSpreadsheetID string `json:"gadget_spreadsheet_id"`
	VenueSpreadsheetID  string `json:"venue_spreadsheet_id"`
	TimeSpec            string `json:"time_spec" validate:"required,cron_spec"`
}

func (c *SheetSyncConfig) validate() error {
	if !c.Enabled {
		return nil
	}

	if strings.TrimSpace(c.MongoURI) == "" {
		return apperrors.New(apperrors.InvalidInput, "シートミラーリング有効時はMongoDB接続URI(mongo_uri)が必須です")
	}
	if strings.TrimSpace(c.MongoDatabase) == "" {
		return apperrors.New(apperrors.InvalidInput, "シートミラーリング有効時はMongoDBデータベース名(mongo_database)が必須です")
	}
	if strings.TrimSpace(c.CredentialsFile) == "" {
		return apperrors.New(apperrors.InvalidInput, "シートミラーリング有効時はサービスアカウント認証ファイル(credentials_file)が必須です")
	}
	if _, err := os.Stat(c.CredentialsFile); err != nil {
		return apperrors.Wrapf(err, apperrors.InvalidInput, "指定されたサービスアカウント認証ファイル(credentials_file)を読み取れません: '%s'", c.CredentialsFile)
	}
	if strings.TrimSpace(c.GadgetSpreadsheetID) == "" && strings.TrimSpace(c.VenueSpreadsheetID) == "" {
		return apperrors.New(apperrors.InvalidInput, "シートミラーリング有効時はミラー先のスプレッドシートID(gadget_spreadsheet_id / venue_spreadsheet_id)を少なくとも1つ設定してください")
	}

	return checkStruct(c, "sheet_sync", "TimeSpec")
}

// NotifierConfig 運用者への失敗通知（テレグラム）に関する設定です。
// ボットトークンが空の場合、通知は無効として扱われます。
type NotifierConfig struct {
	TelegramBotToken string `json:"telegram_bot_token" validate:"omitempty,telegram_bot_token"`
	TelegramChatID   int64  `json:"telegram_chat_id"`
}

// TelegramEnabled テレグラム通知が有効かどうかを返します。
func (c *NotifierConfig) TelegramEnabled() bool {
	return c.TelegramBotToken != ""
}

func (c *NotifierConfig) validate() error {
	if err := checkStruct(c, "notifier"); err != nil {
		return err
	}
	if c.TelegramEnabled() && c.TelegramChatID == 0 {
		return apperrors.New(apperrors.InvalidInput, "テレグラム通知有効時はチャットID(telegram_chat_id)が必須です")
	}
	return nil
}

// defaultConfig 設定ファイル・環境変数で上書きされる前の既定値です。
func defaultConfig() AppConfig {
	return AppConfig{
		Debug: false,
		Catalog: CatalogConfig{
			FallbackToScraping: true,
			Marketplace:        "www.amazon.co.jp",
			SearchItemCount:    10,
			ScrapeTimeout:      "8s",
		},
		APIServer: APIServerConfig{
			ListenPort: 8080,
			CORS: CORSConfig{
				AllowOrigins: []string{"*"},
			},
		},
		SheetSync: SheetSyncConfig{
			Enabled:       false,
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "sofvo",
			TimeSpec:      "0 */30 * * * *",
		},
	}
}

// Load 既定の設定ファイルを読み込んでアプリケーション設定をロードします。
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile 指定されたパスの設定ファイルを読み込んで AppConfig を生成します。
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 既定値のロード（最も低い優先順位）
	if err := k.Load(structs.Provider(defaultConfig(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "アプリケーション既定設定のロードに失敗しました")
	}

	// 2. JSON 設定ファイルのロード（既定値を上書き）
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrapf(err, apperrors.System, "設定ファイルが見つかりません: '%s'", filename)
		}
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "設定ファイルのロード中にエラーが発生しました: '%s'", filename)
	}

	// 3. 環境変数のロード（最優先、ファイル設定を上書き）
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "環境変数のロードに失敗しました")
	}

	// 4. 構造体へのアンマーシャル（未知のキーはエラー）
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			ErrorUnused:      true,
			WeaklyTypedInput: true,
		},
	}
	var appConfig AppConfig
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "設定データのアプリケーション構造体への変換に失敗しました")
	}

	// 5. 妥当性の検証
	if err := appConfig.validate(); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "設定ファイル('%s')の妥当性検証に失敗しました", filename)
	}

	return &appConfig, nil
}
