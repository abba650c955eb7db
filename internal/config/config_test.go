package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/sofvo/catalog-server/internal/pkg/errors"
)

// writeConfigFile テスト用の設定ファイルを一時ディレクトリに書き出します。
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadWithFile(t *testing.T) {
	t.Run("空の設定ファイルでは既定値が適用される", func(t *testing.T) {
		cfg, err := LoadWithFile(writeConfigFile(t, `{}`))

		require.NoError(t, err)
		assert.False(t, cfg.Debug)
		assert.True(t, cfg.Catalog.FallbackToScraping)
		assert.Equal(t, "www.amazon.co.jp", cfg.Catalog.Marketplace)
		assert.Equal(t, 10, cfg.Catalog.SearchItemCount)
		assert.Equal(t, "8s", cfg.Catalog.ScrapeTimeout)
		assert.Equal(t, 8080, cfg.APIServer.ListenPort)
		assert.Equal(t, []string{"*"}, cfg.APIServer.CORS.AllowOrigins)
		assert.False(t, cfg.SheetSync.Enabled)
		assert.Equal(t, "0 */30 * * * *", cfg.SheetSync.TimeSpec)
		assert.False(t, cfg.Notifier.TelegramEnabled())
	})

	t.Run("設定ファイルの値が既定値を上書きする", func(t *testing.T) {
		cfg, err := LoadWithFile(writeConfigFile(t, `{
			"debug": true,
			"catalog": {"fallback_to_scraping": false, "scrape_timeout": "5s"},
			"api_server": {"listen_port": 9090, "cors": {"allow_origins": ["https://sofvo.example.com"]}}
		}`))

		require.NoError(t, err)
		assert.True(t, cfg.Debug)
		assert.False(t, cfg.Catalog.FallbackToScraping)
		assert.Equal(t, "5s", cfg.Catalog.ScrapeTimeout)
		assert.Equal(t, 9090, cfg.APIServer.ListenPort)
		assert.Equal(t, []string{"https://sofvo.example.com"}, cfg.APIServer.CORS.AllowOrigins)
	})

	t.Run("環境変数が設定ファイルの値を上書きする", func(t *testing.T) {
		t.Setenv("CATALOG_API_SERVER__LISTEN_PORT", "18080")
		t.Setenv("CATALOG_CATALOG__FALLBACK_TO_SCRAPING", "false")

		cfg, err := LoadWithFile(writeConfigFile(t, `{"api_server": {"listen_port": 9090}}`))

		require.NoError(t, err)
		assert.Equal(t, 18080, cfg.APIServer.ListenPort)
		assert.False(t, cfg.Catalog.FallbackToScraping)
	})

	t.Run("設定ファイルが存在しない場合はSystemエラーを返す", func(t *testing.T) {
		_, err := LoadWithFile(filepath.Join(t.TempDir(), "missing.json"))

		require.Error(t, err)
		assert.Equal(t, apperrors.System, apperrors.UnderlyingType(err))
	})

	t.Run("未知の設定キーはエラーになる", func(t *testing.T) {
		_, err := LoadWithFile(writeConfigFile(t, `{"unknown_key": true}`))

		assert.Error(t, err)
	})

	t.Run("JSONとして不正なファイルはエラーになる", func(t *testing.T) {
		_, err := LoadWithFile(writeConfigFile(t, `{"debug": `))

		assert.Error(t, err)
	})
}

func TestLoadWithFileValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "ポート番号が範囲外",
			content: `{"api_server": {"listen_port": 70000}}`,
		},
		{
			name:    "CORS許可オリジンが空",
			content: `{"api_server": {"cors": {"allow_origins": []}}}`,
		},
		{
			name:    "CORSワイルドカードと他オリジンの併用",
			content: `{"api_server": {"cors": {"allow_origins": ["*", "https://example.com"]}}}`,
		},
		{
			name:    "CORS Originの形式が不正",
			content: `{"api_server": {"cors": {"allow_origins": ["ftp://example.com"]}}}`,
		},
		{
			name:    "スクレイピングタイムアウトの形式が不正",
			content: `{"catalog": {"scrape_timeout": "8 seconds"}}`,
		},
		{
			name:    "検索結果の最大件数が範囲外",
			content: `{"catalog": {"search_item_count": 100}}`,
		},
		{
			name:    "テレグラムのボットトークン形式が不正",
			content: `{"notifier": {"telegram_bot_token": "not-a-token", "telegram_chat_id": 1}}`,
		},
		{
			name:    "テレグラム有効時にチャットIDが未設定",
			content: `{"notifier": {"telegram_bot_token": "123456:ABCDEF1234ghIkl-zyx57W2v1u123ew11abc"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWithFile(writeConfigFile(t, tt.content))

			require.Error(t, err)
			assert.Equal(t, apperrors.InvalidInput, apperrors.UnderlyingType(err))
		})
	}
}

func TestSheetSyncConfigValidation(t *testing.T) {
	// サービスアカウント認証ファイルの実在チェックがあるため、実ファイルを用意する
	credentialsFile := filepath.Join(t.TempDir(), "service-account.json")
	require.NoError(t, os.WriteFile(credentialsFile, []byte(`{"type":"service_account"}`), 0o600))

	t.Run("必要項目が揃っていれば有効", func(t *testing.T) {
		cfg := SheetSyncConfig{
			Enabled:             true,
			MongoURI:            "mongodb://localhost:27017",
			MongoDatabase:       "sofvo",
			CredentialsFile:     credentialsFile,
			GadgetSpreadsheetID: "sheet-id",
			TimeSpec:            "0 */30 * * * *",
		}

		assert.NoError(t, cfg.validate())
	})

	t.Run("無効時は内容を検証しない", func(t *testing.T) {
		cfg := SheetSyncConfig{Enabled: false}

		assert.NoError(t, cfg.validate())
	})

	tests := []struct {
		name   string
		mutate func(c *SheetSyncConfig)
	}{
		{name: "MongoDB接続URIが未設定", mutate: func(c *SheetSyncConfig) { c.MongoURI = "" }},
		{name: "MongoDBデータベース名が未設定", mutate: func(c *SheetSyncConfig) { c.MongoDatabase = "" }},
		{name: "認証ファイルが未設定", mutate: func(c *SheetSyncConfig) { c.CredentialsFile = "" }},
		{name: "認証ファイルが存在しない", mutate: func(c *SheetSyncConfig) { c.CredentialsFile = "/no/such/file.json" }},
		{name: "スプレッドシートIDが1つも未設定", mutate: func(c *SheetSyncConfig) { c.GadgetSpreadsheetID = "" }},
		{name: "スケジュールの形式が不正", mutate: func(c *SheetSyncConfig) { c.TimeSpec = "*/5 * * * *" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := SheetSyncConfig{
				Enabled:             true,
				MongoURI:            "mongodb://localhost:27017",
				MongoDatabase:       "sofvo",
				CredentialsFile:     credentialsFile,
				GadgetSpreadsheetID: "sheet-id",
				TimeSpec:            "0 */30 * * * *",
			}
			tt.mutate(&cfg)

			err := cfg.validate()

			require.Error(t, err)
			assert.Equal(t, apperrors.InvalidInput, apperrors.UnderlyingType(err))
		})
	}
}
