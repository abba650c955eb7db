package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	t.Run("有効な設定", func(t *testing.T) {
		t.Parallel()

		opts := Options{
			Name:       "test-app",
			Dir:        t.TempDir(),
			Level:      InfoLevel,
			MaxAge:     30,
			MaxSizeMB:  100,
			MaxBackups: 20,
		}

		assert.NoError(t, opts.Validate())
	})

	t.Run("Name未設定はエラー", func(t *testing.T) {
		t.Parallel()

		opts := Options{}

		assert.Error(t, opts.Validate())
	})

	t.Run("Dirがファイルとして存在する場合はエラー", func(t *testing.T) {
		t.Parallel()

		filePath := filepath.Join(t.TempDir(), "not-a-dir")
		require.NoError(t, os.WriteFile(filePath, []byte("x"), 0o600))

		opts := Options{Name: "test-app", Dir: filePath}

		assert.Error(t, opts.Validate())
	})

	t.Run("存在しないDirは許容される", func(t *testing.T) {
		t.Parallel()

		opts := Options{
			Name: "test-app",
			Dir:  filepath.Join(t.TempDir(), "logs"),
		}

		assert.NoError(t, opts.Validate(), "ディレクトリはSetup時に生成されるため存在しなくてもよい")
	})

	t.Run("負数の保管設定はエラー", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			opts Options
		}{
			{"MaxAgeが負数", Options{Name: "test-app", MaxAge: -1}},
			{"MaxSizeMBが負数", Options{Name: "test-app", MaxSizeMB: -1}},
			{"MaxBackupsが負数", Options{Name: "test-app", MaxBackups: -1}},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				assert.Error(t, tt.opts.Validate())
			})
		}
	})
}

func TestProfiles(t *testing.T) {
	t.Parallel()

	t.Run("運用環境プロファイル", func(t *testing.T) {
		t.Parallel()

		opts := NewProductionOptions("catalog-server")

		assert.Equal(t, "catalog-server", opts.Name)
		assert.Equal(t, InfoLevel, opts.Level)
		assert.False(t, opts.EnableConsoleLog)
		assert.NoError(t, opts.Validate())
	})

	t.Run("開発環境プロファイル", func(t *testing.T) {
		t.Parallel()

		opts := NewDevelopmentOptions("catalog-server")

		assert.Equal(t, "catalog-server", opts.Name)
		assert.Equal(t, TraceLevel, opts.Level)
		assert.True(t, opts.EnableConsoleLog)
		assert.NoError(t, opts.Validate())
	})
}
