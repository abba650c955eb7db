package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/sofvo/catalog-server/internal/pkg/errors"
)

func TestCredentialsComplete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		creds Credentials
		want  bool
	}{
		{
			name:  "三点すべて設定済み",
			creds: Credentials{AccessKey: "AK", SecretKey: "SK", PartnerTag: "tag-22"},
			want:  true,
		},
		{
			name:  "アクセスキーが未設定",
			creds: Credentials{SecretKey: "SK", PartnerTag: "tag-22"},
			want:  false,
		},
		{
			name:  "シークレットキーが未設定",
			creds: Credentials{AccessKey: "AK", PartnerTag: "tag-22"},
			want:  false,
		},
		{
			name:  "パートナータグが未設定",
			creds: Credentials{AccessKey: "AK", SecretKey: "SK"},
			want:  false,
		},
		{
			name:  "すべて未設定",
			creds: Credentials{},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.creds.Complete())
		})
	}
}

func TestCredentialsRequire(t *testing.T) {
	t.Parallel()

	t.Run("不完全な場合はNotConfiguredエラーを返す", func(t *testing.T) {
		t.Parallel()

		err := Credentials{}.Require()

		require.Error(t, err)
		assert.Equal(t, apperrors.NotConfigured, apperrors.UnderlyingType(err))
	})

	t.Run("完全な場合はエラーを返さない", func(t *testing.T) {
		t.Parallel()

		creds := Credentials{AccessKey: "AK", SecretKey: "SK", PartnerTag: "tag-22"}
		assert.NoError(t, creds.Require())
	})
}

func TestEnvCredentialProvider(t *testing.T) {
	// t.Setenv を使用するため並列化しない

	t.Setenv(EnvAccessKey, "AK1")
	t.Setenv(EnvSecretKey, "SK1")
	t.Setenv(EnvPartnerTag, "tag1-22")

	var provider EnvCredentialProvider
	assert.Equal(t, Credentials{AccessKey: "AK1", SecretKey: "SK1", PartnerTag: "tag1-22"},
		provider.Credentials())

	// 値はキャッシュされず、環境変数の変更が即座に反映される
	t.Setenv(EnvSecretKey, "SK2")
	assert.Equal(t, "SK2", provider.Credentials().SecretKey)
}
