package catalog

import (
	"os"

	apperrors "github.com/sofvo/catalog-server/internal/pkg/errors"
)

// PA-API 認証情報の環境変数名
const (
	EnvAccessKey  = "AMAZON_ACCESS_KEY"
	EnvSecretKey  = "AMAZON_SECRET_KEY"
	EnvPartnerTag = "AMAZON_PARTNER_TAG"
)

// Credentials PA-API の呼び出しに必要な認証情報一式です。
type Credentials struct {
	AccessKey  string
	SecretKey  string
	PartnerTag string
}

// Complete アクセスキー・シークレットキー・パートナータグの三点がすべて
// 設定されているかどうかを返します。
func (c Credentials) Complete() bool {
	return c.AccessKey != "" && c.SecretKey != "" && c.PartnerTag != ""
}

// Require 認証情報が不完全な場合に NotConfigured エラーを返します。
func (c Credentials) Require() error {
	if !c.Complete() {
		return apperrors.Newf(apperrors.NotConfigured,
			"PA-API の認証情報が構成されていません。%s, %s, %s を設定してください",
			EnvAccessKey, EnvSecretKey, EnvPartnerTag)
	}
	return nil
}

// CredentialProvider 認証情報の取得手段を抽象化するインターフェースです。
//
// 署名は要求ごとに再導出されるため、認証情報も呼び出しのたびに読み取られます。
// 本番では環境変数から読み取り、テストでは固定値に差し替えます。
type CredentialProvider interface {
	// Credentials 現時点の認証情報を返します。
	Credentials() Credentials
}

// EnvCredentialProvider 環境変数から認証情報を読み取る CredentialProvider 実装です。
// 値はキャッシュせず、呼び出しのたびに環境を参照します。
type EnvCredentialProvider struct{}

// コンパイル時にインターフェースの実装を検証します。
var _ CredentialProvider = (*EnvCredentialProvider)(nil)

// Credentials 環境変数から認証情報を読み取って返します。
func (EnvCredentialProvider) Credentials() Credentials {
	return Credentials{
		AccessKey:  os.Getenv(EnvAccessKey),
		SecretKey:  os.Getenv(EnvSecretKey),
		PartnerTag: os.Getenv(EnvPartnerTag),
	}
}

// StaticCredentialProvider 固定の認証情報を返す CredentialProvider 実装です。
// 主にテストでの差し替えに使用します。
type StaticCredentialProvider struct {
	Creds Credentials
}

var _ CredentialProvider = (*StaticCredentialProvider)(nil)

// Credentials 保持している認証情報をそのまま返します。
func (p *StaticCredentialProvider) Credentials() Credentials {
	return p.Creds
}
