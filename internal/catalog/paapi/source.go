package paapi

import (
	"github.com/sofvo/catalog-server/internal/catalog"
)

var _ catalog.Source = (*Client)(nil)

// Name 取得経路名を返します。
func (c *Client) Name() string {
	return "paapi"
}

// Available PA-API の認証情報が揃っている場合にのみ true を返します。
// 認証情報が不完全な状態では署名リクエストを送信できないため、
// この経路は利用不可として扱われます。
func (c *Client) Available() bool {
	return c.credentials.Credentials().Complete()
}
