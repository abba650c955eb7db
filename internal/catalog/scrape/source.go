package scrape

import (
	"context"

	"github.com/sofvo/catalog-server/internal/catalog"
)

// Source Scraper を商品取得経路として公開するアダプタです。
// アフィリエイトタグは呼び出しのたびに CredentialProvider から取得します。
type Source struct {
	scraper     *Scraper
	credentials catalog.CredentialProvider
}

var _ catalog.Source = (*Source)(nil)

// NewSource 新しい Source を生成します。
func NewSource(scraper *Scraper, credentials catalog.CredentialProvider) *Source {
	return &Source{
		scraper:     scraper,
		credentials: credentials,
	}
}

// Name 取得経路名を返します。
func (s *Source) Name() string {
	return "scrape"
}

// Available 常に true を返します。スクレイピングは認証情報を必要としません。
func (s *Source) Available() bool {
	return true
}

// SearchItems キーワードで商品を検索します。
func (s *Source) SearchItems(ctx context.Context, keywords string) ([]catalog.Product, error) {
	return s.scraper.SearchProducts(ctx, keywords, s.credentials.Credentials().PartnerTag)
}

// GetItem ASIN を指定して単一商品を取得します。
func (s *Source) GetItem(ctx context.Context, asin string) (*catalog.Product, error) {
	return s.scraper.GetProduct(ctx, asin, s.credentials.Credentials().PartnerTag)
}
