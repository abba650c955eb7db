package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sofvo/catalog-server/internal/catalog/fetcher"
	apperrors "github.com/sofvo/catalog-server/internal/pkg/errors"
)

const searchResultHTML = `<!DOCTYPE html>
<html lang="ja"><head><meta charset="utf-8"><title>検索結果</title></head>
<body>
<div data-component-type="s-search-result" data-asin="B0ABCD1234">
  <img class="s-image" src="https://m.media-amazon.com/images/I/first.jpg">
  <h2><a href="/dp/B0ABCD1234"><span>ワイヤレスイヤホン Bluetooth5.3</span></a></h2>
  <span class="a-price"><span class="a-offscreen">￥１２，８００</span></span>
</div>
<!-- data-asin が空の広告枠は除外される -->
<div data-component-type="s-search-result" data-asin="">
  <img class="s-image" src="https://m.media-amazon.com/images/I/ad.jpg">
  <h2><a href="#"><span>スポンサー枠</span></a></h2>
</div>
<!-- h2 配下にタイトルが無い場合は .a-text-normal へフォールバックする -->
<div data-component-type="s-search-result" data-asin="B0EFGH5678">
  <img class="s-image" src="https://m.media-amazon.com/images/I/second.jpg">
  <a class="a-text-normal">イヤホンケース シリコン製</a>
</div>
<!-- 画像が無い要素は除外される -->
<div data-component-type="s-search-result" data-asin="B0IJKL9012">
  <h2><a href="/dp/B0IJKL9012"><span>画像なし商品</span></a></h2>
</div>
</body></html>`

const productPageHTML = `<!DOCTYPE html>
<html lang="ja"><head><meta charset="utf-8"><title>商品ページ</title></head>
<body>
<span id="productTitle"> ワイヤレスイヤホン Bluetooth5.3 </span>
<img id="landingImage" src="https://m.media-amazon.com/images/I/landing.jpg">
<span class="a-price"><span class="a-offscreen">￥12,800</span></span>
</body></html>`

func newTestScraper(serverURL string, timeout time.Duration) *Scraper {
	s := NewScraper(fetcher.NewHTTPFetcher(0), timeout)
	s.baseURL = serverURL
	return s
}

func TestScraperSearchProducts(t *testing.T) {
	t.Parallel()

	t.Run("検索結果ページから条件を満たす商品のみを抽出する", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/s", r.URL.Path)
			assert.Equal(t, "イヤホン", r.URL.Query().Get("k"))
			assert.Equal(t, "ja_JP", r.URL.Query().Get("language"))
			assert.Equal(t, fetcher.DefaultUserAgent, r.Header.Get("User-Agent"))
			assert.Equal(t, headerAcceptLanguage, r.Header.Get("Accept-Language"))

			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(searchResultHTML))
		}))
		defer server.Close()

		products, err := newTestScraper(server.URL, 0).SearchProducts(context.Background(), "イヤホン", "tag-22")

		require.NoError(t, err)
		require.Len(t, products, 2)

		first := products[0]
		assert.Equal(t, "B0ABCD1234", first.ID)
		assert.Equal(t, "ワイヤレスイヤホン Bluetooth5.3", first.Title)
		assert.Equal(t, "https://m.media-amazon.com/images/I/first.jpg", first.ImageURL)
		assert.Equal(t, "https://www.amazon.co.jp/dp/B0ABCD1234", first.DetailPageURL)
		assert.Equal(t, "https://www.amazon.co.jp/dp/B0ABCD1234?tag=tag-22", first.AffiliateURL)
		require.NotNil(t, first.Price)
		// 全角の価格表記は半角へ正規化される
		assert.Equal(t, "¥12,800", *first.Price)

		second := products[1]
		assert.Equal(t, "B0EFGH5678", second.ID)
		assert.Equal(t, "イヤホンケース シリコン製", second.Title)
		assert.Nil(t, second.Price)
	})

	t.Run("検索結果は最大10件をページの掲載順で返す", func(t *testing.T) {
		t.Parallel()

		// 有効な商品15件に加え、ASINの桁数が不正な要素を先頭と途中に混在させる
		var page strings.Builder
		page.WriteString(`<!DOCTYPE html><html lang="ja"><head><meta charset="utf-8"></head><body>`)
		writeCard := func(asin string, index int) {
			fmt.Fprintf(&page, `<div data-component-type="s-search-result" data-asin="%s">`, asin)
			fmt.Fprintf(&page, `<img class="s-image" src="https://m.media-amazon.com/images/I/%d.jpg">`, index)
			fmt.Fprintf(&page, `<h2><a href="/dp/%s"><span>商品 %d</span></a></h2></div>`, asin, index)
		}
		writeCard("B0SHORT12", 900) // 9桁
		for i := 0; i < 8; i++ {
			writeCard(fmt.Sprintf("B0CAP%05d", i), i)
		}
		writeCard("B0TOOLONG12", 901) // 11桁
		for i := 8; i < 15; i++ {
			writeCard(fmt.Sprintf("B0CAP%05d", i), i)
		}
		page.WriteString(`</body></html>`)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(page.String()))
		}))
		defer server.Close()

		products, err := newTestScraper(server.URL, 0).SearchProducts(context.Background(), "イヤホン", "tag-22")

		require.NoError(t, err)
		require.Len(t, products, 10)

		// 桁数不正のASINはスキップされ、有効な商品が掲載順のまま採用される
		for i, product := range products {
			assert.Equal(t, fmt.Sprintf("B0CAP%05d", i), product.ID)
		}
	})

	t.Run("商品要素が無いページでは空のスライスを返す", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(`<html><body><p>該当する商品はありません</p></body></html>`))
		}))
		defer server.Close()

		products, err := newTestScraper(server.URL, 0).SearchProducts(context.Background(), "存在しない商品名XYZ", "")

		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("応答がタイムアウトした場合はTimeoutエラーを返す", func(t *testing.T) {
		t.Parallel()

		started := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			close(started)
			<-r.Context().Done()
		}))
		defer server.Close()

		_, err := newTestScraper(server.URL, 50*time.Millisecond).SearchProducts(context.Background(), "イヤホン", "")

		<-started
		require.Error(t, err)
		assert.Equal(t, apperrors.Timeout, apperrors.UnderlyingType(err))
	})

	t.Run("5xxステータスはUnavailableエラーを返す", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := newTestScraper(server.URL, 0).SearchProducts(context.Background(), "イヤホン", "")

		require.Error(t, err)
		assert.Equal(t, apperrors.Unavailable, apperrors.UnderlyingType(err))
	})
}

func TestScraperGetProduct(t *testing.T) {
	t.Parallel()

	t.Run("商品ページから商品情報を抽出する", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/dp/B0ABCD1234", r.URL.Path)
			assert.Equal(t, "ja_JP", r.URL.Query().Get("language"))

			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(productPageHTML))
		}))
		defer server.Close()

		product, err := newTestScraper(server.URL, 0).GetProduct(context.Background(), "B0ABCD1234", "tag-22")

		require.NoError(t, err)
		assert.Equal(t, "B0ABCD1234", product.ID)
		assert.Equal(t, "ワイヤレスイヤホン Bluetooth5.3", product.Title)
		assert.Equal(t, "https://m.media-amazon.com/images/I/landing.jpg", product.ImageURL)
		assert.Equal(t, "https://www.amazon.co.jp/dp/B0ABCD1234", product.DetailPageURL)
		assert.Equal(t, "https://www.amazon.co.jp/dp/B0ABCD1234?tag=tag-22", product.AffiliateURL)
		require.NotNil(t, product.Price)
		assert.Equal(t, "¥12,800", *product.Price)
	})

	t.Run("情報を抽出できないページでも取得できた項目のみでレコードを返す", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(`<html><body><p>ページ構造が変更されました</p></body></html>`))
		}))
		defer server.Close()

		product, err := newTestScraper(server.URL, 0).GetProduct(context.Background(), "B0ABCD1234", "")

		require.NoError(t, err)
		assert.Equal(t, "B0ABCD1234", product.ID)
		assert.Empty(t, product.Title)
		assert.Empty(t, product.ImageURL)
		assert.Nil(t, product.Price)
		// URL は ASIN のみから導出されるため常に設定される
		assert.Equal(t, "https://www.amazon.co.jp/dp/B0ABCD1234", product.DetailPageURL)
	})
}

func TestNormalizePriceText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "全角数字と記号を半角へ変換", text: "￥１２，８００", want: "¥12,800"},
		{name: "半角の通貨記号と数字はそのまま", text: "¥12,800", want: "¥12,800"},
		{name: "前後の空白を除去", text: "  ¥500 ", want: "¥500"},
		{name: "空文字", text: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, normalizePriceText(tt.text))
		})
	}
}
