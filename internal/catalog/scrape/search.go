package scrape

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sofvo/catalog-server/internal/catalog"
)

// maxSearchResults 検索結果から採用する商品の最大件数です。
const maxSearchResults = 10

// SearchProducts キーワードで商品を検索し、検索結果ページから商品情報を抽出します。
//
// 抽出条件:
//   - data-asin 属性が ASIN の形式（英数字 10 文字）であること
//   - タイトルと画像 URL の両方が取得できること
//
// 条件を満たす商品のみを最大 10 件返します。1 件も抽出できなかった場合は
// 空のスライスを返します（エラーにはなりません）。
func (s *Scraper) SearchProducts(ctx context.Context, keywords, partnerTag string) ([]catalog.Product, error) {
	searchURL := s.baseURL + "/s?k=" + url.QueryEscape(keywords) + "&language=ja_JP"

	doc, err := s.fetchDocument(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	products := make([]catalog.Product, 0, maxSearchResults)
	doc.Find(`[data-component-type="s-search-result"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		asin, _ := sel.Attr("data-asin")
		if !catalog.ValidASIN(asin) {
			return true
		}

		title := strings.TrimSpace(sel.Find("h2 a span").First().Text())
		if title == "" {
			title = strings.TrimSpace(sel.Find(".a-text-normal").First().Text())
		}

		imageURL, _ := sel.Find("img.s-image").First().Attr("src")

		// タイトルまたは画像が欠けた要素は広告枠などの可能性が高いため除外します。
		if title == "" || imageURL == "" {
			return true
		}

		var price *string
		if text := extractPrice(sel); text != "" {
			price = &text
		}

		products = append(products, catalog.Product{
			ID:            asin,
			Title:         title,
			ImageURL:      imageURL,
			DetailPageURL: catalog.DetailPageURL(asin),
			AffiliateURL:  catalog.AffiliateURL(asin, partnerTag),
			Price:         price,
		})
		return len(products) < maxSearchResults
	})

	return products, nil
}
