package scrape

import (
	"context"
	"strings"

	"github.com/sofvo/catalog-server/internal/catalog"
)

// GetProduct ASIN を指定して商品ページから商品情報を抽出します。
//
// タイトル・画像・価格はそれぞれ複数のセレクタを順に試行します。ページ構造の
// 変更により一部の情報が取得できない場合でも、取得できた情報のみでレコードを
// 構成して返します（呼び出し側でタイトルの有無を判定します）。
func (s *Scraper) GetProduct(ctx context.Context, asin, partnerTag string) (*catalog.Product, error) {
	productURL := s.baseURL + "/dp/" + asin + "?language=ja_JP"

	doc, err := s.fetchDocument(ctx, productURL)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(doc.Find("#productTitle").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1#title span").First().Text())
	}

	var imageURL string
	for _, selector := range []string{"#imgBlkFront", "#landingImage", "#main-image"} {
		if src, ok := doc.Find(selector).First().Attr("src"); ok && src != "" {
			imageURL = src
			break
		}
	}

	var price *string
	if text := normalizePriceText(doc.Find(".a-price .a-offscreen").First().Text()); text != "" {
		price = &text
	} else if text := normalizePriceText(doc.Find("#priceblock_ourprice").First().Text()); text != "" {
		price = &text
	}

	return &catalog.Product{
		ID:            asin,
		Title:         title,
		ImageURL:      imageURL,
		DetailPageURL: catalog.DetailPageURL(asin),
		AffiliateURL:  catalog.AffiliateURL(asin, partnerTag),
		Price:         price,
	}, nil
}
