package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/width"
)

// extractPrice 検索結果の商品要素から価格テキストを抽出します。
// 価格が表示されていない場合は空文字を返します。
func extractPrice(sel *goquery.Selection) string {
	return normalizePriceText(sel.Find(".a-price .a-offscreen").First().Text())
}

// normalizePriceText 価格テキストの表記ゆれを正規化します。
// 全角の数字・記号を半角に変換し、前後の空白を除去します。
func normalizePriceText(text string) string {
	return strings.TrimSpace(width.Narrow.String(text))
}
