// Package catalog Amazon.co.jp の商品情報を解決するコアドメインを提供します。
//
// 解決は二段構えで行われます。認証情報が構成されていれば署名付きの
// PA-API v5 を一次情報源として使用し、未構成または失敗時には公開ページの
// スクレイピングへ縮退します。どちらの経路で取得しても、結果は単一の
// 正規化された Product 形式で返されます。
package catalog

import (
	"fmt"
	"net/url"
)

const (
	// DefaultMarketplace 既定のマーケットプレイスのホスト名です。
	DefaultMarketplace = "www.amazon.co.jp"

	// asinLength ASIN（Amazon 標準商品番号）の桁数です。
	asinLength = 10
)

// Product API・スクレイピングいずれの経路でも共通で返される正規化済みの商品レコードです。
//
// ID は呼び出し元または API から与えられた ASIN であり、解決に成功したレコードで
// 空になることはありません。DetailPageURL と AffiliateURL は ASIN と設定のみから
// 決定的に導出され、上流の HTML/JSON には依存しません。
type Product struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	ImageURL      string  `json:"imageUrl"`
	DetailPageURL string  `json:"detailPageUrl"`
	AffiliateURL  string  `json:"affiliateUrl"`
	Price         *string `json:"price"`
}

// DetailPageURL ASIN から商品詳細ページの URL を決定的に構築します。
func DetailPageURL(asin string) string {
	return fmt.Sprintf("https://%s/dp/%s", DefaultMarketplace, asin)
}

// AffiliateURL ASIN とパートナータグからアフィリエイトリンクを構築します。
// タグが未設定の場合は詳細ページの URL と同一の文字列を返します。
func AffiliateURL(asin, partnerTag string) string {
	detailPageURL := DetailPageURL(asin)
	if partnerTag == "" {
		return detailPageURL
	}
	return detailPageURL + "?tag=" + url.QueryEscape(partnerTag)
}

// LegacyImageURL ASIN から旧式の商品画像 URL パターンを構築します。
// API・スクレイピングの両方が失敗した場合の最小レコードで使用されます。
func LegacyImageURL(asin string) string {
	return fmt.Sprintf("https://images-na.ssl-images-amazon.com/images/P/%s.09.LZZZZZZZ.jpg", asin)
}

// MinimalProduct すべての照会が失敗した場合でも呼び出し元が描画できるように、
// ASIN のみから導出可能なフィールドを埋めた最小限の商品レコードを生成します。
func MinimalProduct(asin, partnerTag string) *Product {
	return &Product{
		ID:            asin,
		Title:         "",
		ImageURL:      LegacyImageURL(asin),
		DetailPageURL: DetailPageURL(asin),
		AffiliateURL:  AffiliateURL(asin, partnerTag),
		Price:         nil,
	}
}

// ValidASIN 文字列が ASIN として妥当な形式（10 桁の英数字）かどうかを返します。
func ValidASIN(asin string) bool {
	if len(asin) != asinLength {
		return false
	}
	for _, r := range asin {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'A' && r <= 'Z':
		case r >= 'a' && r <= 'z':
		default:
			return false
		}
	}
	return true
}
