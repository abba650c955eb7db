package paapi

import (
	"github.com/tidwall/gjson"

	"github.com/sofvo/catalog-server/internal/catalog"
)

// normalizeSearchItems SearchItems のレスポンスを共通の商品レコードに正規化します。
// SearchResult.Items が存在しない場合は空のスライスを返します。
func normalizeSearchItems(body []byte, partnerTag string) []catalog.Product {
	items := gjson.GetBytes(body, "SearchResult.Items")
	if !items.Exists() {
		return []catalog.Product{}
	}

	products := make([]catalog.Product, 0, len(items.Array()))
	for _, item := range items.Array() {
		product := normalizeItem(item, partnerTag)
		if product == nil {
			continue
		}
		products = append(products, *product)
	}
	return products
}

// normalizeGetItems GetItems のレスポンスから指定 ASIN の商品を取り出して正規化します。
// 該当商品が無い場合は nil を返します。
func normalizeGetItems(body []byte, asin, partnerTag string) *catalog.Product {
	items := gjson.GetBytes(body, "ItemsResult.Items")
	if !items.Exists() {
		return nil
	}

	for _, item := range items.Array() {
		if item.Get("ASIN").String() != asin {
			continue
		}
		return normalizeItem(item, partnerTag)
	}
	return nil
}

// normalizeItem PA-API の商品要素を共通の商品レコードに変換します。
//
//   - 画像 URL は Large を優先し、無ければ Medium、どちらも無ければ空文字とします。
//   - 商品ページ URL はレスポンスの DetailPageURL を優先し、無ければ ASIN から構築します。
//   - 価格は最初のオファーの表示金額を採用し、無ければ nil とします。
func normalizeItem(item gjson.Result, partnerTag string) *catalog.Product {
	asin := item.Get("ASIN").String()
	if asin == "" {
		return nil
	}

	imageURL := item.Get("Images.Primary.Large.URL").String()
	if imageURL == "" {
		imageURL = item.Get("Images.Primary.Medium.URL").String()
	}

	detailPageURL := item.Get("DetailPageURL").String()
	if detailPageURL == "" {
		detailPageURL = catalog.DetailPageURL(asin)
	}

	var price *string
	if displayAmount := item.Get("Offers.Listings.0.Price.DisplayAmount"); displayAmount.Exists() {
		value := displayAmount.String()
		price = &value
	}

	return &catalog.Product{
		ID:            asin,
		Title:         item.Get("ItemInfo.Title.DisplayValue").String(),
		ImageURL:      imageURL,
		DetailPageURL: detailPageURL,
		AffiliateURL:  catalog.AffiliateURL(asin, partnerTag),
		Price:         price,
	}
}
