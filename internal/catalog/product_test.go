package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidASIN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		asin string
		want bool
	}{
		{name: "英大文字と数字10文字", asin: "B0ABCD1234", want: true},
		{name: "数字のみ10文字", asin: "1234567890", want: true},
		{name: "小文字を含む10文字", asin: "b0abcd1234", want: true},
		{name: "空文字", asin: "", want: false},
		{name: "9文字", asin: "B0ABCD123", want: false},
		{name: "11文字", asin: "B0ABCD12345", want: false},
		{name: "記号を含む", asin: "B0ABCD-234", want: false},
		{name: "空白を含む", asin: "B0ABCD 234", want: false},
		{name: "マルチバイト文字を含む", asin: "B0ABCDあ234", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ValidASIN(tt.asin))
		})
	}
}

func TestAffiliateURL(t *testing.T) {
	t.Parallel()

	t.Run("タグ設定時はtagパラメータ付きのURLを返す", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "https://www.amazon.co.jp/dp/B0ABCD1234?tag=mytag-22",
			AffiliateURL("B0ABCD1234", "mytag-22"))
	})

	t.Run("タグ未設定時は詳細ページURLと同一の文字列を返す", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, DetailPageURL("B0ABCD1234"), AffiliateURL("B0ABCD1234", ""))
	})

	t.Run("タグはURLエスケープされる", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "https://www.amazon.co.jp/dp/B0ABCD1234?tag=my+tag%2F22",
			AffiliateURL("B0ABCD1234", "my tag/22"))
	})
}

func TestMinimalProduct(t *testing.T) {
	t.Parallel()

	product := MinimalProduct("B0ABCD1234", "mytag-22")

	require.NotNil(t, product)
	assert.Equal(t, "B0ABCD1234", product.ID)
	assert.Empty(t, product.Title)
	assert.Equal(t, "https://images-na.ssl-images-amazon.com/images/P/B0ABCD1234.09.LZZZZZZZ.jpg", product.ImageURL)
	assert.Equal(t, "https://www.amazon.co.jp/dp/B0ABCD1234", product.DetailPageURL)
	assert.Equal(t, "https://www.amazon.co.jp/dp/B0ABCD1234?tag=mytag-22", product.AffiliateURL)
	assert.Nil(t, product.Price)
}
