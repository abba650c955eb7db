package paapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/sofvo/catalog-server/internal/catalog"
	"github.com/sofvo/catalog-server/internal/catalog/fetcher"
	apperrors "github.com/sofvo/catalog-server/internal/pkg/errors"
	applog "github.com/sofvo/catalog-server/pkg/log"
)

const (
	operationSearchItems = "SearchItems"
	operationGetItems    = "GetItems"

	// defaultSearchItemCount SearchItems で取得する商品の最大件数です。
	defaultSearchItemCount = 10
)

// defaultResources PA-API に要求するレスポンスリソースの一覧です。
var defaultResources = []string{
	"ItemInfo.Title",
	"Images.Primary.Large",
	"Images.Primary.Medium",
	"Offers.Listings.Price",
}

// Options Client の動作を調整するオプションです。
// ゼロ値のフィールドには既定値が適用されます。
type Options struct {
	// Marketplace リクエストに指定するマーケットプレイスのホスト名です。
	Marketplace string

	// SearchItemCount SearchItems で要求する商品の最大件数です。
	SearchItemCount int
}

// Client PA-API v5 のクライアントです。
// 認証情報は呼び出しのたびに CredentialProvider から取得します。
type Client struct {
	signer      *Signer
	fetcher     fetcher.Fetcher
	credentials catalog.CredentialProvider

	marketplace     string
	searchItemCount int
}

// NewClient 新しい Client を生成します。
func NewClient(f fetcher.Fetcher, credentials catalog.CredentialProvider, opts Options) *Client {
	if opts.Marketplace == "" {
		opts.Marketplace = catalog.DefaultMarketplace
	}
	if opts.SearchItemCount <= 0 {
		opts.SearchItemCount = defaultSearchItemCount
	}
	return &Client{
		signer:          NewSigner(),
		fetcher:         f,
		credentials:     credentials,
		marketplace:     opts.Marketplace,
		searchItemCount: opts.SearchItemCount,
	}
}

// searchItemsPayload SearchItems 操作のリクエストペイロードです。
type searchItemsPayload struct {
	Keywords    string   `json:"Keywords"`
	Resources   []string `json:"Resources"`
	SearchIndex string   `json:"SearchIndex"`
	ItemCount   int      `json:"ItemCount"`
	PartnerTag  string   `json:"PartnerTag"`
	PartnerType string   `json:"PartnerType"`
	Marketplace string   `json:"Marketplace"`
}

// getItemsPayload GetItems 操作のリクエストペイロードです。
type getItemsPayload struct {
	ItemIds     []string `json:"ItemIds"`
	Resources   []string `json:"Resources"`
	PartnerTag  string   `json:"PartnerTag"`
	PartnerType string   `json:"PartnerType"`
	Marketplace string   `json:"Marketplace"`
}

// SearchItems キーワードで商品を検索します。
// 認証情報が不完全な場合は署名を行わずにエラーを返します。
func (c *Client) SearchItems(ctx context.Context, keywords string) ([]catalog.Product, error) {
	creds := c.credentials.Credentials()
	if err := creds.Require(); err != nil {
		return nil, err
	}

	payload := searchItemsPayload{
		Keywords:    keywords,
		Resources:   defaultResources,
		SearchIndex: "All",
		ItemCount:   c.searchItemCount,
		PartnerTag:  creds.PartnerTag,
		PartnerType: "Associates",
		Marketplace: c.marketplace,
	}

	body, err := c.execute(ctx, operationSearchItems, payload, creds)
	if err != nil {
		return nil, err
	}

	return normalizeSearchItems(body, creds.PartnerTag), nil
}

// GetItem ASIN を指定して単一商品を取得します。
// レスポンスに該当商品が含まれない場合は NotFound エラーを返します。
func (c *Client) GetItem(ctx context.Context, asin string) (*catalog.Product, error) {
	creds := c.credentials.Credentials()
	if err := creds.Require(); err != nil {
		return nil, err
	}

	payload := getItemsPayload{
		ItemIds:     []string{asin},
		Resources:   defaultResources,
		PartnerTag:  creds.PartnerTag,
		PartnerType: "Associates",
		Marketplace: c.marketplace,
	}

	body, err := c.execute(ctx, operationGetItems, payload, creds)
	if err != nil {
		return nil, err
	}

	product := normalizeGetItems(body, asin, creds.PartnerTag)
	if product == nil {
		return nil, apperrors.Newf(apperrors.NotFound, "ASIN '%s' に該当する商品が見つかりませんでした", asin)
	}
	return product, nil
}

// execute ペイロードを署名付きで送信し、レスポンスボディを返します。
// HTTP ステータスが 2xx 以外、またはレスポンスに Errors 配列が含まれる場合はエラーを返します。
func (c *Client) execute(ctx context.Context, operation string, payload any, creds catalog.Credentials) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "リクエストペイロードの生成に失敗しました")
	}

	signed := c.signer.Sign(encoded, operation, creds)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, signed.URL, bytes.NewReader(encoded))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "リクエストの生成に失敗しました")
	}
	req.Header = signed.Header

	resp, err := c.fetcher.Do(req)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ExecutionFailed, "PA-API %s の呼び出しに失敗しました", operation)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ExecutionFailed, "PA-API %s のレスポンス読み込みに失敗しました", operation)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		applog.WithComponentAndFields("paapi", applog.Fields{
			"operation": operation,
			"status":    resp.StatusCode,
		}).Warn("PA-APIがエラーステータスを返しました")

		return nil, apperrors.Newf(apperrors.ExecutionFailed,
			"PA-API %s がステータス %d を返しました", operation, resp.StatusCode)
	}

	if errors := gjson.GetBytes(body, "Errors"); errors.Exists() && len(errors.Array()) > 0 {
		first := errors.Array()[0]
		return nil, apperrors.Newf(apperrors.ExecutionFailed,
			"PA-API %s がエラーを返しました (Code: %s, Message: %s)",
			operation, first.Get("Code").String(), first.Get("Message").String())
	}

	return body, nil
}
