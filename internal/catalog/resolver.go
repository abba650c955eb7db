package catalog

import (
	"context"
	"strings"

	apperrors "github.com/sofvo/catalog-server/internal/pkg/errors"
	applog "github.com/sofvo/catalog-server/pkg/log"
)

// userFacingFailureMessage すべての取得経路が失敗した場合に利用者へ返すメッセージです。
const userFacingFailureMessage = "検索に失敗しました。しばらく待ってからお試しください。"

// Source 商品情報の取得経路です。
// PA-API とスクレイピングがそれぞれこのインターフェースを実装します。
type Source interface {
	// Name ログ出力用の経路名を返します。
	Name() string

	// Available この経路が現在利用可能かどうかを返します。
	// 利用不可の経路はリクエストを送信せずにスキップされます。
	Available() bool

	// SearchItems キーワードで商品を検索します。
	SearchItems(ctx context.Context, keywords string) ([]Product, error)

	// GetItem ASIN を指定して単一商品を取得します。
	GetItem(ctx context.Context, asin string) (*Product, error)
}

// Resolver 複数の取得経路を順に試行して商品情報を解決します。
//
// 経路は登録順に試行され、最初に成功した結果を採用します。後続の経路は
// 先行する経路が失敗（またはスキップ）された場合にのみ使用されます。
type Resolver struct {
	sources     []Source
	credentials CredentialProvider

	// minimalOnFailure true の場合、単一商品の取得ですべての経路が失敗しても
	// エラーとせず、ASIN から構築した最小限のレコードを返します。
	minimalOnFailure bool
}

// NewResolver 新しい Resolver を生成します。
// sources は優先度の高い順に並べて渡します。
func NewResolver(sources []Source, credentials CredentialProvider, minimalOnFailure bool) *Resolver {
	return &Resolver{
		sources:          sources,
		credentials:      credentials,
		minimalOnFailure: minimalOnFailure,
	}
}

// SearchProducts キーワードで商品を検索します。
//
// キーワードが空（空白のみを含む）の場合は InvalidInput エラーを返します。
// どの経路も試行できなかった場合（認証情報の未構成など）は NotConfigured
// エラーを、試行した経路がすべて失敗した場合は利用者へそのまま提示できる
// メッセージを持つ Unavailable エラーを返します。
func (r *Resolver) SearchProducts(ctx context.Context, keywords string) ([]Product, error) {
	if strings.TrimSpace(keywords) == "" {
		return nil, apperrors.New(apperrors.InvalidInput, "検索キーワードが指定されていません")
	}

	logger := applog.WithComponentAndFields("catalog", applog.Fields{"keywords": keywords})

	attempted := false
	for _, source := range r.sources {
		if !source.Available() {
			logger.Debugf("取得経路'%s'は利用できないためスキップします", source.Name())
			continue
		}
		attempted = true

		products, err := source.SearchItems(ctx, keywords)
		if err != nil {
			logger.WithError(err).Warnf("取得経路'%s'での商品検索に失敗しました", source.Name())
			continue
		}

		logger.Debugf("取得経路'%s'で%d件の商品を取得しました", source.Name(), len(products))
		return products, nil
	}

	// 1件も試行されなかった場合は取得の失敗ではなく構成の不備として扱う
	if !attempted {
		if err := r.credentials.Credentials().Require(); err != nil {
			return nil, err
		}
	}

	return nil, apperrors.New(apperrors.Unavailable, userFacingFailureMessage)
}

// GetProduct ASIN を指定して単一商品を取得します。
//
// ASIN の形式が不正な場合は InvalidInput エラーを返します。フォールバック経路が
// 取得した商品にタイトルが無い場合は不完全なレコードとみなし、最小限のレコードに
// 差し替えます（優先経路のレコードは取得できた項目をそのまま採用します）。
// どの経路も試行できなかった場合は NotConfigured エラーを返し、すべての経路が
// 失敗した場合の挙動は minimalOnFailure の設定に従います。
func (r *Resolver) GetProduct(ctx context.Context, asin string) (*Product, error) {
	if !ValidASIN(asin) {
		return nil, apperrors.Newf(apperrors.InvalidInput, "ASINの形式が不正です (ASIN: %s)", asin)
	}

	logger := applog.WithComponentAndFields("catalog", applog.Fields{"asin": asin})

	var lastErr error
	attempted := false
	for i, source := range r.sources {
		if !source.Available() {
			logger.Debugf("取得経路'%s'は利用できないためスキップします", source.Name())
			continue
		}
		attempted = true

		product, err := source.GetItem(ctx, asin)
		if err != nil {
			logger.WithError(err).Warnf("取得経路'%s'での商品取得に失敗しました", source.Name())
			lastErr = err
			continue
		}

		// タイトル欠落による差し替えはフォールバック経路の結果のみに適用する
		if i > 0 && product.Title == "" {
			logger.Warnf("取得経路'%s'の商品レコードにタイトルが無いため最小限のレコードを使用します", source.Name())
			return r.minimalProduct(asin), nil
		}

		logger.Debugf("取得経路'%s'で商品を取得しました", source.Name())
		return product, nil
	}

	// 1件も試行されなかった場合は取得の失敗ではなく構成の不備として扱う
	if !attempted {
		if err := r.credentials.Credentials().Require(); err != nil {
			return nil, err
		}
	}

	if r.minimalOnFailure {
		logger.Warn("すべての取得経路が失敗したため最小限のレコードを使用します")
		return r.minimalProduct(asin), nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, apperrors.Newf(apperrors.NotFound, "ASIN '%s' に該当する商品が見つかりませんでした", asin)
}

func (r *Resolver) minimalProduct(asin string) *Product {
	return MinimalProduct(asin, r.credentials.Credentials().PartnerTag)
}
