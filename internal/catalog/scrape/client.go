// Package scrape Amazon.co.jp の検索・商品ページのスクレイピングを提供します。
//
// PA-API が利用できない、あるいは失敗した場合のフォールバック経路として
// 使用されることを想定しています。ページ構造の変更に弱いため、抽出できた
// 情報のみで商品レコードを構成します。
package scrape

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/sofvo/catalog-server/internal/catalog/fetcher"
	apperrors "github.com/sofvo/catalog-server/internal/pkg/errors"
)

const (
	// BaseURL スクレイピング対象サイトのベース URL です。
	BaseURL = "https://www.amazon.co.jp"

	// DefaultTimeout 1 ページの取得に許容する時間です。
	// この時間を超えた場合は Timeout エラーとして打ち切ります。
	DefaultTimeout = 8 * time.Second

	headerAccept         = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	headerAcceptLanguage = "ja-JP,ja;q=0.9,en;q=0.8"
)

// Scraper Amazon.co.jp のページを取得・解析するスクレイパーです。
type Scraper struct {
	fetcher fetcher.Fetcher
	timeout time.Duration

	// baseURL 取得対象サイトのベース URL です。テストで差し替えられます。
	baseURL string
}

// NewScraper 新しい Scraper を生成します。
// timeout が 0 の場合は既定値（8 秒）を使用します。
func NewScraper(f fetcher.Fetcher, timeout time.Duration) *Scraper {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Scraper{
		fetcher: f,
		timeout: timeout,
		baseURL: BaseURL,
	}
}

// fetchDocument 指定された URL のページを取得して goquery ドキュメントに変換します。
// 文字エンコーディングは Content-Type ヘッダーとページ内容から自動判別します。
func (s *Scraper) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	header := http.Header{}
	header.Set("User-Agent", fetcher.DefaultUserAgent)
	header.Set("Accept", headerAccept)
	header.Set("Accept-Language", headerAcceptLanguage)

	resp, err := fetcher.Get(ctx, s.fetcher, url, header)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.Wrapf(err, apperrors.Timeout, "ページの取得がタイムアウトしました (URL: %s)", url)
		}
		return nil, apperrors.Wrapf(err, apperrors.ExecutionFailed, "ページの取得に失敗しました (URL: %s)", url)
	}
	defer resp.Body.Close()

	if err := fetcher.CheckResponseStatus(resp); err != nil {
		return nil, err
	}

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ParsingFailed, "文字エンコーディングの判別に失敗しました (URL: %s)", url)
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ParsingFailed, "HTMLの解析に失敗しました (URL: %s)", url)
	}
	return doc, nil
}
