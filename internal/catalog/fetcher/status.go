package fetcher

import (
	"net/http"

	apperrors "github.com/sofvo/catalog-server/internal/pkg/errors"
)

// CheckResponseStatus HTTP レスポンスのステータスコードを検証します。
// 2xx 以外のステータスはエラーとして扱います。
func CheckResponseStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}

	errType := apperrors.ExecutionFailed
	switch {
	case resp.StatusCode == http.StatusNotFound:
		errType = apperrors.NotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		errType = apperrors.Unavailable
	case resp.StatusCode >= 500:
		errType = apperrors.Unavailable
	}

	return apperrors.Newf(errType, "リクエスト先がステータス %d を返しました (URL: %s)",
		resp.StatusCode, resp.Request.URL)
}
