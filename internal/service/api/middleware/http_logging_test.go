package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPLogger(t *testing.T) {
	t.Parallel()

	t.Run("正常なリクエストはそのまま通過する", func(t *testing.T) {
		t.Parallel()

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := HTTPLogger()(func(c echo.Context) error {
			return c.String(http.StatusOK, "ok")
		})

		require.NoError(t, handler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", rec.Body.String())
	})

	t.Run("ハンドラのエラーはエラーハンドラへ委譲される", func(t *testing.T) {
		t.Parallel()

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := HTTPLogger()(func(c echo.Context) error {
			return echo.NewHTTPError(http.StatusBadRequest, "bad request")
		})

		// ミドルウェア内で c.Error() により処理されるため、エラーは返らない
		require.NoError(t, handler(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMaskSensitiveQueryParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		uri    string
		verify func(t *testing.T, masked string)
	}{
		{
			name: "機密パラメータはマスキングされる",
			uri:  "/api/v1/search?q=ball&api_key=secret-key-1234",
			verify: func(t *testing.T, masked string) {
				assert.NotContains(t, masked, "secret-key-1234")
				assert.Contains(t, masked, "q=ball", "機密でないパラメータは保持されるべきです")
			},
		},
		{
			name: "複数の機密パラメータがすべてマスキングされる",
			uri:  "/login?password=hunter2&token=abcdef123456",
			verify: func(t *testing.T, masked string) {
				assert.NotContains(t, masked, "hunter2")
				assert.NotContains(t, masked, "abcdef123456")
			},
		},
		{
			name: "機密パラメータがない場合は原本のまま返す",
			uri:  "/api/v1/search?q=ball&page=2",
			verify: func(t *testing.T, masked string) {
				assert.Equal(t, "/api/v1/search?q=ball&page=2", masked)
			},
		},
		{
			name: "解析できないURIは原本のまま返す",
			uri:  "://invalid-uri",
			verify: func(t *testing.T, masked string) {
				assert.Equal(t, "://invalid-uri", masked)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.verify(t, maskSensitiveQueryParams(tt.uri))
		})
	}
}
