package auth

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osokin/authgate/internal/testutil"
	"github.com/osokin/authgate/tests/integration"
)

const (
	RefreshURL = "/auth/refresh"
)

func loginForCookie(t *testing.T, srvURL string) *http.Cookie {
	t.Helper()

	data := `{"nickname": "mentos", "password": "StrongEnoughPassword"}`
	resp, err := http.Post(srvURL+LoginURL, "application/json", strings.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, len(resp.Cookies()))
	return resp.Cookies()[0]
}

func Test_AuthRefresh(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	t.Run("refresh token ok", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, s integration.Services) {
			_, err := s.UserService.Register(t.Context(), "JIN HO", "mentos", "StrongEnoughPassword")
			require.NoError(t, err)
			cookie := loginForCookie(t, srvURL)

			req, err := http.NewRequest(http.MethodPost, srvURL+RefreshURL, nil)
			require.NoError(t, err)
			req.AddCookie(cookie)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", string(body))

			accessHeader := resp.Header.Get("Authorization")
			require.NotEmpty(t, accessHeader, "access token should not be empty")
			require.True(t, strings.HasPrefix(accessHeader, "Bearer "))
			require.Contains(t, string(body), `"accessToken"`)

			assert.Equal(t, 0, len(resp.Cookies()), "refresh must not roll the stored token")
		})
	})

	t.Run("same cookie refreshes repeatedly", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, s integration.Services) {
			_, err := s.UserService.Register(t.Context(), "JIN HO", "mentos", "StrongEnoughPassword")
			require.NoError(t, err)
			cookie := loginForCookie(t, srvURL)

			for range 2 {
				req, err := http.NewRequest(http.MethodPost, srvURL+RefreshURL, nil)
				require.NoError(t, err)
				req.AddCookie(cookie)

				resp, err := http.DefaultClient.Do(req)
				require.NoError(t, err, "refresh request should always complete")
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				defer func() { _ = resp.Body.Close() }()

				require.Equalf(t, http.StatusOK, resp.StatusCode, "not expected code. Body: %s", string(body))
			}
		})
	})

	t.Run("refresh without cookie", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, _ integration.Services) {
			resp, err := http.Post(srvURL+RefreshURL, "application/json", nil)
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			require.Equalf(t, http.StatusUnauthorized, resp.StatusCode, "not expected code. Body: %s", string(body))
			require.JSONEq(t, `
				{
					"data": null,
					"success": false,
					"error": {"message": "refresh token not found", "status": 401}
				}`, string(body))
		})
	})

	t.Run("refresh with unknown cookie", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, _ integration.Services) {
			req, err := http.NewRequest(http.MethodPost, srvURL+RefreshURL, nil)
			require.NoError(t, err)
			req.AddCookie(&http.Cookie{Name: "refreshtoken", Value: "Bearer%20made.up.token"})

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			require.Equalf(t, http.StatusUnauthorized, resp.StatusCode, "not expected code. Body: %s", string(body))
			require.Contains(t, string(body), "refresh token not found")
		})
	})
}
