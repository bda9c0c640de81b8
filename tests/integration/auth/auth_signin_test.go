package auth

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osokin/authgate/internal/testutil"
	"github.com/osokin/authgate/tests/integration"
)

const (
	SigninURL = "/auth/signin"
)

func Test_Signin(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	t.Run("signin ok", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, _ integration.Services) {
			data := `{"username": "JIN HO", "nickname": "mentos", "password": "1234"}`
			resp, err := http.Post(srvURL+SigninURL, "application/json", strings.NewReader(data))
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			require.Equalf(t, http.StatusCreated, resp.StatusCode, "not expected code. Body: %s", string(body))
			require.JSONEq(t, `
				{
					"data": {"username": "JIN HO", "nickname": "mentos", "authorities": ["ROLE_USER"]},
					"success": true,
					"error": null
				}`, string(body))
		})
	})

	t.Run("signin then login", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, _ integration.Services) {
			data := `{"username": "JIN HO", "nickname": "mentos", "password": "StrongEnoughPassword"}`
			resp, err := http.Post(srvURL+SigninURL, "application/json", strings.NewReader(data))
			require.NoError(t, err)
			_ = resp.Body.Close()
			require.Equal(t, http.StatusCreated, resp.StatusCode)

			cookie := loginForCookie(t, srvURL)
			require.NotEmpty(t, cookie.Value)
		})
	})

	t.Run("signin duplicated nickname", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, s integration.Services) {
			_, err := s.UserService.Register(t.Context(), "JIN HO", "mentos", "StrongEnoughPassword")
			require.NoError(t, err)

			data := `{"username": "someone else", "nickname": "mentos", "password": "1234"}`
			resp, err := http.Post(srvURL+SigninURL, "application/json", strings.NewReader(data))
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			require.Equalf(t, http.StatusBadRequest, resp.StatusCode, "not expected code. Body: %s", string(body))
			require.Contains(t, string(body), "already exists")
		})
	})

	t.Run("signin with short password", func(t *testing.T) {
		integration.RunTx(pg.Pool, t, func(srvURL string, _ integration.Services) {
			data := `{"username": "JIN HO", "nickname": "mentos", "password": "123"}`
			resp, err := http.Post(srvURL+SigninURL, "application/json", strings.NewReader(data))
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			require.Equalf(t, http.StatusBadRequest, resp.StatusCode, "not expected code. Body: %s", string(body))
			require.Contains(t, string(body), "password")
		})
	})
}
