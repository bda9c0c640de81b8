package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/osokin/authgate/internal/apperrors"
	"github.com/osokin/authgate/internal/handlers/pipeline"
	"github.com/osokin/authgate/internal/handlers/render"
	"github.com/osokin/authgate/internal/logger"
	"github.com/osokin/authgate/internal/token"
)

const loginPath = "/auth/login"

// Login is the credential interceptor. It owns POST /auth/login and
// passes every other request through unchanged.
//
// Both verifier failures (unknown handle, wrong password) collapse to
// the one generic invalid-credentials kind here: the login response
// must not reveal which half of the pair was wrong.
func Login(authService AuthService, l logger.Logger) pipeline.Middleware {
	type loginRequest struct {
		Nickname string `json:"nickname"`
		Password string `json:"password"`
	}
	type loginResponse struct {
		AccessToken string `json:"accessToken"`
	}

	return func(next pipeline.Handler) pipeline.Handler {
		return func(w http.ResponseWriter, r *http.Request) error {
			if r.URL.Path != loginPath || r.Method != http.MethodPost {
				return next(w, r)
			}

			var req loginRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return fmt.Errorf("%w: %w", apperrors.ErrJSONParse, err)
			}

			pair, err := authService.Login(r.Context(), req.Nickname, req.Password)
			if err != nil {
				l.Info("login rejected", "nickname", req.Nickname, "error", err.Error())
				return fmt.Errorf("login of %q: %w", req.Nickname, apperrors.ErrInvalidCredentials)
			}

			w.Header().Set(token.Header, pair.Access.Value)
			setRefreshCookie(w, pair.Refresh.Value, authService.RefreshTTL())

			// refresh token travels only in the cookie, never in the body
			render.JSON(w, loginResponse{AccessToken: pair.Access.Value})
			return nil
		}
	}
}
