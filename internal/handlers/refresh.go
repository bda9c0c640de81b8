package handlers

import (
	"fmt"
	"net/http"

	"github.com/osokin/authgate/internal/handlers/pipeline"
	"github.com/osokin/authgate/internal/handlers/render"
	"github.com/osokin/authgate/internal/token"
)

const refreshPath = "/auth/refresh"

// Refresh is the rotation interceptor. It owns POST /auth/refresh:
// cookie → store lookup → expiry check → new access token. The stored
// refresh row is read-only here; only the access token is reissued.
func Refresh(authService AuthService) pipeline.Middleware {
	type refreshResponse struct {
		AccessToken string `json:"accessToken"`
	}

	return func(next pipeline.Handler) pipeline.Handler {
		return func(w http.ResponseWriter, r *http.Request) error {
			if r.URL.Path != refreshPath || r.Method != http.MethodPost {
				return next(w, r)
			}

			refreshToken, err := refreshTokenFromRequest(r)
			if err != nil {
				return err
			}

			access, err := authService.Refresh(r.Context(), refreshToken)
			if err != nil {
				return fmt.Errorf("token rotation: %w", err)
			}

			w.Header().Set(token.Header, access.Value)
			render.JSON(w, refreshResponse{AccessToken: access.Value})
			return nil
		}
	}
}
