package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/osokin/authgate/internal/apperrors"
	"github.com/osokin/authgate/internal/handlers/authctx"
	"github.com/osokin/authgate/internal/handlers/pipeline"
	"github.com/osokin/authgate/internal/token"
)

// Paths served without a token: documentation and static assets
var publicPaths = []string{
	"/swagger-ui/",
	"/swagger-ui.html",
	"/v3/api-docs/",
	"/webjars/",
	"/favicon.ico",
}

// Authorize is the access-token interceptor guarding every path outside
// /auth/** and the public allow-list. On success the resolved identity
// is installed into the request context and the request passes through.
func Authorize(authService AuthService) pipeline.Middleware {
	return func(next pipeline.Handler) pipeline.Handler {
		return func(w http.ResponseWriter, r *http.Request) error {
			if isAuthPath(r.URL.Path) || isPublicPath(r.URL.Path) {
				return next(w, r)
			}

			headerValue := r.Header.Get(token.Header)
			if headerValue == "" {
				return fmt.Errorf("authorization header: %w", apperrors.ErrTokenNotFound)
			}

			identity, err := authService.Authenticate(r.Context(), headerValue)
			if err != nil {
				return err
			}

			ctx := authctx.New(r.Context(), identity)
			return next(w, r.WithContext(ctx))
		}
	}
}

func isAuthPath(path string) bool {
	return path == "/auth" || strings.HasPrefix(path, "/auth/")
}

func isPublicPath(path string) bool {
	for _, public := range publicPaths {
		if path == public || (strings.HasSuffix(public, "/") && strings.HasPrefix(path, public)) {
			return true
		}
	}
	return false
}
