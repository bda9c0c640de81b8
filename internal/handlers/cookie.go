package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/osokin/authgate/internal/apperrors"
)

// RefreshCookieName is the fixed cookie slot of the refresh token
const RefreshCookieName = "refreshtoken"

// setRefreshCookie stores the refresh token in an HttpOnly cookie.
// The token value carries the "Bearer " prefix; a cookie value can't
// hold a space, so it travels percent-escaped.
func setRefreshCookie(w http.ResponseWriter, tokenValue string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    strings.ReplaceAll(tokenValue, " ", "%20"),
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// refreshTokenFromRequest extracts and unescapes the refresh token.
// A missing cookie and an empty value are the same failure.
func refreshTokenFromRequest(r *http.Request) (string, error) {
	cookie, err := r.Cookie(RefreshCookieName)
	if err != nil || cookie.Value == "" {
		return "", fmt.Errorf("refresh cookie: %w", apperrors.ErrRefreshTokenNotFound)
	}

	return strings.ReplaceAll(cookie.Value, "%20", " "), nil
}
