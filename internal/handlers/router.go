package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/osokin/authgate/internal/handlers/middleware"
	"github.com/osokin/authgate/internal/handlers/pipeline"
	"github.com/osokin/authgate/internal/logger"
	"github.com/osokin/authgate/internal/models"
)

// AuthService is the pipeline's view of the authentication operations
type AuthService interface {
	// Login with nickname and password
	// Unknown handle: apperrors.ErrUserNotFound
	// Wrong password: apperrors.ErrPasswordMismatch
	Login(ctx context.Context, nickname string, password string) (models.TokenPair, error)

	// Reissue an access token from a persisted refresh token
	// Unknown token: apperrors.ErrRefreshTokenNotFound
	// Expired row: apperrors.ErrExpiredRefreshToken
	Refresh(ctx context.Context, refreshToken string) (models.IssuedToken, error)

	// Validate a transmitted access token and resolve its identity,
	// keeping the codec's failure classification
	Authenticate(ctx context.Context, headerValue string) (models.Identity, error)

	// Refresh token lifetime, the max-age of the refresh cookie
	RefreshTTL() time.Duration
}

type UserService interface {
	// Register new user; duplicate nickname: apperrors.ErrUserAlreadyExists
	Register(ctx context.Context, username string, nickname string, password string) (models.User, error)

	// Unknown handle: apperrors.ErrUserNotFound
	GetByNickname(ctx context.Context, nickname string) (models.User, error)
}

// NewRouter assembles the interceptor chain in its fixed order:
// error normalizer → refresh → authorization → login → terminal routes.
// Each interceptor either owns its URL and terminates, or passes the
// request through unchanged.
func NewRouter(authService AuthService, userService UserService, l logger.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /auth/signin", handleSignin(userService))
	mux.Handle("GET /api/users", handleUserInfo(userService))

	chain := pipeline.Chain(
		pipeline.Terminal(mux),
		Refresh(authService),
		Authorize(authService),
		Login(authService, l),
	)

	return middleware.Logger(l)(pipeline.Normalize(l, chain))
}
