package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osokin/authgate/internal/apperrors"
	"github.com/osokin/authgate/internal/models"
	"github.com/osokin/authgate/internal/repository"
	"github.com/osokin/authgate/internal/token"
)

const (
	DefaultAccessTokenTTL  = 30 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

type Config struct {
	// Hasher to compare login passwords with stored hashes
	// If not set the default bcrypt hasher is used
	Hasher PasswordHasher

	// Access and refresh token lifetimes
	// If not set defaults are used; access must stay shorter than refresh
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Service owns the three pipeline operations: credential login,
// access-token authentication and refresh rotation.
type Service struct {
	codec   *token.Codec
	hasher  PasswordHasher
	storage repository.Storage

	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewService(cfg Config, codec *token.Codec, storage repository.Storage) (*Service, error) {
	if codec == nil || storage == nil {
		return nil, errors.New("codec and storage must not be nil")
	}

	hasher := cfg.Hasher
	if hasher == nil {
		hasher = DefaultHasher
	}

	setDefaultDuration := func(field *time.Duration, def time.Duration) {
		if *field == 0 {
			*field = def
		}
	}
	setDefaultDuration(&cfg.AccessTTL, DefaultAccessTokenTTL)
	setDefaultDuration(&cfg.RefreshTTL, DefaultRefreshTokenTTL)

	if cfg.AccessTTL >= cfg.RefreshTTL {
		return nil, errors.New("access token ttl must be shorter than refresh token ttl")
	}

	return &Service{
		codec:      codec,
		hasher:     hasher,
		storage:    storage,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}, nil
}

func (s *Service) RefreshTTL() time.Duration {
	return s.refreshTTL
}

// Login verifies the credential pair and mints a token pair.
// The refresh row of the user is overwritten: only the latest login's
// refresh token stays usable.
// Unknown nickname: apperrors.ErrUserNotFound
// Wrong password: apperrors.ErrPasswordMismatch
func (s *Service) Login(ctx context.Context, nickname string, password string) (models.TokenPair, error) {
	var pair models.TokenPair

	user, err := s.storage.Users().GetByNickname(ctx, nickname)
	if err != nil {
		return pair, fmt.Errorf("login: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return pair, fmt.Errorf("login: %w", apperrors.ErrPasswordMismatch)
	}

	identity := models.IdentityFromUser(user)

	access, err := s.codec.Issue(identity, s.accessTTL)
	if err != nil {
		return pair, fmt.Errorf("error while issuing access token. Err: %w", err)
	}

	refresh, err := s.codec.Issue(identity, s.refreshTTL)
	if err != nil {
		return pair, fmt.Errorf("error while issuing refresh token. Err: %w", err)
	}

	_, err = s.storage.RefreshTokens().Save(ctx, user.ID, refresh.Value, refresh.ExpiresAt)
	if err != nil {
		return pair, fmt.Errorf("error while saving refresh token. Err: %w", err)
	}

	return models.TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh reissues an access token from a persisted refresh token.
// The stored row is the authentication; the identity is rebuilt from the
// stored token's own claims without a signature re-check. The row itself
// is never rotated here.
// Unknown token: apperrors.ErrRefreshTokenNotFound
// Expired row: apperrors.ErrExpiredRefreshToken
func (s *Service) Refresh(ctx context.Context, refreshToken string) (models.IssuedToken, error) {
	row, err := s.storage.RefreshTokens().Get(ctx, refreshToken)
	if err != nil {
		return models.IssuedToken{}, fmt.Errorf("refresh: %w", err)
	}

	if row.IsExpired(time.Now()) {
		return models.IssuedToken{}, fmt.Errorf("refresh: %w", apperrors.ErrExpiredRefreshToken)
	}

	identity, err := s.codec.UnverifiedIdentity(token.StripPrefix(row.Token))
	if err != nil {
		return models.IssuedToken{}, fmt.Errorf("refresh: %w", err)
	}

	access, err := s.codec.Issue(identity, s.accessTTL)
	if err != nil {
		return models.IssuedToken{}, fmt.Errorf("error while issuing access token. Err: %w", err)
	}

	return access, nil
}

// Authenticate validates a transmitted access token value (with the
// "Bearer " prefix) and returns the identity it carries. Failures keep
// the codec's classification.
func (s *Service) Authenticate(ctx context.Context, headerValue string) (models.Identity, error) {
	raw := token.StripPrefix(headerValue)

	if err := s.codec.Validate(raw); err != nil {
		return models.Identity{}, fmt.Errorf("authenticate: %w", err)
	}

	identity, err := s.codec.Identity(raw)
	if err != nil {
		return models.Identity{}, fmt.Errorf("authenticate: %w", err)
	}

	return identity, nil
}
