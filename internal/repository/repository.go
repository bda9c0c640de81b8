package repository

import (
	"context"
	"time"

	"github.com/osokin/authgate/internal/models"
)

type CreateUserParams struct {
	Username       string
	Nickname       string
	HashedPassword string

	// Ordered role names; empty defaults to models.RoleUser
	Roles []string
}

// User repository interface
type UserRepo interface {
	// Create user
	// If a user with the nickname exists already has to return apperrors.ErrUserAlreadyExists
	Create(ctx context.Context, params CreateUserParams) (models.User, error)

	// Get user by id or by the unique nickname
	// If user not found must return apperrors.ErrUserNotFound
	GetByID(ctx context.Context, userID int64) (models.User, error)
	GetByNickname(ctx context.Context, nickname string) (models.User, error)
}

// RefreshToken repository interface
type RefreshTokenRepo interface {
	// Save the rotation token for the user: upsert keyed by user id,
	// so a later issuance overwrites the previous row
	Save(ctx context.Context, userID int64, tokenString string, expiresAt time.Time) (models.RefreshToken, error)

	// Get the row by exact token value
	// Returns the row even if expired; expiry is the caller's check.
	// If no row matches must return apperrors.ErrRefreshTokenNotFound
	Get(ctx context.Context, tokenString string) (models.RefreshToken, error)
}

// Storage aggregates the repositories over one connection or transaction
type Storage interface {
	Users() UserRepo
	RefreshTokens() RefreshTokenRepo
}
