package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osokin/authgate/internal/apperrors"
	"github.com/osokin/authgate/internal/models"
)

type RefreshTokenRepo struct {
	db DBTX
}

const saveToken = `-- name: SaveRefreshToken
INSERT INTO refresh_tokens (user_id, token, created_at, expires_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id) DO UPDATE
SET token = EXCLUDED.token, created_at = EXCLUDED.created_at, expires_at = EXCLUDED.expires_at
RETURNING user_id, token, created_at, expires_at
`

// Save upserts the single rotation row of the user. The per-row atomicity
// of the upsert is the only concurrency control the store needs.
func (r *RefreshTokenRepo) Save(ctx context.Context, userID int64, tokenString string, expiresAt time.Time) (models.RefreshToken, error) {
	rows, _ := r.db.Query(ctx, saveToken, userID, tokenString, time.Now().Truncate(time.Second), expiresAt)
	token, err := pgx.CollectOneRow(rows, rowToRefreshToken)
	if err != nil {
		return token, fmt.Errorf("db error: %w", err)
	}

	return token, nil
}

const getToken = `-- name: GetRefreshToken
SELECT user_id, token, created_at, expires_at
FROM refresh_tokens
WHERE token = $1
`

// Get returns the row matching the token string exactly.
// Expired rows are returned too: expiry is evaluated lazily by the caller.
func (r *RefreshTokenRepo) Get(ctx context.Context, tokenString string) (models.RefreshToken, error) {
	rows, _ := r.db.Query(ctx, getToken, tokenString)
	token, err := pgx.CollectOneRow(rows, rowToRefreshToken)

	switch {
	case err == nil:
		return token, nil
	case errors.Is(err, pgx.ErrNoRows):
		return token, fmt.Errorf("repo error: %w", apperrors.ErrRefreshTokenNotFound)
	default:
		return token, fmt.Errorf("db error: %w", err)
	}
}

func rowToRefreshToken(row pgx.CollectableRow) (models.RefreshToken, error) {
	var t models.RefreshToken
	err := row.Scan(&t.UserID, &t.Token, &t.CreatedAt, &t.ExpiresAt)
	return t, err
}
