package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osokin/authgate/internal/apperrors"
	"github.com/osokin/authgate/internal/models"
	"github.com/osokin/authgate/internal/repository"
)

type UserRepo struct {
	db DBTX
}

const createUser = `-- name: CreateUser
INSERT INTO users (username, nickname, password_hash, roles)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, username, nickname, password_hash, roles
`

func (r *UserRepo) Create(ctx context.Context, params repository.CreateUserParams) (models.User, error) {
	roles := params.Roles
	if len(roles) == 0 {
		roles = []string{models.RoleUser}
	}

	rows, _ := r.db.Query(ctx, createUser, params.Username, params.Nickname, params.HashedPassword, roles)
	user, err := pgx.CollectOneRow(rows, rowToUser)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
			return user, fmt.Errorf("repo error: %w", apperrors.ErrUserAlreadyExists)
		}
		return user, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

const getUserByID = `-- name: GetUserByID
SELECT id, created_at, username, nickname, password_hash, roles
FROM users
WHERE id = $1
`

func (r *UserRepo) GetByID(ctx context.Context, userID int64) (models.User, error) {
	rows, _ := r.db.Query(ctx, getUserByID, userID)
	return collectUser(rows)
}

const getUserByNickname = `-- name: GetUserByNickname
SELECT id, created_at, username, nickname, password_hash, roles
FROM users
WHERE nickname = $1
`

func (r *UserRepo) GetByNickname(ctx context.Context, nickname string) (models.User, error) {
	rows, _ := r.db.Query(ctx, getUserByNickname, nickname)
	return collectUser(rows)
}

func collectUser(rows pgx.Rows) (models.User, error) {
	user, err := pgx.CollectOneRow(rows, rowToUser)

	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, pgx.ErrNoRows):
		return user, fmt.Errorf("repo error: %w", apperrors.ErrUserNotFound)
	default:
		return user, fmt.Errorf("db error: %w", err)
	}
}

func rowToUser(row pgx.CollectableRow) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.CreatedAt, &u.Username, &u.Nickname, &u.HashedPassword, &u.Roles)
	return u, err
}
