package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osokin/authgate/internal/repository"
)

// DBTX is the minimal pgx surface the repos need: a pool, a single
// connection or a transaction all satisfy it.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Storage struct {
	db DBTX
}

func NewStorage(db DBTX) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Users() repository.UserRepo {
	return &UserRepo{db: s.db}
}

func (s *Storage) RefreshTokens() repository.RefreshTokenRepo {
	return &RefreshTokenRepo{db: s.db}
}
