package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osokin/authgate/internal/apperrors"
	"github.com/osokin/authgate/internal/models"
	"github.com/osokin/authgate/internal/repository"
	"github.com/osokin/authgate/internal/testutil"
)

func mustParseTime(value string) time.Time {
	dt, err := time.Parse("2006-01-02 15:04:05Z07:00", value)
	if err != nil {
		panic(err)
	}
	return dt
}

func createTokenOwner(t *testing.T, tx pgx.Tx, nickname string) models.User {
	t.Helper()

	repo := UserRepo{db: tx}
	user, err := repo.Create(t.Context(), repository.CreateUserParams{
		Username:       "token owner",
		Nickname:       nickname,
		HashedPassword: "hash",
	})
	require.NoError(t, err)
	return user
}

func Test_RefreshTokenRepo(t *testing.T) {
	t.Parallel() // It's ok to run in parallel with other tests, but not with subtests

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	expiresAt := mustParseTime("2200-01-01 03:00:02Z")

	t.Run("save token ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			user := createTokenOwner(t, tx, "mentos")
			repo := RefreshTokenRepo{db: tx}

			got, err := repo.Save(t.Context(), user.ID, "Bearer secret-token", expiresAt)

			require.NoError(t, err)
			require.Equal(t, user.ID, got.UserID)
			require.Equal(t, "Bearer secret-token", got.Token)
			require.WithinDuration(t, time.Now(), got.CreatedAt, 5*time.Second)
			require.WithinDuration(t, expiresAt, got.ExpiresAt, time.Microsecond)
		})
	})

	t.Run("get token ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			user := createTokenOwner(t, tx, "mentos")
			repo := RefreshTokenRepo{db: tx}
			saved, err := repo.Save(t.Context(), user.ID, "Bearer secret-token", expiresAt)
			require.NoError(t, err)

			got, err := repo.Get(t.Context(), "Bearer secret-token")

			require.NoError(t, err)
			require.Equal(t, saved.UserID, got.UserID)
			require.Equal(t, saved.Token, got.Token)
			require.WithinDuration(t, saved.CreatedAt, got.CreatedAt, 0)
			require.WithinDuration(t, saved.ExpiresAt, got.ExpiresAt, 0)
		})
	})

	t.Run("get expired token still returns the row", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			user := createTokenOwner(t, tx, "mentos")
			repo := RefreshTokenRepo{db: tx}
			pastExpiry := mustParseTime("2020-01-01 00:00:00Z")
			_, err := repo.Save(t.Context(), user.ID, "Bearer old-token", pastExpiry)
			require.NoError(t, err)

			got, err := repo.Get(t.Context(), "Bearer old-token")

			require.NoError(t, err, "expiry is the caller's call, the repo returns the row")
			assert.True(t, got.IsExpired(time.Now()))
		})
	})

	t.Run("save again overwrites the user row", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			user := createTokenOwner(t, tx, "mentos")
			repo := RefreshTokenRepo{db: tx}
			_, err := repo.Save(t.Context(), user.ID, "Bearer first-token", expiresAt)
			require.NoError(t, err)

			second, err := repo.Save(t.Context(), user.ID, "Bearer second-token", expiresAt)
			require.NoError(t, err)
			require.Equal(t, "Bearer second-token", second.Token)

			// The first token is gone with the overwritten row
			_, err = repo.Get(t.Context(), "Bearer first-token")
			require.ErrorIs(t, err, apperrors.ErrRefreshTokenNotFound)

			got, err := repo.Get(t.Context(), "Bearer second-token")
			require.NoError(t, err)
			require.Equal(t, user.ID, got.UserID)
		})
	})

	t.Run("rows of different users stay apart", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			first := createTokenOwner(t, tx, "mentos")
			second := createTokenOwner(t, tx, "spring")
			repo := RefreshTokenRepo{db: tx}

			_, err := repo.Save(t.Context(), first.ID, "Bearer first-token", expiresAt)
			require.NoError(t, err)
			_, err = repo.Save(t.Context(), second.ID, "Bearer second-token", expiresAt)
			require.NoError(t, err)

			got, err := repo.Get(t.Context(), "Bearer first-token")
			require.NoError(t, err)
			assert.Equal(t, first.ID, got.UserID)
		})
	})

	t.Run("get unknown token fails", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := RefreshTokenRepo{db: tx}

			_, err := repo.Get(t.Context(), "Bearer unknown-token")

			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrRefreshTokenNotFound)
		})
	})
}
