package integration

import (
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/osokin/authgate/internal/handlers"
	"github.com/osokin/authgate/internal/logger"
	"github.com/osokin/authgate/internal/repository/postgres"
	"github.com/osokin/authgate/internal/service/auth"
	"github.com/osokin/authgate/internal/service/user"
	"github.com/osokin/authgate/internal/testutil"
	"github.com/osokin/authgate/internal/token"
)

// TestSecret is a base64-encoded signing key shared by the integration tests
const TestSecret = "dGVzdC1zZWNyZXQta2V5LXRoaXJ0eS10d28tYnl0ZXMhIQ=="

type Services struct {
	AuthService *auth.Service
	UserService *user.Service
	Codec       *token.Codec
}

// Create db transaction and run server with that connection (one connection cause one transaction)
// All changes made through the server are rolled back when fn returns
func RunTx(dbpool *pgxpool.Pool, t *testing.T, fn func(srvURL string, services Services)) {
	testutil.WithTx(dbpool, t, func(tx pgx.Tx) {
		storage := postgres.NewStorage(tx)

		codec, err := token.New(TestSecret)
		require.NoError(t, err, "token codec should be created without errors")

		authService, err := auth.NewService(auth.Config{}, codec, storage)
		require.NoError(t, err, "auth service starting error")

		userService := user.NewService(auth.DefaultHasher, storage.Users())

		router := handlers.NewRouter(authService, userService, logger.NewNoOp())

		// Run http server with the router in transaction
		srv := httptest.NewServer(router)
		defer srv.Close()

		fn(srv.URL, Services{
			AuthService: authService,
			UserService: userService,
			Codec:       codec,
		})
	})
}
