package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/tallyup/internal/auth"
	"github.com/mmynk/tallyup/internal/middleware"
	"github.com/mmynk/tallyup/internal/storage/sqlite"
	"github.com/mmynk/tallyup/pkg/api"
	"github.com/mmynk/tallyup/pkg/api/apiconnect"
)

type testClients struct {
	auth       apiconnect.AuthServiceClient
	calculator apiconnect.CalculatorServiceClient
	ledgers    apiconnect.LedgerServiceClient
}

// setupTestServer serves all three services over httptest on a temp SQLite
// database, wired with the same interceptors as the real server.
func setupTestServer(t *testing.T) testClients {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(
		NewAuthService(authenticator, tokens, store, logger),
		connect.WithInterceptors(middleware.OptionalAuth(tokens)),
	))
	mux.Handle(apiconnect.NewCalculatorServiceHandler(NewCalculatorService(logger)))
	mux.Handle(apiconnect.NewLedgerServiceHandler(
		NewLedgerService(store, "EUR", logger),
		connect.WithInterceptors(middleware.RequireAuth(tokens)),
	))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return testClients{
		auth:       apiconnect.NewAuthServiceClient(server.Client(), server.URL),
		calculator: apiconnect.NewCalculatorServiceClient(server.Client(), server.URL),
		ledgers:    apiconnect.NewLedgerServiceClient(server.Client(), server.URL),
	}
}

// register creates an account and returns its session token.
func register(t *testing.T, c testClients, email string) string {
	t.Helper()
	resp, err := c.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:       email,
		DisplayName: "Tester",
		Password:    "correct horse",
	}))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Msg.Token)
	return resp.Msg.Token
}

// authed wraps msg in a request carrying the bearer token.
func authed[T any](token string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func requireCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, connect.CodeOf(err), err.Error())
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2))
}
