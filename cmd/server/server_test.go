package main

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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/tallyup/internal/auth"
	"github.com/mmynk/tallyup/internal/storage/sqlite"
	"github.com/mmynk/tallyup/pkg/api"
	"github.com/mmynk/tallyup/pkg/api/apiconnect"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	server := httptest.NewServer(newHandler(deps{
		store:           store,
		authenticator:   auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost),
		tokens:          auth.NewTokenIssuer("secret", time.Hour),
		defaultCurrency: "USD",
		registry:        prometheus.NewRegistry(),
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}))
	t.Cleanup(server.Close)
	return server
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t)
	code, body := get(t, server.URL+"/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok\n", body)
}

func TestMetricsAfterRPC(t *testing.T) {
	server := newTestServer(t)
	calc := apiconnect.NewCalculatorServiceClient(server.Client(), server.URL)

	_, err := calc.PreviewSplit(context.Background(), connect.NewRequest(&api.PreviewSplitRequest{
		Amount:       decimal.NewFromInt(10),
		Participants: []string{"A", "B", "C"},
	}))
	require.NoError(t, err)

	code, body := get(t, server.URL+"/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `tallyup_rpc_requests_total{code="ok",procedure="/tallyup.v1.CalculatorService/PreviewSplit"} 1`)
}

func TestLedgerRequiresToken(t *testing.T) {
	server := newTestServer(t)
	ledgers := apiconnect.NewLedgerServiceClient(server.Client(), server.URL)

	_, err := ledgers.ListLedgers(context.Background(), connect.NewRequest(&api.ListLedgersRequest{}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
}

func TestCORSPreflight(t *testing.T) {
	server := newTestServer(t)
	req, err := http.NewRequest(http.MethodOptions, server.URL+"/tallyup.v1.LedgerService/GetLedger", nil)
	require.NoError(t, err)

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "Authorization")
}
