package main

import (
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/tallyup/internal/auth"
	"github.com/mmynk/tallyup/internal/middleware"
	"github.com/mmynk/tallyup/internal/service"
	"github.com/mmynk/tallyup/internal/storage"
	"github.com/mmynk/tallyup/pkg/api/apiconnect"
)

type deps struct {
	store           storage.Store
	authenticator   auth.Authenticator
	tokens          *auth.TokenIssuer
	defaultCurrency string
	registry        *prometheus.Registry
	logger          *slog.Logger
}

// newHandler mounts the Connect services, /metrics and /healthz.
func newHandler(d deps) http.Handler {
	metrics := middleware.NewMetrics(d.registry)
	common := []connect.Interceptor{
		metrics.Interceptor(),
		middleware.LoggingInterceptor(d.logger),
	}
	with := func(extra ...connect.Interceptor) connect.HandlerOption {
		return connect.WithInterceptors(append(append([]connect.Interceptor{}, common...), extra...)...)
	}

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(
		service.NewAuthService(d.authenticator, d.tokens, d.store, d.logger),
		with(middleware.OptionalAuth(d.tokens)),
	))
	mux.Handle(apiconnect.NewCalculatorServiceHandler(
		service.NewCalculatorService(d.logger),
		with(),
	))
	mux.Handle(apiconnect.NewLedgerServiceHandler(
		service.NewLedgerService(d.store, d.defaultCurrency, d.logger),
		with(middleware.RequireAuth(d.tokens)),
	))

	mux.Handle("GET /metrics", promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{Registry: d.registry}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})

	// h2c serves HTTP/2 without TLS, which Connect's gRPC protocol needs.
	return h2c.NewHandler(loggingMiddleware(d.logger, corsMiddleware(mux)), &http2.Server{})
}

// loggingMiddleware logs every HTTP request at debug level.
func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
