package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"bookstore/internal/book"
	"bookstore/internal/httpx"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func newRouter(books *book.HTTPHandler, db pinger) *http.ServeMux {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	books.Register(router)
	return router
}

// withMiddleware wraps the router. Security headers and CORS sit outside the
// tenant check so its rejections stay readable cross-origin. RequestID and
// Tenant run before the access log so every line carries both.
func withMiddleware(h http.Handler, cfg config, logger *slog.Logger, limiter *httpx.RateLimitMiddleware) http.Handler {
	return httpx.Chain(h,
		httpx.RequestIDMiddleware,
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.CORSOrigins, cfg.TenantHeader),
		httpx.TenantMiddleware(cfg.TenantHeader),
		httpx.AccessLogMiddleware(logger),
		httpx.RecoveryMiddleware,
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
		limiter.Middleware,
	)
}
