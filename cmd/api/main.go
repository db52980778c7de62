package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookstore/internal/book"
	"bookstore/internal/httpx"
	"bookstore/internal/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	loadEnvFiles()

	cfg, cfgErr := loadConfig()
	log, err := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stdout})
	if err != nil {
		slog.Error("invalid logger configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(log)
	if cfgErr != nil {
		log.Error("invalid configuration", "error", cfgErr)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := openDB(ctx, cfg.DSN)
	if err != nil {
		log.Error("cannot connect to database", "dsn", redactDSN(cfg.DSN), "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()
	log.Info("database connection OK")

	bookRepository := book.NewPostgresRepo(dbPool, cfg.DBTimeout)
	bookService := book.NewService(bookRepository)
	bookHandler := book.NewHTTPHandler(bookService)

	limiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer limiter.Close()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      withMiddleware(newRouter(bookHandler, dbPool), cfg, log, limiter),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", cfg.Addr)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	}
}

func openDB(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
