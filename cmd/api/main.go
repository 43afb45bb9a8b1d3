// Command api serves the trip store and calendar endpoints.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/globetrotter/planner/apidoc"
	"github.com/globetrotter/planner/internal/config"
	"github.com/globetrotter/planner/internal/handler"
	"github.com/globetrotter/planner/internal/middleware"
	"github.com/globetrotter/planner/internal/repo"
	"github.com/globetrotter/planner/internal/reschedule"
	"github.com/globetrotter/planner/internal/service"
	"github.com/globetrotter/planner/migrations"
)

const shutdownGrace = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("api exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	pool, err := openPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.MigrateOnStart {
		if err := migrate(ctx, pool, logger); err != nil {
			return err
		}
	}
	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET not set; API is unauthenticated")
	}

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router(cfg, pool, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", httpSrv.Addr)
		serveErr <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("draining requests", "grace", shutdownGrace)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("stopped")
	return nil
}

// router wires repositories, services and handlers. /healthz and
// /openapi.yaml stay outside the auth group.
func router(cfg config.Config, pool *pgxpool.Pool, logger *slog.Logger) http.Handler {
	trips := repo.NewTripRepo(pool)
	stops := repo.NewStopRepo(pool)
	activities := repo.NewActivityRepo(pool)

	srv := handler.NewServer(
		service.NewTripService(trips, stops, activities),
		service.NewStopService(trips, stops, activities),
		service.NewActivityService(trips, stops, activities, reschedule.LogNotifier{Logger: logger}, logger),
		service.NewExportService(trips, stops, activities),
		logger,
	)

	r := chi.NewRouter()
	r.Use(
		chimiddleware.RequestID,
		chimiddleware.RealIP,
		middleware.NewSlogLogger(logger),
		chimiddleware.Recoverer,
		middleware.NewCORSHandler(cfg.CORSOrigins),
		middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes),
	)
	r.Get("/healthz", handler.GetHealth)
	r.Get("/openapi.yaml", apidoc.Handler)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuth(cfg.JWTSecret))
		srv.Mount(r)
	})
	return r
}

func openPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// migrate applies pending goose migrations through a database/sql view of pool.
func migrate(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	applied, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	for _, res := range applied {
		logger.Info("migration applied", "version", res.Source.Version, "duration", res.Duration)
	}
	return nil
}
