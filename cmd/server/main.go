package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/playperu/alfred0/internal/catalog"
	"github.com/playperu/alfred0/internal/config"
	"github.com/playperu/alfred0/internal/configstore"
	"github.com/playperu/alfred0/internal/database"
	"github.com/playperu/alfred0/internal/handler/health"
	"github.com/playperu/alfred0/internal/kv"
	"github.com/playperu/alfred0/internal/metrics"
	"github.com/playperu/alfred0/internal/migrations"
	"github.com/playperu/alfred0/internal/server"
	"github.com/playperu/alfred0/internal/tokens"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Storage ---
	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// --- Configuration ---
	cat := catalog.NewDefault()
	calc := tokens.NewCalculator()
	cs := configstore.New(store, cat, calc, logger)

	if err := cs.Load(ctx); err != nil {
		return fmt.Errorf("loading saved config: %w", err)
	}
	if cfg.SeedFile != "" {
		if _, err := cs.Seed(ctx, cfg.SeedFile); err != nil {
			return fmt.Errorf("seeding config: %w", err)
		}
	}
	logger.Info("config ready",
		"phases", len(cat.Phases()),
		"preset", calc.PresetID(),
		"max_tokens", calc.MaxPossibleTokens(),
	)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Options{
		Catalog:     cat,
		Tokens:      calc,
		Config:      cs,
		CORSOrigins: cfg.CORSOrigins,
		SPADir:      cfg.SPADir,
	}, func(r chi.Router) {
		r.Mount("/healthz", health.NewHandler(logger, map[string]health.Checker{
			cfg.StoreBackend: health.CheckFunc(store.Ping),
		}).Routes())
		r.Handle("/metrics", metrics.Handler())
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

// openStore connects the configured backend. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (kv.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		db, err := database.Open(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to sqlite: %w", err)
		}
		version, err := migrations.Run(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		logger.Info("connected to sqlite", "path", cfg.DBPath, "schema_version", version)
		return kv.NewSQLStore(db), func() { db.Close() }, nil

	case config.BackendRedis:
		rdb, err := kv.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		logger.Info("connected to redis", "prefix", cfg.RedisPrefix)
		return kv.NewRedisStore(rdb, cfg.RedisPrefix), func() { rdb.Close() }, nil

	default:
		logger.Warn("using in-memory store, configuration will not survive a restart")
		return kv.NewMemoryStore(), func() {}, nil
	}
}
