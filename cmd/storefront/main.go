// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command storefront is the terminal front end for the Velora client.
//
// # Startup Sequence
//
//  1. Load .env (development convenience; ignored when absent).
//  2. Initialize structured logger.
//  3. Load configuration from environment variables.
//  4. Select the token store backend (file by default, Redis when configured).
//  5. Wire the API client, session manager, and domain services.
//  6. Restore a persisted session, then dispatch the subcommand.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/taibuivan/velora/internal/platform/api"
	"github.com/taibuivan/velora/internal/platform/config"
	"github.com/taibuivan/velora/internal/platform/notify"
	redisstore "github.com/taibuivan/velora/internal/platform/redis"
	"github.com/taibuivan/velora/internal/platform/tokenstore"
	"github.com/taibuivan/velora/internal/shop/admin"
	"github.com/taibuivan/velora/internal/shop/cart"
	"github.com/taibuivan/velora/internal/shop/catalog"
	"github.com/taibuivan/velora/internal/shop/orders"
	"github.com/taibuivan/velora/internal/users/account"
	"github.com/taibuivan/velora/internal/users/session"
)

// app bundles the wired services handed to every subcommand.
type app struct {
	config   *config.Config
	logger   *slog.Logger
	sessions *session.Manager
	cart     *cart.Synchronizer
	catalog  *catalog.Service
	orders   *orders.Service
	account  *account.Service
	admin    *admin.Service
}

func main() {
	// ── 1. Environment file ───────────────────────────────────────────────
	// Best effort: a missing .env simply means the environment is already set.
	_ = godotenv.Load()

	// ── 2. Logger ─────────────────────────────────────────────────────────
	rawLog := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	log := rawLog.With(slog.String("app", "velora"))
	slog.SetDefault(log)

	// ── 3. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "velora"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	baseURL, err := cfg.BaseURL()
	must(log, err, "resolve API base URL")

	// Root context for the whole invocation. A CLI call that takes longer
	// than this is stuck, not slow.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// ── 4. Token store ────────────────────────────────────────────────────
	tokens, err := buildTokenStore(ctx, cfg, log)
	must(log, err, "initialize token store")

	// ── 5. Domain wiring ──────────────────────────────────────────────────
	apiClient := api.NewClient(baseURL, tokens, log,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithMaxRetries(cfg.MaxRetries),
		api.WithRateLimit(cfg.RequestsPerSecond),
	)

	sessions := session.NewManager(apiClient, tokens, log)
	synchronizer := cart.NewSynchronizer(apiClient, sessions, notify.NewLog(log), log)

	application := &app{
		config:   cfg,
		logger:   log,
		sessions: sessions,
		cart:     synchronizer,
		catalog:  catalog.NewService(apiClient),
		orders:   orders.NewService(apiClient, sessions, log),
		account:  account.NewService(apiClient, sessions),
		admin:    admin.NewService(apiClient, sessions, log),
	}

	// ── 6. Session restore + dispatch ─────────────────────────────────────
	// Restoring before dispatch means every command sees the same state a
	// freshly-opened storefront page would.
	must(log, sessions.CheckAuth(ctx), "restore session")

	if err := dispatch(ctx, application, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// buildTokenStore selects the persistence backend: Redis for shared-terminal
// deployments when REDIS_URL is set, a user-config-dir file otherwise.
func buildTokenStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (tokenstore.Store, error) {
	if cfg.RedisURL != "" {
		client, err := redisstore.NewClient(ctx, cfg.RedisURL, log)
		if err != nil {
			return nil, err
		}

		terminal, err := os.Hostname()
		if err != nil {
			terminal = "default"
		}
		return tokenstore.NewRedisStore(client, terminal, 0), nil
	}

	path, err := cfg.TokenFilePath()
	if err != nil {
		return nil, err
	}
	return tokenstore.NewFileStore(path), nil
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
