// Copyright (c) 2026 MODON Evolutio. All rights reserved.

// Command api is the entry point for the MODON Evolutio HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
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

	"github.com/modonevolutio/modon/internal/api"
	"github.com/modonevolutio/modon/internal/blog"
	"github.com/modonevolutio/modon/internal/catalog/property"
	"github.com/modonevolutio/modon/internal/favorites"
	"github.com/modonevolutio/modon/internal/leads"
	"github.com/modonevolutio/modon/internal/platform/config"
	"github.com/modonevolutio/modon/internal/platform/constants"
	"github.com/modonevolutio/modon/internal/platform/migration"
	"github.com/modonevolutio/modon/internal/platform/obs"
	pgstore "github.com/modonevolutio/modon/internal/platform/postgres"
	"github.com/modonevolutio/modon/internal/platform/ratelimit"
	redisstore "github.com/modonevolutio/modon/internal/platform/redis"
	"github.com/modonevolutio/modon/internal/platform/sec"
	"github.com/modonevolutio/modon/internal/users/account"
	"github.com/modonevolutio/modon/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Metrics ────────────────────────────────────────────────────────
	obs.Init()

	// ── 7. Token Service ──────────────────────────────────────────────────
	// Signing secrets resolve lazily per call; a missing secret fails the
	// request that needed it, not the boot.
	tokenService := sec.NewTokenService(sec.EnvSecrets{})

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(rdb)
	authService := auth.NewService(userRepository, sessionRepository, tokenService)
	authHandler := auth.NewHandler(authService, !cfg.IsDevelopment())

	if !cfg.IsProduction() {
		must(log, authService.SeedDevAdmin(startupCtx), "seed dev admin")
		log.Info("dev_admin_seeded", slog.String("email", auth.DevAdminEmail))
	}

	accountService := account.NewService(userRepository, log)
	propertyService := property.NewService(property.NewPostgresRepository(pool), log)
	leadService := leads.NewService(leads.NewPostgresRepository(pool), log)
	favoriteService := favorites.NewService(favorites.NewPostgresRepository(pool), log)
	blogService := blog.NewService(blog.NewPostgresRepository(pool), log)

	// ── 10. Submission Limiter ────────────────────────────────────────────
	// Fixed-window limiter for the public lead form. Swept in the background
	// until shutdown.
	limiterDone := make(chan struct{})
	defer close(limiterDone)
	submitLimiter := ratelimit.NewLimiter()
	submitLimiter.StartSweeping(limiterDone, constants.RateLimitCleanupInterval)

	// ── 11. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Account:   account.NewHandler(accountService),
		Property:  property.NewHandler(propertyService),
		Leads:     leads.NewHandler(leadService),
		Favorites: favorites.NewHandler(favoriteService),
		Blog:      blog.NewHandler(blogService),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, tokenService, submitLimiter, handlers)

	// ── 12. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
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
