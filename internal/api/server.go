// Copyright (c) 2026 MODON Evolutio. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/modonevolutio/modon/internal/blog"
	"github.com/modonevolutio/modon/internal/catalog/property"
	"github.com/modonevolutio/modon/internal/favorites"
	"github.com/modonevolutio/modon/internal/leads"
	"github.com/modonevolutio/modon/internal/platform/config"
	"github.com/modonevolutio/modon/internal/platform/constants"
	"github.com/modonevolutio/modon/internal/platform/middleware"
	"github.com/modonevolutio/modon/internal/platform/obs"
	"github.com/modonevolutio/modon/internal/platform/ratelimit"
	"github.com/modonevolutio/modon/internal/users/account"
	"github.com/modonevolutio/modon/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the session lifecycle (login, refresh, logout).
	Auth *auth.Handler

	// Account handles self-service profiles and back-office user management.
	Account *account.Handler

	// Property handles the public catalogue and back-office listing CRUD.
	Property *property.Handler

	// Leads handles public inquiry capture and back-office follow-up.
	Leads *leads.Handler

	// Favorites handles the per-user saved-listings shortlist.
	Favorites *favorites.Handler

	// Blog handles the bilingual editorial content.
	Blog *blog.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// submitLimiter is the fixed-window store shared by abuse-sensitive public
// endpoints; the lead form is its first consumer.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, submitLimiter *ratelimit.Limiter, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(obs.Instrument)
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration and scraping.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", obs.Handler())

	// The guard chain in front of the public lead form: origin check first,
	// then the per-client window.
	submitGuards := []func(http.Handler) http.Handler{
		middleware.CSRFGuard(cfg),
		middleware.SubmitLimit(submitLimiter, constants.LeadSubmitMaxRequests, constants.LeadSubmitWindow),
	}

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/users", h.Account.Routes())

		api.Route("/properties", func(group chi.Router) {
			h.Property.RegisterRoutes(group)
		})
		api.Route("/leads", func(group chi.Router) {
			h.Leads.RegisterRoutes(group, submitGuards...)
		})
		api.Route("/favorites", func(group chi.Router) {
			h.Favorites.RegisterRoutes(group)
		})
		api.Route("/blog", func(group chi.Router) {
			h.Blog.RegisterRoutes(group)
		})
	})

	// # Back-office Page Gate
	// Locale-prefixed admin pages are access checked before the shell is
	// served. Unauthorized navigation bounces to the locale login.
	adminGate := middleware.AdminGate(verifier, !cfg.IsDevelopment())
	shell := adminShellHandler()
	for _, locale := range constants.SupportedLocales {
		r.With(adminGate).Handle("/"+locale+"/admin", shell)
		r.With(adminGate).Handle("/"+locale+"/admin/*", shell)
	}

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
