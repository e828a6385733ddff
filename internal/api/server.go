// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

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
	goredis "github.com/redis/go-redis/v9"

	"github.com/ammateam/callboard/internal/core/event"
	"github.com/ammateam/callboard/internal/core/person"
	"github.com/ammateam/callboard/internal/core/play"
	"github.com/ammateam/callboard/internal/core/venue"
	"github.com/ammateam/callboard/internal/finance/ledger"
	"github.com/ammateam/callboard/internal/finance/report"
	"github.com/ammateam/callboard/internal/platform/config"
	"github.com/ammateam/callboard/internal/platform/constants"
	"github.com/ammateam/callboard/internal/platform/middleware"
	"github.com/ammateam/callboard/internal/schedule"
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

	// Person manages the troupe directory and external bookings.
	Person *person.Handler

	// Venue manages performance venues.
	Venue *venue.Handler

	// Play manages the repertoire, roles, and base cast.
	Play *play.Handler

	// Event manages the calendar and its assignments.
	Event *event.Handler

	// Schedule serves availability, conflicts, the busy matrix and
	// personal timelines.
	Schedule *schedule.Handler

	// Report handles finance report import and browsing.
	Report *report.Handler

	// Ledger handles expenses and revenue aggregation.
	Ledger *ledger.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, rdb *goredis.Client, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context, rdb))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/people", h.Person.Routes())
		api.Mount("/venues", h.Venue.Routes())
		api.Mount("/plays", h.Play.Routes())
		api.Mount("/events", h.Event.Routes())
		api.Mount("/schedule", h.Schedule.Routes())
		api.Route("/finance", func(finance chi.Router) {
			finance.Mount("/reports", h.Report.Routes())
			finance.Mount("/", h.Ledger.Routes())
		})
	})

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
