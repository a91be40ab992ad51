// Package server exposes the fee engine over a JSON HTTP API
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rgehrsitz/firbgo/internal/breakeven"
	"github.com/rgehrsitz/firbgo/internal/calculation"
	"github.com/rgehrsitz/firbgo/internal/compare"
	"github.com/rgehrsitz/firbgo/internal/domain"
)

// Options configures a Server
type Options struct {
	Engine    *calculation.FeeEngine
	CacheTTL  time.Duration
	RateLimit float64 // requests per second per client
	RateBurst int
	Logger    *slog.Logger
}

// Server serves fee calculations over HTTP
type Server struct {
	table   *domain.RateTable
	calc    calculation.Calculator
	compare *compare.CompareEngine
	solver  *breakeven.Solver
	limiter *clientLimiter
	log     *slog.Logger
	router  chi.Router
}

// New wires the engine, its cache and the router
func New(opts Options) *Server {
	engine := opts.Engine
	if engine == nil {
		engine = calculation.NewFeeEngine()
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	calc := calculation.NewCachedEngine(engine, opts.CacheTTL)

	s := &Server{
		table:   engine.Table,
		calc:    calc,
		compare: compare.NewCompareEngine(calc),
		solver:  breakeven.NewDefaultSolver(calc),
		limiter: newClientLimiter(opts.RateLimit, opts.RateBurst),
		log:     log,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(s.rateLimit)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/rates", s.handleRates)
		r.Get("/fees", s.handleFeesQuery)
		r.Post("/fees", s.handleFees)
		r.Post("/compare/states", s.handleCompareStates)
		r.Post("/affordability", s.handleAffordability)
	})
	return r
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Server listening", "addr", addr, "financialYear", s.calc.FinancialYear())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
