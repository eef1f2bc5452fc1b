// Package server exposes tautology checking and proof construction over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/crillab/gopherproof/adequacy"
	"github.com/crillab/gopherproof/config"
)

// shutdownTimeout is the time left to running requests when the server stops.
const shutdownTimeout = 10 * time.Second

// Server is the HTTP front of a prover.
type Server struct {
	cfg      config.Server
	logger   *zap.Logger
	prover   *adequacy.Prover
	checkMax int // Maximum number of variables of a formula checked for tautology
	validate *validator.Validate
	router   chi.Router
}

// New returns a server configured by cfg.
func New(cfg config.Config, logger *zap.Logger) *Server {
	s := &Server{
		cfg:    cfg.Server,
		logger: logger,
		prover: adequacy.New(
			adequacy.WithLogger(logger),
			adequacy.WithWorkers(cfg.Workers),
			adequacy.WithMaxVariables(cfg.MaxVariables),
		),
		checkMax: cfg.CheckMaxVariables,
		validate: validator.New(),
	}
	limiter := NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)

	r := chi.NewRouter()
	r.Use(RequestID)
	if cfg.Server.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(Logging(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", s.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(limiter.Handler)
		r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
		r.Post("/tautology", s.tautology)
		r.Post("/proofs", s.proofs)
	})
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves requests on the configured address until ctx is done,
// then shuts the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.cfg.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}
	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
