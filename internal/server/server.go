// Package server exposes the calculator's observability surface over
// HTTP: Prometheus metrics and a liveness endpoint. It deliberately
// serves nothing computational; evaluation stays in the CLI and TUI.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/agbru/mpcalc/internal/logging"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server serves the metrics endpoint on a dedicated address.
type Server struct {
	addr     string
	metrics  *Metrics
	logger   logging.Logger
	security SecurityConfig
}

// New creates a Server listening on addr once Run is called.
func New(addr string, logger logging.Logger) *Server {
	return &Server{
		addr:     addr,
		metrics:  NewMetrics(),
		logger:   logger,
		security: DefaultSecurityConfig(),
	}
}

// Run serves until ctx is canceled, then shuts down gracefully. The
// returned error is nil on a clean shutdown.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleMetrics)))
	mux.HandleFunc("/healthz", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleHealth)))

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("metrics server listening", logging.String("addr", s.addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("metrics server shutdown", err)
			return err
		}
		return nil
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			s.logger.Error("metrics server failed", err)
			return err
		}
		return nil
	}
}

// metricsMiddleware tracks the active and total request gauges around
// next. The decrement is deferred so it runs even if next panics.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		next(w, r)
	}
}

// handleMetrics serves the Prometheus exposition; only GET is allowed.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("rejected metrics request", logging.String("method", r.Method))
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// handleHealth answers liveness probes.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
