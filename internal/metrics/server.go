// Package metrics serves /metrics and /health for the long-running watch
// command.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zhulik/pal"
)

type Server struct {
	Logger *slog.Logger

	Addr string

	server *http.Server
}

func (s *Server) Init(ctx context.Context) error {
	s.Logger = s.Logger.With("component", "metrics.Server")

	if s.Addr == "" {
		s.Addr = ":9090"
	}

	p := pal.FromContext(ctx)

	r := chi.NewMux()
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := p.HealthCheck(r.Context()); err != nil {
			s.Logger.Error("health check failed", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	s.server = &http.Server{
		Handler:           r,
		Addr:              s.Addr,
		ReadHeaderTimeout: time.Second,
	}
	return nil
}

func (s *Server) Run(ctx context.Context) error {
	s.Logger.Info("starting metrics server", "addr", s.Addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.server.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
