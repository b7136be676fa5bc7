// Package http
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"netspeed-monitor/internal/config"
	"netspeed-monitor/internal/core"
	"netspeed-monitor/internal/logger"
)

type Server struct {
	cfg   *config.Config
	store *core.SnapshotStore
	ws    http.Handler
	log   logger.Logger
	srv   *http.Server
}

func NewServer(cfg *config.Config, store *core.SnapshotStore, ws http.Handler, log logger.Logger) *Server {
	return &Server{cfg: cfg, store: store, ws: ws, log: log}
}

func (s *Server) Handler() http.Handler {
	auth := JWT(s.cfg.JWTSecret)

	mux := http.NewServeMux()
	mux.Handle("GET /api/rate", auth(http.HandlerFunc(s.handleRate)))
	if s.ws != nil {
		mux.Handle("GET /ws", auth(s.ws))
	}
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, &Response{Message: "ok"}, s.log)
	})
	return mux
}

func (s *Server) Start(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http: listening", "addr", s.cfg.Address)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	reading, ok := s.store.Get()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, &Response{Message: "no measurement yet"}, s.log)
		return
	}
	writeJSON(w, http.StatusOK, &Response{Data: reading}, s.log)
}
