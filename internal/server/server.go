// Package server exposes the scanner over HTTP: multipart image and PDF scan
// endpoints, a websocket frame-streaming endpoint, health and symbology
// introspection, and Prometheus metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewServer creates a server around the given scanner and configuration.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Scanner == nil {
		return nil, errors.New("server: no scanner configured")
	}
	s := &Server{
		scanner:     cfg.Scanner,
		host:        cfg.Host,
		port:        cfg.Port,
		corsOrigin:  cfg.CORSOrigin,
		maxUploadMB: cfg.MaxUploadMB,
		timeoutSec:  cfg.TimeoutSec,
		rateLimiter: NewRateLimiter(cfg.RateLimitPerMinute),
	}
	if s.corsOrigin == "" {
		s.corsOrigin = "*"
	}
	if s.maxUploadMB <= 0 {
		s.maxUploadMB = 50
	}
	if s.timeoutSec <= 0 {
		s.timeoutSec = 30
	}
	return s, nil
}

// Handler returns the routed HTTP handler, exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/symbologies", s.corsMiddleware(s.symbologiesHandler))
	mux.HandleFunc("/scan", s.corsMiddleware(s.rateLimitMiddleware(s.scanImageHandler)))
	mux.HandleFunc("/scan/pdf", s.corsMiddleware(s.rateLimitMiddleware(s.scanPDFHandler)))
	mux.HandleFunc("/ws/scan", s.scanWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// ListenAndServe starts the server and blocks until the context is canceled
// or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Duration(s.timeoutSec) * time.Second,
		WriteTimeout:      time.Duration(s.timeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
