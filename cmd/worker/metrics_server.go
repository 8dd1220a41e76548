package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metricsServer exposes Prometheus metrics on GET /metrics.
type metricsServer struct {
	server *http.Server
	logger *slog.Logger
}

// newMetricsServer builds a metrics server on port serving gatherer.
// A nil gatherer means prometheus.DefaultGatherer.
func newMetricsServer(port int, gatherer prometheus.Gatherer, logger *slog.Logger) *metricsServer {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return &metricsServer{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       5 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logger: logger,
	}
}

// Handler returns the server's handler.
func (m *metricsServer) Handler() http.Handler {
	return m.server.Handler
}

// Start serves until ctx is cancelled, then shuts down within 5 seconds.
// A graceful shutdown returns nil.
func (m *metricsServer) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		m.logger.Info("metrics server starting", slog.String("addr", m.server.Addr))
		errChan <- m.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		m.logger.Info("metrics server shutdown initiated")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := m.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics server shutdown: %w", err)
		}
		m.logger.Info("metrics server stopped")
		return nil

	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	}
}
