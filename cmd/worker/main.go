// Package main runs the headless news worker: it polls newsapi.org on a cron
// schedule and logs each retrieved payload, with health and metrics servers
// alongside.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"catchup-news/internal/config"
	"catchup-news/internal/infra/httpclient"
	workerPkg "catchup-news/internal/infra/worker"
	"catchup-news/internal/observability/logging"
	"catchup-news/internal/observability/tracing"
	"catchup-news/internal/usecase/news"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Error("worker exited with error", slog.String("error", logging.SanitizeError(err)))
		os.Exit(1)
	}
	logger.Info("worker shutdown complete")
}

// initLogger initializes the process-wide JSON logger from LOG_LEVEL.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

func run(ctx context.Context, logger *slog.Logger) error {
	traceCfg, traceWarnings := tracing.ProviderConfigFromEnv("catchup-news-worker")
	for _, warning := range traceWarnings {
		logger.Warn("Configuration fallback applied", slog.String("warning", warning))
	}
	shutdownTracing, err := tracing.InitProvider(ctx, traceCfg)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error("tracer provider shutdown failed", slog.Any("error", err))
		}
	}()
	if traceCfg.Enabled {
		logger.Info("trace export enabled",
			slog.String("endpoint", traceCfg.OTLPEndpoint),
			slog.Float64("sample_ratio", traceCfg.SampleRatio))
	}

	newsCfg, warnings, err := config.LoadNewsAPIConfig()
	for _, warning := range warnings {
		logger.Warn("Configuration fallback applied", slog.String("warning", warning))
	}
	if err != nil {
		return fmt.Errorf("load newsapi configuration: %w", err)
	}

	// Load worker configuration (fail-open strategy)
	workerMetrics := workerPkg.NewWorkerMetrics()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		return fmt.Errorf("load worker configuration: %w", err)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("request_timeout", workerConfig.RequestTimeout),
		slog.Int("health_port", workerConfig.HealthPort),
		slog.Int("metrics_port", workerConfig.MetricsPort),
		slog.Bool("run_on_start", workerConfig.RunOnStart))

	client := httpclient.New(newsCfg.HTTPClientConfig(), httpclient.WithLogger(logger))
	svc := news.NewService(client, news.SystemClock{}, newsCfg.APIKey, newsCfg.Query, news.WithLogger(logger))
	logger.Info("news service initialized", slog.String("query", newsCfg.Query))

	healthServer := workerPkg.NewHealthServer(fmt.Sprintf(":%d", workerConfig.HealthPort), logger)
	healthServer.AddCheck("newsapi_circuit", client.CircuitErr)

	metrics := newMetricsServer(workerConfig.MetricsPort, nil, logger)
	poller := workerPkg.NewPoller(svc, *workerConfig, logger, workerMetrics)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return metrics.Start(gctx)
	})
	g.Go(func() error {
		if err := healthServer.Start(gctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return poller.Start(gctx, func() {
			healthServer.SetReady(true)
			logger.Info("worker marked as ready")
		})
	})

	err = g.Wait()

	healthServer.SetReady(false)
	svc.Close()
	client.Wait()
	return err
}
