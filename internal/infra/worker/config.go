// Package worker runs the news search on a cron schedule and exposes the
// health and configuration surface of the long-running process.
package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"catchup-news/internal/pkg/config"
)

// WorkerConfig holds the configuration for the news polling worker.
//
// Configuration sources:
//   - Environment variables (loaded via LoadConfigFromEnv)
//   - Default values (provided by DefaultConfig)
type WorkerConfig struct {
	// CronSchedule is the five-field cron expression for polls.
	// Default: "0 */6 * * *" (every six hours)
	CronSchedule string

	// Timezone is the IANA timezone the schedule is evaluated in.
	// Default: "UTC"
	Timezone string

	// RequestTimeout bounds one poll, including waiting for a decisive response.
	// Range: 1s-5m
	// Default: 30s
	RequestTimeout time.Duration

	// HealthPort is the port of the health check server.
	// Range: 1024-65535
	// Default: 9091
	HealthPort int

	// MetricsPort is the port of the Prometheus metrics server.
	// Range: 1024-65535
	// Default: 9090
	MetricsPort int

	// RunOnStart polls once immediately instead of waiting for the first tick.
	// Default: true
	RunOnStart bool
}

// DefaultConfig returns a WorkerConfig with default values.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:   "0 */6 * * *",
		Timezone:       "UTC",
		RequestTimeout: 30 * time.Second,
		HealthPort:     9091,
		MetricsPort:    9090,
		RunOnStart:     true,
	}
}

func validateRequestTimeout(d time.Duration) error {
	return config.ValidateDuration(d, time.Second, 5*time.Minute)
}

// Validate checks every field and reports all failures together.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := validateRequestTimeout(c.RequestTimeout); err != nil {
		errs = append(errs, fmt.Errorf("request timeout: %w", err))
	}
	if err := config.ValidatePort(c.HealthPort); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}
	if err := config.ValidatePort(c.MetricsPort); err != nil {
		errs = append(errs, fmt.Errorf("metrics port: %w", err))
	}
	if c.HealthPort == c.MetricsPort {
		errs = append(errs, fmt.Errorf("health port and metrics port must differ, both %d", c.HealthPort))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// Location returns the schedule's time zone, or UTC if Timezone cannot be loaded.
func (c *WorkerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LoadConfigFromEnv loads the worker configuration with a fail-open strategy:
// invalid values fall back to defaults, are logged at warn level and are
// counted in metrics. The returned configuration is always usable.
//
// Environment variables:
//   - CRON_SCHEDULE: Cron expression (default: "0 */6 * * *")
//   - WORKER_TIMEZONE: IANA timezone name (default: "UTC")
//   - WORKER_REQUEST_TIMEOUT: Duration string, e.g. "45s" (default: 30s)
//   - WORKER_HEALTH_PORT: Integer 1024-65535 (default: 9091)
//   - METRICS_PORT: Integer 1024-65535 (default: 9090)
//   - WORKER_RUN_ON_START: Boolean (default: true)
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	cm := metrics.ConfigMetrics
	fallbackApplied := false

	warn := func(field string, warnings []string) {
		if len(warnings) == 0 {
			return
		}
		fallbackApplied = true
		for _, warning := range warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", field),
				slog.String("warning", warning))
		}
	}

	schedule := config.Observe(cm, "cron_schedule",
		config.LoadEnvWithFallback("CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule))
	cfg.CronSchedule = schedule.Value
	warn("CronSchedule", schedule.Warnings)

	timezone := config.Observe(cm, "timezone",
		config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone))
	cfg.Timezone = timezone.Value
	warn("Timezone", timezone.Warnings)

	timeout := config.Observe(cm, "request_timeout",
		config.LoadEnvDuration("WORKER_REQUEST_TIMEOUT", cfg.RequestTimeout, validateRequestTimeout))
	cfg.RequestTimeout = timeout.Value
	warn("RequestTimeout", timeout.Warnings)

	healthPort := config.Observe(cm, "health_port",
		config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, config.ValidatePort))
	cfg.HealthPort = healthPort.Value
	warn("HealthPort", healthPort.Warnings)

	metricsPort := config.Observe(cm, "metrics_port",
		config.LoadEnvInt("METRICS_PORT", cfg.MetricsPort, config.ValidatePort))
	cfg.MetricsPort = metricsPort.Value
	warn("MetricsPort", metricsPort.Warnings)

	runOnStart := config.Observe(cm, "run_on_start",
		config.LoadEnvBool("WORKER_RUN_ON_START", cfg.RunOnStart))
	cfg.RunOnStart = runOnStart.Value
	warn("RunOnStart", runOnStart.Warnings)

	metrics.SetFallbackActive(fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
