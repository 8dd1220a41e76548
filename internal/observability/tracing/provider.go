package tracing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"catchup-news/internal/pkg/config"
)

// ProviderConfig controls trace export.
type ProviderConfig struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	OTLPEndpoint   string
	SampleRatio    float64
}

// ShutdownFunc flushes and stops the installed provider.
type ShutdownFunc func(context.Context) error

// ProviderConfigFromEnv reads OTEL_ENABLED (default false), OTEL_SERVICE_NAME,
// SERVICE_VERSION, OTEL_EXPORTER_OTLP_ENDPOINT and OTEL_TRACE_SAMPLE_RATIO.
// Invalid values fall back to defaults and are returned as warnings.
func ProviderConfigFromEnv(serviceName string) (ProviderConfig, []string) {
	enabled := config.LoadEnvBool("OTEL_ENABLED", false)
	ratio := config.LoadEnvFloat("OTEL_TRACE_SAMPLE_RATIO", 1.0, func(f float64) error {
		return config.ValidateFloatRange(f, 0, 1)
	})

	var warnings []string
	warnings = append(warnings, enabled.Warnings...)
	warnings = append(warnings, ratio.Warnings...)

	return ProviderConfig{
		Enabled:        enabled.Value,
		ServiceName:    config.LoadEnvString("OTEL_SERVICE_NAME", serviceName),
		ServiceVersion: config.LoadEnvString("SERVICE_VERSION", "0.0.0"),
		OTLPEndpoint:   config.LoadEnvString("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
		SampleRatio:    ratio.Value,
	}, warnings
}

// InitProvider installs a batching OTLP/HTTP tracer provider and the W3C
// propagator as the otel globals. When cfg is disabled nothing is installed
// and the returned ShutdownFunc is a no-op.
func InitProvider(ctx context.Context, cfg ProviderConfig) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}
	if cfg.SampleRatio < 0 || cfg.SampleRatio > 1 {
		return nil, errors.New("sample ratio must be between 0 and 1")
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(cfg.OTLPEndpoint+"/v1/traces"),
	)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return provider.Shutdown, nil
}
