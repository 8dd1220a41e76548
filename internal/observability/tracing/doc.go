// Package tracing provides OpenTelemetry tracing integration.
//
// Outbound requests to the news search endpoint get a client span named
// "newsapi.get" carrying method, host, path and status code, and the W3C
// trace context is injected into the request headers.
//
// Spans are exported through whatever TracerProvider is registered globally;
// without one they are no-ops. InitProvider installs an OTLP/HTTP exporter
// when OTEL_ENABLED is true.
package tracing
