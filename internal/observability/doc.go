// Package observability groups the logging, metrics, request ID and tracing
// infrastructure used by the news search client and its worker.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
//   - requestid: Request ID generation and context propagation
//   - tracing: OpenTelemetry client spans for upstream calls
//
// Example usage:
//
//	import (
//	    "catchup-news/internal/observability/logging"
//	    "catchup-news/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.RecordOutcome(true)
//	}
package observability
