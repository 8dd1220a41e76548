// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the application metrics:
//   - Upstream request metrics (count and latency by status class, body size)
//   - Outcome metrics (decisive outcomes, dropped indecisive and released callbacks)
//   - Payload gauges (articles in the last payload, server-reported totalResults)
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint of the worker.
package metrics
