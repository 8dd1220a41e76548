package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"catchup-news/internal/pkg/config"
)

// Job run statuses.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// WorkerMetrics provides Prometheus metrics for the worker component.
// It embeds ConfigMetrics for configuration monitoring.
//
// Worker-specific metrics:
//   - worker_poll_runs_total{status}: poll runs by status (success/failure)
//   - worker_poll_duration_seconds: time from request to decisive outcome
//   - worker_poll_articles_total: articles received across all polls
//   - worker_poll_last_success_timestamp: Unix timestamp of last successful poll
type WorkerMetrics struct {
	*config.ConfigMetrics

	PollRunsTotal            *prometheus.CounterVec
	PollDurationSeconds      prometheus.Histogram
	PollArticlesTotal        prometheus.Counter
	PollLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics registers the worker metrics with the default registry.
func NewWorkerMetrics() *WorkerMetrics {
	return NewWorkerMetricsWith(prometheus.DefaultRegisterer)
}

// NewWorkerMetricsWith registers the worker metrics with reg.
func NewWorkerMetricsWith(reg prometheus.Registerer) *WorkerMetrics {
	factory := promauto.With(reg)
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetricsWith(factory, "worker"),

		PollRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_poll_runs_total",
			Help: "Total number of news poll runs by status (success/failure)",
		}, []string{"status"}),

		PollDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_poll_duration_seconds",
			Help:    "Duration of news poll runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),

		PollArticlesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "worker_poll_articles_total",
			Help: "Total number of articles received across all poll runs",
		}),

		PollLastSuccessTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "worker_poll_last_success_timestamp",
			Help: "Unix timestamp of the last successful poll run",
		}),
	}
}

// RecordJobRun increments the run counter for status.
func (m *WorkerMetrics) RecordJobRun(status string) {
	m.PollRunsTotal.WithLabelValues(status).Inc()
}

// RecordJobDuration observes a run duration in seconds.
func (m *WorkerMetrics) RecordJobDuration(seconds float64) {
	m.PollDurationSeconds.Observe(seconds)
}

// RecordArticles adds count to the received articles counter.
func (m *WorkerMetrics) RecordArticles(count int) {
	m.PollArticlesTotal.Add(float64(count))
}

// RecordLastSuccess sets the last success timestamp to now.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.PollLastSuccessTimestamp.SetToCurrentTime()
}
