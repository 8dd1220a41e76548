package worker

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findFamily(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	t.Fatalf("metric family %q not found", name)
	return nil
}

func TestWorkerMetrics_JobRuns(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWorkerMetricsWith(reg)

	m.RecordJobRun(StatusSuccess)
	m.RecordJobRun(StatusSuccess)
	m.RecordJobRun(StatusFailure)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PollRunsTotal.WithLabelValues(StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PollRunsTotal.WithLabelValues(StatusFailure)))

	mf := findFamily(t, reg, "worker_poll_runs_total")
	assert.Equal(t, dto.MetricType_COUNTER, mf.GetType())
	assert.Len(t, mf.GetMetric(), 2)
}

func TestWorkerMetrics_Duration(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWorkerMetricsWith(reg)

	m.RecordJobDuration(0.3)
	m.RecordJobDuration(2)

	mf := findFamily(t, reg, "worker_poll_duration_seconds")
	require.Equal(t, dto.MetricType_HISTOGRAM, mf.GetType())
	h := mf.GetMetric()[0].GetHistogram()
	assert.Equal(t, uint64(2), h.GetSampleCount())
	assert.InDelta(t, 2.3, h.GetSampleSum(), 1e-9)
}

func TestWorkerMetrics_ArticlesAndLastSuccess(t *testing.T) {
	m := NewWorkerMetricsWith(prometheus.NewRegistry())

	m.RecordArticles(2)
	m.RecordArticles(3)
	m.RecordLastSuccess()

	assert.Equal(t, 5.0, testutil.ToFloat64(m.PollArticlesTotal))
	assert.Greater(t, testutil.ToFloat64(m.PollLastSuccessTimestamp), 0.0)
}

func TestWorkerMetrics_EmbedsConfigMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWorkerMetricsWith(reg)

	m.RecordLoadTimestamp()

	mf := findFamily(t, reg, "worker_config_load_timestamp")
	assert.Equal(t, dto.MetricType_GAUGE, mf.GetType())
}
