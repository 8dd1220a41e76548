package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestStatusClass(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{0, "error"},
		{99, "error"},
		{200, "2xx"},
		{201, "2xx"},
		{299, "2xx"},
		{301, "3xx"},
		{404, "4xx"},
		{503, "5xx"},
		{600, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusClass(tt.code))
		})
	}
}

func TestRecordUpstreamRequest(t *testing.T) {
	before := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("4xx"))

	RecordUpstreamRequest(404, 120*time.Millisecond, 512)
	RecordUpstreamRequest(429, 80*time.Millisecond, 0)

	after := testutil.ToFloat64(UpstreamRequestsTotal.WithLabelValues("4xx"))
	assert.Equal(t, before+2, after)
}

func TestRecordOutcome(t *testing.T) {
	successBefore := testutil.ToFloat64(NewsOutcomesTotal.WithLabelValues(OutcomeSuccess))
	failureBefore := testutil.ToFloat64(NewsOutcomesTotal.WithLabelValues(OutcomeFailure))

	RecordOutcome(true)
	RecordOutcome(false)
	RecordOutcome(false)

	assert.Equal(t, successBefore+1, testutil.ToFloat64(NewsOutcomesTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, failureBefore+2, testutil.ToFloat64(NewsOutcomesTotal.WithLabelValues(OutcomeFailure)))
}

func TestRecordIndecisive(t *testing.T) {
	before := testutil.ToFloat64(IndecisiveDroppedTotal.WithLabelValues("status"))
	RecordIndecisive("status")
	assert.Equal(t, before+1, testutil.ToFloat64(IndecisiveDroppedTotal.WithLabelValues("status")))
}

func TestRecordReleasedDrop(t *testing.T) {
	before := testutil.ToFloat64(ReleasedDroppedTotal)
	RecordReleasedDrop()
	assert.Equal(t, before+1, testutil.ToFloat64(ReleasedDroppedTotal))
}

func TestRecordPayload(t *testing.T) {
	RecordPayload(2, 9431)

	assert.Equal(t, float64(2), testutil.ToFloat64(ArticlesReceived))
	assert.Equal(t, float64(9431), testutil.ToFloat64(TotalResults))
}

func TestRecordRateLimitWait(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordRateLimitWait(0)
		RecordRateLimitWait(250 * time.Millisecond)
	})
}
