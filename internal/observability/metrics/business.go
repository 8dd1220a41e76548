package metrics

import (
	"strconv"
	"time"
)

// StatusClass buckets an HTTP status code into "1xx".."5xx".
// A zero code means the request never produced a response and maps to "error".
func StatusClass(code int) string {
	if code < 100 || code > 599 {
		return "error"
	}
	return strconv.Itoa(code/100) + "xx"
}

// RecordUpstreamRequest records one completed GET against the news endpoint.
// statusCode is 0 when the transport failed before a response was received.
func RecordUpstreamRequest(statusCode int, duration time.Duration, bodySize int) {
	class := StatusClass(statusCode)
	UpstreamRequestsTotal.WithLabelValues(class).Inc()
	UpstreamRequestDuration.WithLabelValues(class).Observe(duration.Seconds())
	if bodySize > 0 {
		UpstreamResponseSize.Observe(float64(bodySize))
	}
}

// RecordRateLimitWait records time spent blocked on the client-side limiter.
func RecordRateLimitWait(d time.Duration) {
	UpstreamRateLimitWait.Observe(d.Seconds())
}

// RecordOutcome records a decisive outcome delivered to a caller.
func RecordOutcome(success bool) {
	outcome := OutcomeSuccess
	if !success {
		outcome = OutcomeFailure
	}
	NewsOutcomesTotal.WithLabelValues(outcome).Inc()
}

// RecordIndecisive records a dropped indecisive response.
func RecordIndecisive(reason string) {
	IndecisiveDroppedTotal.WithLabelValues(reason).Inc()
}

// RecordReleasedDrop records a callback dropped after its requester was released.
func RecordReleasedDrop() {
	ReleasedDroppedTotal.Inc()
}

// RecordPayload updates the payload gauges from a successful response.
func RecordPayload(articles, totalResults int) {
	ArticlesReceived.Set(float64(articles))
	TotalResults.Set(float64(totalResults))
}
