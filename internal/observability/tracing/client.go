package tracing

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// ClientSpanName is the span name used for outbound news search requests.
const ClientSpanName = "newsapi.get"

// StartClientSpan starts a client span for an outbound request and injects the
// trace context into req's headers (W3C Trace Context format).
//
// The returned context must be used for the request so cancellation and the
// span travel together:
//
//	ctx, span := tracing.StartClientSpan(req.Context(), req)
//	defer span.End()
//	resp, err := client.Do(req.WithContext(ctx))
func StartClientSpan(ctx context.Context, req *http.Request) (context.Context, trace.Span) {
	ctx, span := GetTracer().Start(ctx, ClientSpanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.host", req.URL.Host),
			attribute.String("http.path", req.URL.Path),
		),
	)

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	return ctx, span
}

// EndClientSpan records the response status or transport error and ends the span.
// statusCode is ignored when err is non-nil.
func EndClientSpan(span trace.Span, statusCode int, err error) {
	defer span.End()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}

	span.SetAttributes(attribute.Int("http.status_code", statusCode))
	if statusCode >= 500 {
		span.SetStatus(codes.Error, http.StatusText(statusCode))
	}
}
