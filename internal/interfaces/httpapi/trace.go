package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("fantasy-cricket/internal/interfaces/httpapi")

// startSpan opens handler spans under the otelhttp request span. Other names
// and untraced requests get the parent span back.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() || !shouldCreateHTTPAPISpan(name) {
		return ctx, nonEndingSpan{parent}
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}

// nonEndingSpan keeps a handler's deferred End from closing the request span.
type nonEndingSpan struct {
	trace.Span
}

func (nonEndingSpan) End(...trace.SpanEndOption) {}
