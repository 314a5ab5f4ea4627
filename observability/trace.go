package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TraceObserver records events on the span carried by ctx. Events emitted
// outside a recording span are dropped. Events at LevelError or above also
// mark the span as failed.
type TraceObserver struct{}

// NewTraceObserver returns a TraceObserver.
func NewTraceObserver() *TraceObserver {
	return &TraceObserver{}
}

func (o *TraceObserver) OnEvent(ctx context.Context, event Event) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	attrs := make([]attribute.KeyValue, 0, len(event.Data)+2)
	attrs = append(attrs,
		attribute.String("source", event.Source),
		attribute.String("severity", event.Level.String()),
	)
	for k, v := range event.Data {
		attrs = append(attrs, toAttribute(k, v))
	}

	span.AddEvent(string(event.Type), trace.WithAttributes(attrs...), trace.WithTimestamp(event.Timestamp))
	if event.Level >= LevelError {
		span.SetStatus(codes.Error, string(event.Type))
	}
}

func toAttribute(key string, v any) attribute.KeyValue {
	switch val := v.(type) {
	case string:
		return attribute.String(key, val)
	case int:
		return attribute.Int(key, val)
	case int64:
		return attribute.Int64(key, val)
	case bool:
		return attribute.Bool(key, val)
	case float64:
		return attribute.Float64(key, val)
	case fmt.Stringer:
		return attribute.String(key, val.String())
	default:
		return attribute.String(key, fmt.Sprint(val))
	}
}
