package observability

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"time"
)

// SlogObserver writes events as log records. The record carries the
// event's own Timestamp, its Type as the message, a "source" attribute
// naming the machine, and the Data keys in sorted order.
type SlogObserver struct {
	handler slog.Handler
}

// NewSlogObserver logs through logger's handler, keeping any attributes
// already attached with With. Nil means slog.Default().
func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogObserver{handler: logger.Handler()}
}

func (o *SlogObserver) OnEvent(ctx context.Context, event Event) {
	level := event.Level.SlogLevel()
	if !o.handler.Enabled(ctx, level) {
		return
	}

	at := event.Timestamp
	if at.IsZero() {
		at = time.Now()
	}
	r := slog.NewRecord(at, level, string(event.Type), 0)
	r.AddAttrs(slog.String("source", event.Source))
	for _, k := range slices.Sorted(maps.Keys(event.Data)) {
		r.AddAttrs(slog.Any(k, event.Data[k]))
	}
	_ = o.handler.Handle(ctx, r)
}
