package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/samdwyer/tickfsm/observability"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		name  string
		level observability.Level
		want  string
	}{
		{name: "trace range", level: 1, want: "TRACE"},
		{name: "verbose maps to DEBUG", level: observability.LevelVerbose, want: "DEBUG"},
		{name: "info maps to INFO", level: observability.LevelInfo, want: "INFO"},
		{name: "warning maps to WARN", level: observability.LevelWarning, want: "WARN"},
		{name: "error maps to ERROR", level: observability.LevelError, want: "ERROR"},
		{name: "fatal range", level: 21, want: "FATAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.level.String())
		})
	}
}

func TestLevel_SlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, observability.LevelVerbose.SlogLevel())
	assert.Equal(t, slog.LevelInfo, observability.LevelInfo.SlogLevel())
	assert.Equal(t, slog.LevelWarn, observability.LevelWarning.SlogLevel())
	assert.Equal(t, slog.LevelError, observability.LevelError.SlogLevel())
}

func TestMultiObserver_NilFiltering(t *testing.T) {
	rec1 := observability.NewRecorder()
	rec2 := observability.NewRecorder()

	multi := observability.NewMultiObserver(nil, rec1, nil, rec2)
	multi.OnEvent(context.Background(), observability.Event{Type: "test.event", Level: observability.LevelInfo})

	assert.Len(t, rec1.Events(), 1)
	assert.Len(t, rec2.Events(), 1)
}

func TestMultiObserver_FlattensAndDropsNoOp(t *testing.T) {
	rec1 := observability.NewRecorder()
	rec2 := observability.NewRecorder()

	inner := observability.NewMultiObserver(rec1, observability.NoOpObserver{})
	multi := observability.NewMultiObserver(inner, nil, rec2)
	require.Len(t, multi, 2)
	assert.Same(t, rec1, multi[0])
	assert.Same(t, rec2, multi[1])

	multi.OnEvent(context.Background(), observability.Event{Type: "fsm.transition"})
	assert.Equal(t, []observability.EventType{"fsm.transition"}, rec1.Types())
	assert.Equal(t, []observability.EventType{"fsm.transition"}, rec2.Types())

	assert.Empty(t, observability.NewMultiObserver(nil, observability.NoOpObserver{}))
}

func TestObserverFunc(t *testing.T) {
	var got observability.EventType
	obs := observability.ObserverFunc(func(_ context.Context, e observability.Event) {
		got = e.Type
	})
	obs.OnEvent(context.Background(), observability.Event{Type: "fsm.transition"})
	assert.Equal(t, observability.EventType("fsm.transition"), got)
}

func TestSlogObserver_EventTypeAsMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	obs := observability.NewSlogObserver(logger)
	obs.OnEvent(context.Background(), observability.Event{
		Type:      "fsm.transition.denied",
		Level:     observability.LevelWarning,
		Timestamp: time.Now(),
		Source:    "hero",
		Data:      map[string]any{"target": "run"},
	})

	out := buf.String()
	assert.Contains(t, out, "fsm.transition.denied")
	assert.Contains(t, out, "source=hero")
	assert.Contains(t, out, "target=run")
	assert.Contains(t, out, "level=WARN")
}

func TestSlogObserver_KeepsEventTimeAndSortsData(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil)).With("component", "fsm")
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	observability.NewSlogObserver(logger).OnEvent(context.Background(), observability.Event{
		Type:      "fsm.transition",
		Level:     observability.LevelInfo,
		Timestamp: at,
		Source:    "modes",
		Data:      map[string]any{"to": "combat", "from": "explore", "slot": 1},
	})

	out := buf.String()
	assert.Contains(t, out, "time=2024-03-01T12:00:00.000Z")
	assert.Contains(t, out, "component=fsm source=modes from=explore slot=1 to=combat")
}

func TestSlogObserver_RespectsHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	observability.NewSlogObserver(logger).OnEvent(context.Background(), observability.Event{
		Type:  "fsm.state.added",
		Level: observability.LevelVerbose,
	})

	assert.Zero(t, buf.Len())
}

func TestTraceObserver(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx, span := tp.Tracer("test").Start(context.Background(), "mode.change")
	obs := observability.NewTraceObserver()
	obs.OnEvent(ctx, observability.Event{
		Type:      "fsm.transition",
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "game",
		Data:      map[string]any{"from": "explore", "to": "combat", "slot": 1},
	})
	obs.OnEvent(ctx, observability.Event{
		Type:      "fsm.state.unknown",
		Level:     observability.LevelError,
		Timestamp: time.Now(),
		Source:    "game",
	})
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	events := spans[0].Events()
	require.Len(t, events, 2)
	assert.Equal(t, "fsm.transition", events[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestTraceObserver_NoSpan(t *testing.T) {
	assert.NotPanics(t, func() {
		observability.NewTraceObserver().OnEvent(context.Background(), observability.Event{Type: "fsm.transition"})
	})
}

func TestRecorder(t *testing.T) {
	rec := observability.NewRecorder()
	_, ok := rec.Last()
	assert.False(t, ok)

	rec.OnEvent(context.Background(), observability.Event{Type: "a"})
	rec.OnEvent(context.Background(), observability.Event{Type: "b"})

	assert.Equal(t, []observability.EventType{"a", "b"}, rec.Types())
	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, observability.EventType("b"), last.Type)

	rec.Reset()
	assert.Empty(t, rec.Events())
}
