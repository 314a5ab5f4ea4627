// Package observability delivers the diagnostic events that fsm machines
// emit to logs, spans and in-memory recorders. Levels use OpenTelemetry
// SeverityNumbers, so a collector needs no translation.
package observability

import (
	"context"
	"log/slog"
	"time"
)

// Level is an event's severity. Each constant is the lowest SeverityNumber
// of its OTel range.
type Level int

// Machines report registry churn at LevelVerbose, transitions at LevelInfo
// and rejected calls at LevelWarning. LevelError is left to hosts.
const (
	LevelVerbose Level = 5
	LevelInfo    Level = 9
	LevelWarning Level = 13
	LevelError   Level = 17
)

// String returns the OTel severity text for the level.
func (l Level) String() string {
	switch {
	case l <= 4:
		return "TRACE"
	case l <= 8:
		return "DEBUG"
	case l <= 12:
		return "INFO"
	case l <= 16:
		return "WARN"
	case l <= 20:
		return "ERROR"
	default:
		return "FATAL"
	}
}

// SlogLevel returns the slog level SlogObserver logs l at.
func (l Level) SlogLevel() slog.Level {
	switch {
	case l <= 8:
		return slog.LevelDebug
	case l <= 12:
		return slog.LevelInfo
	case l <= 16:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// EventType names what happened. Machine events use the "fsm." prefix.
type EventType string

// Event is one report from a machine. Source is the machine's name and Data
// holds the identifiers involved, keyed by role ("from", "to", "state").
type Event struct {
	Type      EventType
	Level     Level
	Timestamp time.Time
	Source    string
	Data      map[string]any
}

// Observer is the sink a machine reports to. OnEvent runs synchronously on
// the caller's goroutine, so implementations should return quickly.
type Observer interface {
	OnEvent(ctx context.Context, event Event)
}

// ObserverFunc lets a closure act as an Observer, which is handy for hosts
// that only care about one event type.
type ObserverFunc func(ctx context.Context, event Event)

func (f ObserverFunc) OnEvent(ctx context.Context, event Event) { f(ctx, event) }
