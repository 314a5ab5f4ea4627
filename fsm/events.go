package fsm

import (
	"context"
	"time"

	"github.com/samdwyer/tickfsm/observability"
)

// Event types reported to the machine's observer.
const (
	EventStateAdded         observability.EventType = "fsm.state.added"
	EventStateRemoved       observability.EventType = "fsm.state.removed"
	EventDefaultState       observability.EventType = "fsm.state.default"
	EventDefaultIgnored     observability.EventType = "fsm.state.default.ignored"
	EventTransition         observability.EventType = "fsm.transition"
	EventTransitionDenied   observability.EventType = "fsm.transition.denied"
	EventUnknownState       observability.EventType = "fsm.state.unknown"
	EventDuplicateState     observability.EventType = "fsm.state.duplicate"
	EventCapacityExceeded   observability.EventType = "fsm.capacity.exceeded"
	EventNilState           observability.EventType = "fsm.state.nil"
	EventPermissionsChanged observability.EventType = "fsm.permissions.changed"

	// EventRejected covers any failure without a more specific type.
	EventRejected observability.EventType = "fsm.rejected"
)

func (m *Machine[ID, C]) emit(ctx context.Context, typ observability.EventType, level observability.Level, data map[string]any) {
	m.observer.OnEvent(ctx, observability.Event{
		Type:      typ,
		Level:     level,
		Timestamp: time.Now(),
		Source:    m.name,
		Data:      data,
	})
}

// reject reports a failed call and returns the matching *Error.
func (m *Machine[ID, C]) reject(ctx context.Context, op string, id ID, kind error) error {
	var typ observability.EventType
	switch kind {
	case ErrCapacityExceeded:
		typ = EventCapacityExceeded
	case ErrDuplicateState:
		typ = EventDuplicateState
	case ErrUnknownState:
		typ = EventUnknownState
	case ErrNilState:
		typ = EventNilState
	case ErrTransitionDenied:
		typ = EventTransitionDenied
	default:
		typ = EventRejected
	}
	m.emit(ctx, typ, observability.LevelWarning, map[string]any{
		"op":    op,
		"state": id,
		"count": len(m.registry),
	})
	return &Error{Op: op, Machine: m.name, ID: id, Kind: kind}
}
