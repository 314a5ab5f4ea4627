package observability

import "context"

// MultiObserver hands each event to several sinks in order. The game host
// uses one to send machine events to the log and the active span at once.
type MultiObserver []Observer

// NewMultiObserver builds a MultiObserver from observers. Nil entries and
// NoOpObserver values are dropped, and the sinks of a nested MultiObserver
// are spliced in directly.
func NewMultiObserver(observers ...Observer) MultiObserver {
	var sinks MultiObserver
	for _, obs := range observers {
		switch o := obs.(type) {
		case nil, NoOpObserver:
		case MultiObserver:
			sinks = append(sinks, o...)
		default:
			sinks = append(sinks, o)
		}
	}
	return sinks
}

func (m MultiObserver) OnEvent(ctx context.Context, event Event) {
	for _, sink := range m {
		sink.OnEvent(ctx, event)
	}
}
