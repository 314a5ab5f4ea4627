package fsm

import "github.com/samdwyer/tickfsm/observability"

// Option configures a Machine during construction.
type Option func(*settings)

type settings struct {
	name           string
	capacity       int
	observer       observability.Observer
	enterOnDefault bool
}

// WithName sets the name used as the Source of emitted events and in error
// messages. Defaults to a random UUID.
func WithName(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.name = name
		}
	}
}

// WithCapacity lowers the registry cap. Values are clamped to
// [1, MaxCapacity].
func WithCapacity(n int) Option {
	return func(s *settings) {
		s.capacity = min(max(n, 1), MaxCapacity)
	}
}

// WithObserver sets the diagnostic sink. Nil is ignored.
func WithObserver(obs observability.Observer) Option {
	return func(s *settings) {
		if obs != nil {
			s.observer = obs
		}
	}
}

// WithEnterOnDefault makes SetDefaultState call OnEnter on the installed
// state, passing the zero identifier as the previous state. That zero value
// collides with a state registered under it; ID types that need the
// distinction should leave zero unassigned. Without this option the initial
// state is installed silently.
func WithEnterOnDefault() Option {
	return func(s *settings) {
		s.enterOnDefault = true
	}
}
