package fsm

import (
	"errors"
	"fmt"
)

// Sentinel errors carried in Error.Kind. Match them with errors.Is or the
// Is* helpers below.
var (
	// ErrCapacityExceeded is returned when every slot is taken.
	ErrCapacityExceeded = errors.New("fsm: machine is at capacity")
	// ErrDuplicateState is returned by AddState for an identifier that is
	// already registered. The existing state is kept.
	ErrDuplicateState   = errors.New("fsm: state already registered")
	// ErrUnknownState is returned when an operation names an identifier
	// that was never added or has been removed.
	ErrUnknownState     = errors.New("fsm: state not registered")
	// ErrTransitionDenied is returned by ChangeState when the current
	// state's mask lacks the target's bit.
	ErrTransitionDenied = errors.New("fsm: transition not permitted")
	// ErrNilState is returned when a nil State is offered for registration.
	ErrNilState         = errors.New("fsm: state cannot be nil")
	// ErrAlreadyActive is returned by SetDefaultState once a current state
	// exists.
	ErrAlreadyActive    = errors.New("fsm: machine already has a current state")
)

// Error describes a rejected machine operation. Kind is one of the package
// sentinel errors and is what errors.Is matches against.
type Error struct {
	Op      string // method name, e.g. "ChangeState"
	Machine string
	ID      any // identifier the call was about
	From    any // current state for denied transitions, nil otherwise
	Kind    error
}

// Error formats as "<machine> <op> <id>: <kind>", with "<from> -> <id>"
// in place of the id for denied transitions.
func (e *Error) Error() string {
	if e.From != nil {
		return fmt.Sprintf("%s %s: %v -> %v: %v", e.Machine, e.Op, e.From, e.ID, e.Kind)
	}
	return fmt.Sprintf("%s %s %v: %v", e.Machine, e.Op, e.ID, e.Kind)
}

// Unwrap returns Kind.
func (e *Error) Unwrap() error {
	return e.Kind
}

// IsTransitionDenied reports whether err wraps ErrTransitionDenied.
func IsTransitionDenied(err error) bool { return errors.Is(err, ErrTransitionDenied) }

// IsUnknownState reports whether err wraps ErrUnknownState.
func IsUnknownState(err error) bool { return errors.Is(err, ErrUnknownState) }

// IsDuplicateState reports whether err wraps ErrDuplicateState.
func IsDuplicateState(err error) bool { return errors.Is(err, ErrDuplicateState) }

// IsCapacityExceeded reports whether err wraps ErrCapacityExceeded.
func IsCapacityExceeded(err error) bool { return errors.Is(err, ErrCapacityExceeded) }
