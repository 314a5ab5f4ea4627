package fsm

// State is one behavioral mode of a machine. Implementations embed Base to
// get the permission mask and no-op tick hooks, and define OnEnter and
// OnExit themselves. Pointer receivers are expected.
//
// OnEnter runs after the machine already reports the state as current;
// prev is the identifier of the state that was left. When there was no
// previous state (the first ChangeState, or SetDefaultState under
// WithEnterOnDefault) prev is the zero ID, which is indistinguishable from
// a real state registered under the zero ID. Reserve the zero value as a
// "none" identifier when a state needs to tell the two apart. OnExit runs
// before the machine switches away; next is the identifier being entered.
//
// Update, LateUpdate and FixedUpdate are only called on the current state.
//
// EnableTransition and DisableTransition return the embedded *Base, not
// the implementing type, so a chain of calls keeps editing the same
// permission mask but cannot reach methods of the outer state.
type State[ID comparable] interface {
	OnEnter(prev ID)
	OnExit(next ID)

	Update()
	LateUpdate()
	FixedUpdate()

	CanTransitionTo(bit Mask) bool
	EnableTransition(bit Mask) *Base
	DisableTransition(bit Mask) *Base
	Mask() Mask
}

// Base holds a state's outgoing-transition permissions. The zero value
// permits every transition.
type Base struct {
	// denied is stored instead of the mask itself so the zero value is
	// unrestricted.
	denied Mask
}

// NewBase returns a Base whose permissions are exactly mask.
func NewBase(mask Mask) Base {
	return Base{denied: ^mask}
}

// Mask returns the current permission mask.
func (b *Base) Mask() Mask {
	return ^b.denied
}

// SetMask replaces the permission mask.
func (b *Base) SetMask(mask Mask) *Base {
	b.denied = ^mask
	return b
}

// CanTransitionTo reports whether every bit in bit is permitted.
func (b *Base) CanTransitionTo(bit Mask) bool {
	return b.Mask().Has(bit)
}

// EnableTransition permits the given bit(s).
func (b *Base) EnableTransition(bit Mask) *Base {
	b.denied &^= bit
	return b
}

// DisableTransition forbids the given bit(s).
func (b *Base) DisableTransition(bit Mask) *Base {
	b.denied |= bit
	return b
}

func (b *Base) Update()      {}
func (b *Base) LateUpdate()  {}
func (b *Base) FixedUpdate() {}
