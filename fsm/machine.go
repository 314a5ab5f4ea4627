package fsm

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/samdwyer/tickfsm/observability"
)

const (
	opAdd     = "AddState"
	opRemove  = "RemoveState"
	opDefault = "SetDefaultState"
	opChange  = "ChangeState"
	opAllow   = "Allow"
	opDeny    = "Deny"
)

// entry is a registered state and the slot its permission bit lives in.
type entry[ID comparable] struct {
	id    ID
	state State[ID]
	slot  int
}

// Machine is a single-current-state machine over identifiers of type ID,
// carrying a host value of type C for the lifetime of the machine.
type Machine[ID comparable, C any] struct {
	name     string
	context  C
	capacity int
	observer observability.Observer

	enterOnDefault bool

	registry map[ID]*entry[ID]
	slots    [MaxCapacity]*entry[ID]

	currentID ID
	current   *entry[ID]
}

// New creates an empty, uninitialized machine. value is exposed through
// Context and is typically the entity that owns the machine.
func New[ID comparable, C any](value C, opts ...Option) *Machine[ID, C] {
	s := &settings{
		capacity: MaxCapacity,
		observer: observability.NoOpObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.name == "" {
		s.name = uuid.NewString()
	}

	return &Machine[ID, C]{
		name:           s.name,
		context:        value,
		capacity:       s.capacity,
		observer:       s.observer,
		enterOnDefault: s.enterOnDefault,
		registry:       make(map[ID]*entry[ID]),
	}
}

// Name returns the machine's name.
func (m *Machine[ID, C]) Name() string { return m.name }

// Context returns the host value supplied to New.
func (m *Machine[ID, C]) Context() C { return m.context }

// Capacity returns the maximum number of registered states.
func (m *Machine[ID, C]) Capacity() int { return m.capacity }

// Len returns the number of registered states.
func (m *Machine[ID, C]) Len() int { return len(m.registry) }

// Active reports whether the machine has a current state.
func (m *Machine[ID, C]) Active() bool { return m.current != nil }

// Current returns the current identifier and state. ok is false while the
// machine is uninitialized.
func (m *Machine[ID, C]) Current() (id ID, state State[ID], ok bool) {
	if m.current == nil {
		return id, nil, false
	}
	return m.currentID, m.current.state, true
}

// CurrentID returns the current identifier, or the zero ID when
// uninitialized. During OnExit it already reports the state being entered.
func (m *Machine[ID, C]) CurrentID() ID { return m.currentID }

// CurrentState returns the current state, or nil when uninitialized.
func (m *Machine[ID, C]) CurrentState() State[ID] {
	if m.current == nil {
		return nil
	}
	return m.current.state
}

// Has reports whether id is registered.
func (m *Machine[ID, C]) Has(id ID) bool {
	_, ok := m.registry[id]
	return ok
}

// State returns the state registered under id.
func (m *Machine[ID, C]) State(id ID) (State[ID], bool) {
	e, ok := m.registry[id]
	if !ok {
		return nil, false
	}
	return e.state, true
}

// Slot returns the slot ordinal assigned to id at registration.
func (m *Machine[ID, C]) Slot(id ID) (int, bool) {
	e, ok := m.registry[id]
	if !ok {
		return -1, false
	}
	return e.slot, true
}

// Bit returns the permission bit for id.
func (m *Machine[ID, C]) Bit(id ID) (Mask, bool) {
	e, ok := m.registry[id]
	if !ok {
		return 0, false
	}
	return Bit(e.slot), true
}

// AddState registers state under id, assigning it the lowest free slot.
func (m *Machine[ID, C]) AddState(id ID, state State[ID]) error {
	ctx := context.Background()
	if state == nil {
		return m.reject(ctx, opAdd, id, ErrNilState)
	}
	if _, ok := m.registry[id]; ok {
		return m.reject(ctx, opAdd, id, ErrDuplicateState)
	}
	_, err := m.insert(ctx, opAdd, id, state)
	return err
}

func (m *Machine[ID, C]) insert(ctx context.Context, op string, id ID, state State[ID]) (*entry[ID], error) {
	if len(m.registry) >= m.capacity {
		return nil, m.reject(ctx, op, id, ErrCapacityExceeded)
	}

	slot := 0
	for m.slots[slot] != nil {
		slot++
	}

	e := &entry[ID]{id: id, state: state, slot: slot}
	m.registry[id] = e
	m.slots[slot] = e

	m.emit(ctx, EventStateAdded, observability.LevelVerbose, map[string]any{
		"state": id,
		"slot":  slot,
		"count": len(m.registry),
	})
	return e, nil
}

// RemoveState unregisters id and frees its slot. Every remaining state loses
// the slot's bit, so a state later added into the reused slot starts out
// unreachable and must be granted with Allow. Removing the current state
// does not call OnExit; the machine becomes uninitialized instead.
func (m *Machine[ID, C]) RemoveState(id ID) error {
	ctx := context.Background()
	e, ok := m.registry[id]
	if !ok {
		return m.reject(ctx, opRemove, id, ErrUnknownState)
	}

	delete(m.registry, id)
	m.slots[e.slot] = nil
	bit := Bit(e.slot)
	for _, other := range m.registry {
		other.state.DisableTransition(bit)
	}

	wasCurrent := m.current == e
	if wasCurrent {
		var zero ID
		m.current = nil
		m.currentID = zero
	}

	m.emit(ctx, EventStateRemoved, observability.LevelVerbose, map[string]any{
		"state":   id,
		"slot":    e.slot,
		"current": wasCurrent,
		"count":   len(m.registry),
	})
	return nil
}

// SetDefaultState installs the initial state without transition checks.
// It only acts while the machine is uninitialized and returns
// ErrAlreadyActive otherwise. An unregistered id is registered first; a
// registered id installs the already-registered state and state may be nil.
func (m *Machine[ID, C]) SetDefaultState(id ID, state State[ID]) error {
	ctx := context.Background()
	if m.current != nil {
		m.emit(ctx, EventDefaultIgnored, observability.LevelVerbose, map[string]any{
			"state":   id,
			"current": m.currentID,
		})
		return &Error{Op: opDefault, Machine: m.name, ID: id, Kind: ErrAlreadyActive}
	}

	e, ok := m.registry[id]
	if !ok {
		if state == nil {
			return m.reject(ctx, opDefault, id, ErrNilState)
		}
		var err error
		if e, err = m.insert(ctx, opDefault, id, state); err != nil {
			return err
		}
	}

	m.currentID = id
	m.current = e
	m.emit(ctx, EventDefaultState, observability.LevelInfo, map[string]any{
		"state": id,
		"slot":  e.slot,
	})

	if m.enterOnDefault {
		var zero ID
		e.state.OnEnter(zero)
	}
	return nil
}

// CanChangeTo reports whether ChangeState(target) would succeed.
func (m *Machine[ID, C]) CanChangeTo(target ID) bool {
	next, ok := m.registry[target]
	if !ok {
		return false
	}
	return m.current == nil || m.current.state.CanTransitionTo(Bit(next.slot))
}

// ChangeState transitions to target. It fails with ErrUnknownState when
// target is not registered and with ErrTransitionDenied when the current
// state's mask does not carry target's bit; in both cases nothing changes
// and no hooks run. On success OnExit(target) runs on the old state, then
// OnEnter(previous) on the new one.
func (m *Machine[ID, C]) ChangeState(target ID) error {
	return m.ChangeStateContext(context.Background(), target)
}

// ChangeStateContext is ChangeState with a context handed to the observer,
// so events can be attached to the caller's span.
func (m *Machine[ID, C]) ChangeStateContext(ctx context.Context, target ID) error {
	next, ok := m.registry[target]
	if !ok {
		return m.reject(ctx, opChange, target, ErrUnknownState)
	}

	if m.current != nil && !m.current.state.CanTransitionTo(Bit(next.slot)) {
		m.emit(ctx, EventTransitionDenied, observability.LevelWarning, map[string]any{
			"from": m.currentID,
			"to":   target,
			"mask": m.current.state.Mask().String(),
		})
		return &Error{Op: opChange, Machine: m.name, ID: target, From: m.currentID, Kind: ErrTransitionDenied}
	}

	last := m.currentID
	prev := m.current
	m.currentID = target
	if prev != nil {
		prev.state.OnExit(target)
	}
	m.current = next
	next.state.OnEnter(last)

	data := map[string]any{"to": target, "slot": next.slot}
	if prev != nil {
		data["from"] = last
	}
	m.emit(ctx, EventTransition, observability.LevelInfo, data)
	return nil
}

// Allow permits transitions from one registered state to each of to.
// Nothing changes unless every identifier is registered.
func (m *Machine[ID, C]) Allow(from ID, to ...ID) error {
	return m.permit(opAllow, from, to, true)
}

// Deny forbids transitions from one registered state to each of to.
// Nothing changes unless every identifier is registered.
func (m *Machine[ID, C]) Deny(from ID, to ...ID) error {
	return m.permit(opDeny, from, to, false)
}

func (m *Machine[ID, C]) permit(op string, from ID, to []ID, allow bool) error {
	ctx := context.Background()
	src, ok := m.registry[from]
	if !ok {
		return m.reject(ctx, op, from, ErrUnknownState)
	}

	var bits Mask
	for _, id := range to {
		e, ok := m.registry[id]
		if !ok {
			return m.reject(ctx, op, id, ErrUnknownState)
		}
		bits |= Bit(e.slot)
	}

	if allow {
		src.state.EnableTransition(bits)
	} else {
		src.state.DisableTransition(bits)
	}

	m.emit(ctx, EventPermissionsChanged, observability.LevelVerbose, map[string]any{
		"state": from,
		"op":    op,
		"mask":  src.state.Mask().String(),
	})
	return nil
}

// Update forwards to the current state, if any.
func (m *Machine[ID, C]) Update() {
	if m.current != nil {
		m.current.state.Update()
	}
}

// LateUpdate forwards to the current state, if any.
func (m *Machine[ID, C]) LateUpdate() {
	if m.current != nil {
		m.current.state.LateUpdate()
	}
}

// FixedUpdate forwards to the current state, if any.
func (m *Machine[ID, C]) FixedUpdate() {
	if m.current != nil {
		m.current.state.FixedUpdate()
	}
}

// String returns a short description of the machine.
func (m *Machine[ID, C]) String() string {
	if m.current == nil {
		return fmt.Sprintf("Machine %s { uninitialized, %d states }", m.name, len(m.registry))
	}
	return fmt.Sprintf("Machine %s { State = %v, %d states }", m.name, m.currentID, len(m.registry))
}
