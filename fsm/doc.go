// Package fsm provides a small finite state machine for tick-driven programs:
// game entities, UI modes, anything that sits in exactly one named state at a
// time and is stepped by an external loop.
//
// A Machine owns a registry of states keyed by a host-defined identifier
// type. Each registered state gets a dense slot number in [0, MaxCapacity),
// and the state's outgoing permissions are a Mask with one bit per slot.
// ChangeState consults the current state's mask, fires OnExit on the old
// state and OnEnter on the new one, and never leaves the machine half-way
// through a transition.
//
// # Basic Usage
//
// States embed Base, which supplies the permission mask and no-op tick hooks:
//
//	type idle struct {
//	    fsm.Base
//	    hero *Hero
//	}
//
//	func (s *idle) OnEnter(prev Pose) { s.hero.Speed = 0 }
//	func (s *idle) OnExit(next Pose)  {}
//
//	m := fsm.New[Pose](hero)
//	_ = m.AddState(Walk, &walk{hero: hero})
//	_ = m.AddState(Run, &run{hero: hero})
//	_ = m.SetDefaultState(Idle, &idle{hero: hero})
//	_ = m.Deny(Idle, Run)
//
//	if err := m.ChangeState(Run); errors.Is(err, fsm.ErrTransitionDenied) {
//	    // still idle
//	}
//
// The host calls Update, LateUpdate and FixedUpdate from its own loop; the
// machine forwards them to the current state only.
//
// # Diagnostics
//
// Every registry change, transition and rejected call is reported to an
// observability.Observer (see WithObserver) in addition to the returned
// error. Failed calls never mutate the machine.
//
// # Concurrency
//
// A Machine is not safe for concurrent use. It is meant to be owned by a
// single goroutine, typically the one running the game loop.
package fsm
