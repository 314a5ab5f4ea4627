package fsm_test

import (
	"fmt"

	"github.com/samdwyer/tickfsm/fsm"
)

type pose int

const (
	idle pose = iota
	walk
	run
	jump
)

func (p pose) String() string {
	switch p {
	case idle:
		return "idle"
	case walk:
		return "walk"
	case run:
		return "run"
	case jump:
		return "jump"
	default:
		return fmt.Sprintf("pose(%d)", int(p))
	}
}

// journal records hook invocations across all states of a machine.
type journal struct {
	calls []string
}

func (j *journal) add(format string, args ...any) {
	j.calls = append(j.calls, fmt.Sprintf(format, args...))
}

func (j *journal) reset() { j.calls = nil }

type recState struct {
	fsm.Base
	id pose
	j  *journal
}

func newRec(id pose, j *journal) *recState {
	return &recState{id: id, j: j}
}

func (s *recState) OnEnter(prev pose) { s.j.add("%v.enter(%v)", s.id, prev) }
func (s *recState) OnExit(next pose)  { s.j.add("%v.exit(%v)", s.id, next) }
func (s *recState) Update()           { s.j.add("%v.update", s.id) }
func (s *recState) LateUpdate()       { s.j.add("%v.late", s.id) }
func (s *recState) FixedUpdate()      { s.j.add("%v.fixed", s.id) }

// quiet only implements the required hooks.
type quiet struct {
	fsm.Base
}

func (q *quiet) OnEnter(prev int) {}
func (q *quiet) OnExit(next int)  {}

var _ fsm.State[pose] = (*recState)(nil)
var _ fsm.State[int] = (*quiet)(nil)
