package entity

import (
	"fmt"

	"github.com/samdwyer/tickfsm/fsm"
)

// Behavior identifies a state of an enemy's brain.
type Behavior int

const (
	BehaviorIdle Behavior = iota
	BehaviorWander
	BehaviorChase
)

func (b Behavior) String() string {
	switch b {
	case BehaviorIdle:
		return "idle"
	case BehaviorWander:
		return "wander"
	case BehaviorChase:
		return "chase"
	default:
		return fmt.Sprintf("behavior(%d)", int(b))
	}
}

// Pacing used when an enemy definition leaves it unset.
const (
	defaultRestTicks   = 4
	defaultWanderSteps = 6
)

// Surroundings is what a brain needs to know about the map.
type Surroundings interface {
	IsPassable(x, y int) bool
	InSight(ax, ay, bx, by int) bool
	StepToward(fx, fy, tx, ty int) (int, int)
}

// Locator is anything with a position, typically the party.
type Locator interface {
	Position() (int, int)
}

// Perception runs on Update, movement on FixedUpdate.
//
//	idle   -> wander, chase
//	wander -> idle, chase
//	chase  -> wander
func newBrain(e *Enemy, opts ...fsm.Option) (*fsm.Machine[Behavior, *Enemy], error) {
	m := fsm.New[Behavior](e, opts...)

	states := []struct {
		id    Behavior
		state fsm.State[Behavior]
		to    []Behavior
	}{
		{BehaviorIdle, &idleState{enemy: e, Base: fsm.NewBase(fsm.NoTransitions)}, []Behavior{BehaviorWander, BehaviorChase}},
		{BehaviorWander, &wanderState{enemy: e, Base: fsm.NewBase(fsm.NoTransitions)}, []Behavior{BehaviorIdle, BehaviorChase}},
		{BehaviorChase, &chaseState{enemy: e, Base: fsm.NewBase(fsm.NoTransitions)}, []Behavior{BehaviorWander}},
	}
	for _, s := range states {
		if err := m.AddState(s.id, s.state); err != nil {
			return nil, err
		}
	}
	for _, s := range states {
		if err := m.Allow(s.id, s.to...); err != nil {
			return nil, err
		}
	}
	if err := m.SetDefaultState(BehaviorIdle, nil); err != nil {
		return nil, err
	}
	return m, nil
}

type idleState struct {
	fsm.Base
	enemy *Enemy
	ticks int
}

func (s *idleState) OnEnter(prev Behavior) { s.ticks = 0 }
func (s *idleState) OnExit(next Behavior)  {}

func (s *idleState) Update() {
	if s.enemy.sees() {
		_ = s.enemy.Brain.ChangeState(BehaviorChase)
	}
}

func (s *idleState) FixedUpdate() {
	s.ticks++
	if s.ticks >= s.enemy.restTicks() {
		_ = s.enemy.Brain.ChangeState(BehaviorWander)
	}
}

type wanderState struct {
	fsm.Base
	enemy *Enemy
	steps int
}

var directions = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

func (s *wanderState) OnEnter(prev Behavior) { s.steps = 0 }
func (s *wanderState) OnExit(next Behavior)  {}

func (s *wanderState) Update() {
	if s.enemy.sees() {
		_ = s.enemy.Brain.ChangeState(BehaviorChase)
	}
}

func (s *wanderState) FixedUpdate() {
	e := s.enemy
	start := e.rng.Intn(len(directions))
	for i := range directions {
		d := directions[(start+i)%len(directions)]
		nx, ny := e.X+d[0], e.Y+d[1]
		if e.world.IsPassable(nx, ny) && !s.occupiedByTarget(nx, ny) {
			e.X, e.Y = nx, ny
			break
		}
	}

	s.steps++
	if s.steps >= e.wanderSteps() {
		_ = e.Brain.ChangeState(BehaviorIdle)
	}
}

func (s *wanderState) occupiedByTarget(x, y int) bool {
	if s.enemy.target == nil {
		return false
	}
	tx, ty := s.enemy.target.Position()
	return tx == x && ty == y
}

type chaseState struct {
	fsm.Base
	enemy *Enemy
}

func (s *chaseState) OnEnter(prev Behavior) {}
func (s *chaseState) OnExit(next Behavior)  {}

func (s *chaseState) Update() {
	if !s.enemy.sees() {
		_ = s.enemy.Brain.ChangeState(BehaviorWander)
	}
}

// FixedUpdate closes in on the target and holds once adjacent.
func (s *chaseState) FixedUpdate() {
	e := s.enemy
	tx, ty := e.target.Position()
	if e.AdjacentTo(tx, ty) {
		return
	}
	dx, dy := e.world.StepToward(e.X, e.Y, tx, ty)
	e.X += dx
	e.Y += dy
}

func (e *Enemy) restTicks() int {
	if e.Def != nil && e.Def.RestTicks > 0 {
		return e.Def.RestTicks
	}
	return defaultRestTicks
}

func (e *Enemy) wanderSteps() int {
	if e.Def != nil && e.Def.WanderSteps > 0 {
		return e.Def.WanderSteps
	}
	return defaultWanderSteps
}
