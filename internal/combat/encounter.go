package combat

import (
	"context"
	"errors"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/tickfsm/fsm"
	"github.com/samdwyer/tickfsm/internal/telemetry"
)

// FleeChance is the probability that ActionFlee succeeds.
const FleeChance = 0.5

// maxLog bounds the retained combat log.
const maxLog = 8

// ErrNotPlayerTurn is returned by Act outside the player's turn.
var ErrNotPlayerTurn = errors.New("combat: not the player's turn")

// Action is a player command during combat.
type Action int

const (
	ActionAttack Action = iota
	ActionFlee
)

func (a Action) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionFlee:
		return "flee"
	default:
		return "unknown"
	}
}

// Encounter holds all state for an active combat encounter. Its phases are
// driven by a state machine:
//
//	player_turn -> enemy_turn, victory, fled
//	enemy_turn  -> player_turn, defeat
//
// victory, defeat and fled are terminal.
type Encounter struct {
	Party   Combatant
	Enemies []Combatant
	Turn    int      // Player turns started
	Log     []string // Most recent messages, oldest first

	phases *fsm.Machine[Phase, *Encounter]
	rng    *rand.Rand
	span   trace.Span
}

// NewEncounter starts a fight between party and enemies with the party
// acting first. opts configure the phase machine.
func NewEncounter(ctx context.Context, party Combatant, enemies []Combatant, rng *rand.Rand, opts ...fsm.Option) (*Encounter, error) {
	_, span := telemetry.Tracer("combat").Start(ctx, "combat.encounter")
	span.SetAttributes(attribute.Int("combat.enemy_count", len(enemies)))

	e := &Encounter{
		Party:   party,
		Enemies: enemies,
		rng:     rng,
		span:    span,
	}

	m := fsm.New[Phase](e, append([]fsm.Option{fsm.WithName("combat"), fsm.WithEnterOnDefault()}, opts...)...)
	states := []struct {
		id    Phase
		state fsm.State[Phase]
		to    []Phase
	}{
		{PhasePlayerTurn, &playerTurn{enc: e, Base: fsm.NewBase(fsm.NoTransitions)}, []Phase{PhaseEnemyTurn, PhaseVictory, PhaseFled}},
		{PhaseEnemyTurn, &enemyTurn{enc: e, Base: fsm.NewBase(fsm.NoTransitions)}, []Phase{PhasePlayerTurn, PhaseDefeat}},
		{PhaseVictory, &outcome{enc: e, phase: PhaseVictory, Base: fsm.NewBase(fsm.NoTransitions)}, nil},
		{PhaseDefeat, &outcome{enc: e, phase: PhaseDefeat, Base: fsm.NewBase(fsm.NoTransitions)}, nil},
		{PhaseFled, &outcome{enc: e, phase: PhaseFled, Base: fsm.NewBase(fsm.NoTransitions)}, nil},
	}
	for _, s := range states {
		if err := m.AddState(s.id, s.state); err != nil {
			span.End()
			return nil, err
		}
	}
	for _, s := range states {
		if err := m.Allow(s.id, s.to...); err != nil {
			span.End()
			return nil, err
		}
	}
	e.phases = m

	e.record("Combat begins!")
	if err := m.SetDefaultState(PhasePlayerTurn, nil); err != nil {
		span.End()
		return nil, err
	}
	return e, nil
}

// Phase returns the current phase.
func (e *Encounter) Phase() Phase {
	return e.phases.CurrentID()
}

// Over reports whether the encounter has ended.
func (e *Encounter) Over() bool {
	return e.Phase().Terminal()
}

// Phases exposes the phase machine for introspection.
func (e *Encounter) Phases() *fsm.Machine[Phase, *Encounter] {
	return e.phases
}

// Act performs the player's action and returns the phase it leads to. The
// action is traced under the encounter's span.
func (e *Encounter) Act(ctx context.Context, action Action) (Phase, error) {
	s, ok := e.phases.CurrentState().(*playerTurn)
	if !ok {
		return e.Phase(), ErrNotPlayerTurn
	}

	// Actions are children of the encounter span. The caller's span, if
	// any, is kept as a link.
	var opts []trace.SpanStartOption
	if caller := trace.SpanContextFromContext(ctx); caller.IsValid() {
		opts = append(opts, trace.WithLinks(trace.Link{SpanContext: caller}))
	}
	ctx, span := telemetry.Tracer("combat").Start(trace.ContextWithSpan(ctx, e.span), "combat.action", opts...)
	defer span.End()
	span.SetAttributes(
		attribute.String("combat.action", action.String()),
		attribute.Int("combat.turn", e.Turn),
	)

	next, err := s.act(ctx, action)
	if err != nil {
		span.RecordError(err)
	}
	span.SetAttributes(attribute.String("combat.phase", next.String()))
	return next, err
}

// FixedUpdate advances enemy turns; it does nothing during the player's turn.
func (e *Encounter) FixedUpdate() {
	e.phases.FixedUpdate()
}

// Message returns the most recent log line.
func (e *Encounter) Message() string {
	if len(e.Log) == 0 {
		return ""
	}
	return e.Log[len(e.Log)-1]
}

// AliveEnemyCount returns the number of enemies still alive.
func (e *Encounter) AliveEnemyCount() int {
	count := 0
	for _, foe := range e.Enemies {
		if foe.IsAlive() {
			count++
		}
	}
	return count
}

// FirstAliveEnemy returns the first alive enemy, or nil.
func (e *Encounter) FirstAliveEnemy() Combatant {
	for _, foe := range e.Enemies {
		if foe.IsAlive() {
			return foe
		}
	}
	return nil
}

func (e *Encounter) record(msg string) {
	e.Log = append(e.Log, msg)
	if len(e.Log) > maxLog {
		e.Log = e.Log[len(e.Log)-maxLog:]
	}
}

func (e *Encounter) finish(p Phase) {
	switch p {
	case PhaseVictory:
		e.record("Victory!")
	case PhaseDefeat:
		e.record("The party has fallen.")
	}
	e.span.SetAttributes(
		attribute.String("combat.outcome", p.String()),
		attribute.Int("combat.turns", e.Turn),
	)
	e.span.End()
}
