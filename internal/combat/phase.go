package combat

import (
	"context"
	"fmt"

	"github.com/samdwyer/tickfsm/fsm"
)

// Phase represents the current phase of combat.
type Phase int

const (
	// PhasePlayerTurn waits for the player to choose an action.
	PhasePlayerTurn Phase = iota
	// PhaseEnemyTurn resolves enemy attacks on the next fixed tick.
	PhaseEnemyTurn
	// PhaseVictory means all enemies are defeated.
	PhaseVictory
	// PhaseDefeat means the party is defeated.
	PhaseDefeat
	// PhaseFled means the party escaped.
	PhaseFled
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseEnemyTurn:
		return "enemy_turn"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	case PhaseFled:
		return "fled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the encounter is over in this phase.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat || p == PhaseFled
}

type playerTurn struct {
	fsm.Base
	enc *Encounter
}

func (s *playerTurn) OnEnter(prev Phase) {
	s.enc.Turn++
}

func (s *playerTurn) OnExit(next Phase) {}

// act resolves the player's choice and hands the turn over.
func (s *playerTurn) act(ctx context.Context, action Action) (Phase, error) {
	e := s.enc
	switch action {
	case ActionAttack:
		target := e.FirstAliveEnemy()
		if target == nil {
			return PhaseVictory, e.phases.ChangeStateContext(ctx, PhaseVictory)
		}
		e.record(Attack(e.Party, target).Message())
		if e.AliveEnemyCount() == 0 {
			return PhaseVictory, e.phases.ChangeStateContext(ctx, PhaseVictory)
		}
	case ActionFlee:
		if e.rng.Float64() < FleeChance {
			e.record("The party escapes!")
			return PhaseFled, e.phases.ChangeStateContext(ctx, PhaseFled)
		}
		e.record("The party fails to escape!")
	default:
		return PhasePlayerTurn, fmt.Errorf("combat: unknown action %d", action)
	}
	return PhaseEnemyTurn, e.phases.ChangeStateContext(ctx, PhaseEnemyTurn)
}

type enemyTurn struct {
	fsm.Base
	enc *Encounter
}

func (s *enemyTurn) OnEnter(prev Phase) {}
func (s *enemyTurn) OnExit(next Phase)  {}

// FixedUpdate lets every living enemy strike once.
func (s *enemyTurn) FixedUpdate() {
	e := s.enc
	for _, foe := range e.Enemies {
		if !foe.IsAlive() {
			continue
		}
		e.record(Attack(foe, e.Party).Message())
		if !e.Party.IsAlive() {
			_ = e.phases.ChangeState(PhaseDefeat)
			return
		}
	}
	_ = e.phases.ChangeState(PhasePlayerTurn)
}

// outcome is a terminal phase; it only records how the fight ended.
type outcome struct {
	fsm.Base
	enc   *Encounter
	phase Phase
}

func (s *outcome) OnEnter(prev Phase) {
	s.enc.finish(s.phase)
}

func (s *outcome) OnExit(next Phase) {}
