package game

import (
	"context"
	"fmt"

	"github.com/samdwyer/tickfsm/fsm"
	"github.com/samdwyer/tickfsm/internal/combat"
	"github.com/samdwyer/tickfsm/internal/entity"
)

// Mode is the game's top-level state.
type Mode int

const (
	// ModeExplore is the default mode: the party walks and enemies roam.
	ModeExplore Mode = iota
	// ModeCombat runs an encounter; the world is frozen.
	ModeCombat
	// ModePaused freezes everything until unpaused.
	ModePaused
	// ModeGameOver is entered when the party falls. It is terminal.
	ModeGameOver
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeExplore:
		return "explore"
	case ModeCombat:
		return "combat"
	case ModePaused:
		return "paused"
	case ModeGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

const (
	// graceTicks is how long enemies leave the party alone after it flees.
	graceTicks = 8
	// restEvery is how many fixed ticks of exploring restore 1 HP.
	restEvery = 8
)

// modeState is a mode that also reacts to player commands.
type modeState interface {
	fsm.State[Mode]
	handle(ctx context.Context, cmd command)
}

//	explore -> combat, paused
//	combat  -> explore, game_over
//	paused  -> explore
func newModes(g *Game, opts ...fsm.Option) (*fsm.Machine[Mode, *Game], error) {
	m := fsm.New[Mode](g, append([]fsm.Option{fsm.WithName("modes"), fsm.WithEnterOnDefault()}, opts...)...)

	states := []struct {
		id    Mode
		state modeState
		to    []Mode
	}{
		{ModeExplore, &exploreMode{modeBase: newModeBase(g)}, []Mode{ModeCombat, ModePaused}},
		{ModeCombat, &combatMode{modeBase: newModeBase(g)}, []Mode{ModeExplore, ModeGameOver}},
		{ModePaused, &pausedMode{modeBase: newModeBase(g)}, []Mode{ModeExplore}},
		{ModeGameOver, &gameOverMode{modeBase: newModeBase(g)}, nil},
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
	if err := m.SetDefaultState(ModeExplore, nil); err != nil {
		return nil, err
	}
	return m, nil
}

// ModeGraph describes the mode machine's permissions without starting a
// game.
func ModeGraph() (fsm.Info, error) {
	m, err := newModes(&Game{})
	if err != nil {
		return fsm.Info{}, err
	}
	return m.Info(), nil
}

// modeBase renders every frame; modes override what they need.
type modeBase struct {
	fsm.Base
	g *Game
}

func newModeBase(g *Game) modeBase {
	return modeBase{Base: fsm.NewBase(fsm.NoTransitions), g: g}
}

func (b *modeBase) OnEnter(prev Mode)                       {}
func (b *modeBase) OnExit(next Mode)                        {}
func (b *modeBase) LateUpdate()                             { b.g.render() }
func (b *modeBase) handle(ctx context.Context, cmd command) {}

type exploreMode struct {
	modeBase
}

func (s *exploreMode) OnEnter(prev Mode) {
	s.g.message = "Arrows move, p pauses, q quits."
}

// Update lets every enemy look for the party.
func (s *exploreMode) Update() {
	for _, e := range s.g.enemies {
		if e.IsAlive() {
			e.Brain.Update()
		}
	}
}

// FixedUpdate moves enemies and queues an engagement when one is adjacent
// and hunting.
func (s *exploreMode) FixedUpdate() {
	g := s.g
	g.fixedTicks++
	for _, e := range g.enemies {
		if e.IsAlive() {
			e.Brain.FixedUpdate()
		}
	}
	if g.fixedTicks%restEvery == 0 {
		g.party.Rest(1)
	}

	if g.grace > 0 {
		g.grace--
		return
	}
	g.pending = g.hunters()
}

func (s *exploreMode) handle(ctx context.Context, cmd command) {
	g := s.g
	if cmd == cmdPause {
		_ = g.changeMode(ctx, ModePaused)
		return
	}
	dx, dy, ok := cmd.delta()
	if !ok {
		return
	}

	nx, ny := g.party.X+dx, g.party.Y+dy
	if foe := g.enemyAt(nx, ny); foe != nil {
		g.pending = append([]*entity.Enemy{foe}, g.hunters(foe)...)
		return
	}
	if g.dungeon.IsPassable(nx, ny) {
		g.party.Move(dx, dy)
	}
}

type combatMode struct {
	modeBase
}

func (s *combatMode) OnEnter(prev Mode) {
	s.g.message = "a attacks, f flees."
}

func (s *combatMode) OnExit(next Mode) {
	s.g.encounter = nil
	s.g.engaged = nil
}

// FixedUpdate lets the enemies take their turn.
func (s *combatMode) FixedUpdate() {
	if s.g.encounter != nil {
		s.g.encounter.FixedUpdate()
	}
}

func (s *combatMode) handle(ctx context.Context, cmd command) {
	g := s.g
	if g.encounter == nil {
		return
	}
	var action combat.Action
	switch cmd {
	case cmdAttack:
		action = combat.ActionAttack
	case cmdFlee:
		action = combat.ActionFlee
	default:
		return
	}
	if _, err := g.encounter.Act(ctx, action); err != nil {
		g.message = "Wait for your turn."
	}
}

type pausedMode struct {
	modeBase
}

func (s *pausedMode) OnEnter(prev Mode) {
	s.g.message = "Paused. p resumes."
}

func (s *pausedMode) handle(ctx context.Context, cmd command) {
	if cmd == cmdPause {
		_ = s.g.changeMode(ctx, ModeExplore)
	}
}

type gameOverMode struct {
	modeBase
}

func (s *gameOverMode) OnEnter(prev Mode) {
	s.g.message = fmt.Sprintf("The party has fallen after %d ticks. q quits.", s.g.fixedTicks)
}
