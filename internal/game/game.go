// Package game provides the main game loop and mode management.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tickfsm/fsm"
	"github.com/samdwyer/tickfsm/internal/combat"
	"github.com/samdwyer/tickfsm/internal/entity"
	"github.com/samdwyer/tickfsm/internal/gamedata"
	"github.com/samdwyer/tickfsm/internal/logger"
	"github.com/samdwyer/tickfsm/internal/telemetry"
	"github.com/samdwyer/tickfsm/internal/ui"
	"github.com/samdwyer/tickfsm/internal/world"
	"github.com/samdwyer/tickfsm/observability"
)

// Option configures a Game.
type Option func(*Game)

// WithScreen draws to screen instead of opening the terminal.
func WithScreen(s *ui.Screen) Option {
	return func(g *Game) { g.screen = s }
}

// WithLogger sets the logger for game events.
func WithLogger(l *slog.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

// WithObserver replaces the observer attached to every state machine. By
// default machine events go to the logger and to the active trace span.
func WithObserver(o observability.Observer) Option {
	return func(g *Game) { g.observer = o }
}

// Game holds the entire game state.
type Game struct {
	cfg      Config
	log      *slog.Logger
	observer observability.Observer
	screen   *ui.Screen
	renderer *ui.Renderer

	rng       *rand.Rand
	bestiary  *gamedata.EnemyRegistry
	dungeon   *world.Dungeon
	party     *entity.Party
	enemies   []*entity.Enemy
	modes     *fsm.Machine[Mode, *Game]
	encounter *combat.Encounter
	engaged   []*entity.Enemy // enemies in the current encounter
	pending   []*entity.Enemy // enemies that will start a fight on settle

	message    string
	fixedTicks int
	grace      int
	running    bool
}

// New creates a new game instance.
func New(cfg Config, opts ...Option) (*Game, error) {
	g := &Game{
		cfg:     cfg.withDefaults(),
		log:     slog.Default(),
		running: true,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.observer == nil {
		g.observer = observability.NewMultiObserver(
			observability.NewSlogObserver(g.log.With(logger.Component("fsm"))),
			observability.NewTraceObserver(),
		)
	}
	if g.screen == nil {
		screen, err := ui.NewScreen()
		if err != nil {
			return nil, err
		}
		g.screen = screen
	}
	g.renderer = ui.NewRenderer(g.screen)
	return g, nil
}

// Mode returns the current mode.
func (g *Game) Mode() Mode {
	return g.modes.CurrentID()
}

// Modes exposes the mode machine.
func (g *Game) Modes() *fsm.Machine[Mode, *Game] {
	return g.modes
}

// setup generates the dungeon, places everyone and enters explore mode.
func (g *Game) setup(ctx context.Context) error {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.init")
	defer span.End()

	seed := g.cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.log.Info("game starting", logger.Seed(seed))

	g.dungeon = world.NewDungeon(g.cfg.Width, g.cfg.Height, g.rng)
	g.dungeon.Generate(ctx)

	// Place party in first room's center
	if len(g.dungeon.Rooms) > 0 {
		startX, startY := g.dungeon.Rooms[0].Center()
		g.party = entity.NewParty(startX, startY)
	} else {
		g.party = entity.NewParty(g.dungeon.Width/2, g.dungeon.Height/2)
		span.SetAttributes(attribute.String("warning", "no rooms generated, using fallback position"))
	}

	bestiary, err := gamedata.LoadEnemyRegistry()
	if err != nil {
		span.RecordError(err)
		return err
	}
	g.bestiary = bestiary
	if err := g.spawnEnemies(); err != nil {
		span.RecordError(err)
		return err
	}

	modes, err := newModes(g, fsm.WithObserver(g.observer))
	if err != nil {
		span.RecordError(err)
		return err
	}
	g.modes = modes

	span.SetAttributes(
		attribute.Int64("game.seed", seed),
		attribute.Int("dungeon.rooms", len(g.dungeon.Rooms)),
		attribute.Int("game.enemies", len(g.enemies)),
		attribute.Int("party.start_x", g.party.X),
		attribute.Int("party.start_y", g.party.Y),
	)
	return nil
}

// spawnEnemies puts one enemy in every room but the party's.
func (g *Game) spawnEnemies() error {
	g.enemies = g.enemies[:0]
	for i := 1; i < len(g.dungeon.Rooms); i++ {
		x, y := g.dungeon.RandomPointInRoom(i)
		e, err := entity.NewEnemy(g.bestiary.SpawnRandom(g.rng), x, y, i, g.dungeon, g.party, g.rng,
			fsm.WithObserver(g.observer))
		if err != nil {
			return fmt.Errorf("spawn enemy in room %d: %w", i, err)
		}
		g.enemies = append(g.enemies, e)
	}
	return nil
}

// Run executes the main game loop until the player quits or ctx ends.
// Input is read on its own goroutine; a frame ticker drives Update and
// rendering, a fixed ticker drives FixedUpdate.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := g.setup(ctx); err != nil {
		return err
	}

	events := make(chan tcell.Event, 16)
	go g.pollEvents(ctx, events)

	frame := time.NewTicker(g.cfg.FrameInterval)
	defer frame.Stop()
	fixed := time.NewTicker(g.cfg.FixedInterval)
	defer fixed.Stop()

	g.modes.LateUpdate()
	for g.running {
		select {
		case <-ctx.Done():
			g.running = false
		case ev := <-events:
			g.handleEvent(ctx, ev)
		case <-fixed.C:
			g.fixedTick(ctx)
		case <-frame.C:
			g.modes.Update()
			g.modes.LateUpdate()
		}
	}

	g.log.Info("game over",
		logger.Mode(g.Mode()),
		slog.Int("ticks", g.fixedTicks),
		slog.Int("hp", g.party.HP),
	)
	return nil
}

// pollEvents forwards terminal events until the screen closes or ctx ends.
func (g *Game) pollEvents(ctx context.Context, events chan<- tcell.Event) {
	for {
		ev := g.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// handleEvent processes a single input event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleCommand(ctx, commandFor(ev))
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleCommand quits or hands cmd to the current mode.
func (g *Game) handleCommand(ctx context.Context, cmd command) {
	if cmd == cmdQuit {
		g.running = false
		return
	}
	if s, ok := g.modes.CurrentState().(modeState); ok {
		s.handle(ctx, cmd)
	}
	g.settle(ctx)
}

// fixedTick advances the simulation by one fixed step.
func (g *Game) fixedTick(ctx context.Context) {
	g.modes.FixedUpdate()
	g.settle(ctx)
}

// settle performs mode changes queued by the current mode's hooks.
func (g *Game) settle(ctx context.Context) {
	switch g.Mode() {
	case ModeExplore:
		if len(g.pending) > 0 {
			foes := g.pending
			g.pending = nil
			g.engage(ctx, foes)
		}
	case ModeCombat:
		if g.encounter != nil && g.encounter.Over() {
			g.disengage(ctx)
		}
	}
}

// engage starts an encounter against foes and switches to combat.
func (g *Game) engage(ctx context.Context, foes []*entity.Enemy) {
	combatants := make([]combat.Combatant, len(foes))
	for i, e := range foes {
		combatants[i] = e
	}
	enc, err := combat.NewEncounter(ctx, g.party, combatants, g.rng, fsm.WithObserver(g.observer))
	if err != nil {
		g.log.Error("start encounter", logger.Error(err))
		return
	}
	if err := g.changeMode(ctx, ModeCombat); err != nil {
		return
	}
	g.encounter = enc
	g.engaged = foes
	g.log.Info("combat started", slog.Int("enemies", len(foes)))
}

// disengage leaves a finished encounter.
func (g *Game) disengage(ctx context.Context) {
	outcome := g.encounter.Phase()
	engaged := g.engaged
	g.removeDead()
	g.log.Info("combat ended",
		slog.String("outcome", outcome.String()),
		slog.Int("turns", g.encounter.Turn),
		slog.Int("hp", g.party.HP),
	)

	switch outcome {
	case combat.PhaseDefeat:
		_ = g.changeMode(ctx, ModeGameOver)
	case combat.PhaseFled:
		for _, e := range engaged {
			e.Calm()
		}
		g.grace = graceTicks
		_ = g.changeMode(ctx, ModeExplore)
		g.message = "You got away."
	default:
		_ = g.changeMode(ctx, ModeExplore)
		g.message = "Victory!"
	}
}

// changeMode switches modes inside a span so the transition event is
// recorded on it.
func (g *Game) changeMode(ctx context.Context, to Mode) error {
	ctx, span := telemetry.Tracer("game").Start(ctx, "mode.change")
	defer span.End()
	span.SetAttributes(
		attribute.String("mode.from", g.Mode().String()),
		attribute.String("mode.to", to.String()),
	)

	if err := g.modes.ChangeStateContext(ctx, to); err != nil {
		span.RecordError(err)
		g.log.Warn("mode change refused", logger.Mode(to), logger.Error(err))
		return err
	}
	return nil
}

// hunters returns living chasing enemies next to the party, except skip.
func (g *Game) hunters(skip ...*entity.Enemy) []*entity.Enemy {
	var out []*entity.Enemy
	for _, e := range g.enemies {
		if !e.IsAlive() || e.Behavior() != entity.BehaviorChase || !e.AdjacentTo(g.party.X, g.party.Y) {
			continue
		}
		if len(skip) > 0 && e == skip[0] {
			continue
		}
		out = append(out, e)
	}
	return out
}

// enemyAt returns the living enemy at (x, y), or nil.
func (g *Game) enemyAt(x, y int) *entity.Enemy {
	for _, e := range g.enemies {
		if e.IsAlive() && e.X == x && e.Y == y {
			return e
		}
	}
	return nil
}

func (g *Game) removeDead() {
	alive := g.enemies[:0]
	for _, e := range g.enemies {
		if e.IsAlive() {
			alive = append(alive, e)
		}
	}
	g.enemies = alive
}

// render draws the current frame.
func (g *Game) render() {
	status := []string{
		fmt.Sprintf("HP %d/%d  Mode %s  Enemies %d", g.party.HP, g.party.MaxHP, g.Mode(), len(g.enemies)),
		g.message,
	}
	if g.encounter != nil {
		log := g.encounter.Log
		status = append(status, log[max(0, len(log)-3):]...)
	}

	var banner string
	switch g.Mode() {
	case ModePaused:
		banner = " PAUSED "
	case ModeGameOver:
		banner = " GAME OVER "
	}

	g.renderer.Render(ui.Frame{
		Dungeon: g.dungeon,
		Party:   g.party,
		Enemies: g.enemies,
		Status:  status,
		Banner:  banner,
	})
}
