package entity

import (
	"fmt"
	"math/rand"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tickfsm/fsm"
	"github.com/samdwyer/tickfsm/internal/gamedata"
)

// Enemy represents a hostile creature in the dungeon. Its Brain decides
// between idling, wandering and chasing the party.
type Enemy struct {
	Def       *gamedata.EnemyDef
	Name      string
	Symbol    rune
	X, Y      int // Position in the dungeon
	RoomIndex int // Room the enemy spawned in (-1 if none)
	HP        int
	MaxHP     int
	Attack    int
	Defense   int

	Brain *fsm.Machine[Behavior, *Enemy]

	world  Surroundings
	target Locator
	rng    *rand.Rand
}

// NewEnemy creates an enemy from def at (x, y) that watches target inside
// world. opts configure its behavior machine, which is named after the
// enemy unless opts say otherwise.
func NewEnemy(def *gamedata.EnemyDef, x, y, roomIndex int, world Surroundings, target Locator, rng *rand.Rand, opts ...fsm.Option) (*Enemy, error) {
	e := &Enemy{
		Def:       def,
		Name:      def.Name,
		Symbol:    def.GlyphRune(),
		X:         x,
		Y:         y,
		RoomIndex: roomIndex,
		HP:        def.HP,
		MaxHP:     def.HP,
		Attack:    def.Attack,
		Defense:   def.Defense,
		world:     world,
		target:    target,
		rng:       rng,
	}

	name := fmt.Sprintf("%s@%d,%d", def.ID, x, y)
	brain, err := newBrain(e, append([]fsm.Option{fsm.WithName(name)}, opts...)...)
	if err != nil {
		return nil, err
	}
	e.Brain = brain
	return e, nil
}

// Position returns the enemy's current x, y coordinates.
func (e *Enemy) Position() (int, int) {
	return e.X, e.Y
}

// Color returns the tcell color for this enemy.
func (e *Enemy) Color() tcell.Color {
	return e.Def.TCellColor()
}

// Behavior returns what the enemy is currently doing.
func (e *Enemy) Behavior() Behavior {
	return e.Brain.CurrentID()
}

// AdjacentTo reports whether (x, y) is one orthogonal step away.
func (e *Enemy) AdjacentTo(x, y int) bool {
	return abs(e.X-x)+abs(e.Y-y) == 1
}

// Calm sends a chasing enemy back to wandering. It reports whether the
// enemy's behavior changed.
func (e *Enemy) Calm() bool {
	return e.Brain.CurrentID() == BehaviorChase && e.Brain.ChangeState(BehaviorWander) == nil
}

func (e *Enemy) GetName() string { return e.Name }
func (e *Enemy) IsAlive() bool   { return e.HP > 0 }
func (e *Enemy) GetAttack() int  { return e.Attack }
func (e *Enemy) GetDefense() int { return e.Defense }

// TakeDamage reduces HP and returns actual damage taken.
func (e *Enemy) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, e.HP)
	e.HP -= actual
	return actual
}

// sees reports whether the enemy can see its target.
func (e *Enemy) sees() bool {
	if e.target == nil {
		return false
	}
	tx, ty := e.target.Position()
	return e.world.InSight(e.X, e.Y, tx, ty)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
