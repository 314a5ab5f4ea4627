// Package entity provides the party and the monsters that hunt it.
package entity

const (
	partyHP      = 40
	partyAttack  = 6
	partyDefense = 2
)

// Party represents the player's band of adventurers. It moves and fights as
// a single unit.
type Party struct {
	X, Y   int  // Current position in the dungeon
	Symbol rune // Display symbol ('&')

	HP, MaxHP int
	Attack    int
	Defense   int
}

// NewParty creates a new party at the given position.
func NewParty(x, y int) *Party {
	return &Party{
		X:       x,
		Y:       y,
		Symbol:  '&',
		HP:      partyHP,
		MaxHP:   partyHP,
		Attack:  partyAttack,
		Defense: partyDefense,
	}
}

// Move updates the party position by the given delta.
func (p *Party) Move(dx, dy int) {
	p.X += dx
	p.Y += dy
}

// Position returns the current x, y coordinates.
func (p *Party) Position() (int, int) {
	return p.X, p.Y
}

// Rest restores up to amount HP and returns how much was restored.
func (p *Party) Rest(amount int) int {
	if amount <= 0 || p.HP <= 0 {
		return 0
	}
	actual := min(amount, p.MaxHP-p.HP)
	p.HP += actual
	return actual
}

func (p *Party) GetName() string { return "Party" }
func (p *Party) IsAlive() bool   { return p.HP > 0 }
func (p *Party) GetAttack() int  { return p.Attack }
func (p *Party) GetDefense() int { return p.Defense }

// TakeDamage reduces HP and returns actual damage taken.
func (p *Party) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, p.HP)
	p.HP -= actual
	return actual
}
