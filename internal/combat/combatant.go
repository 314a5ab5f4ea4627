// Package combat runs turn-based encounters between the party and enemies.
package combat

import "fmt"

// Combatant is the interface for any entity that can participate in combat.
// Both the party and enemies implement this interface.
type Combatant interface {
	GetName() string
	IsAlive() bool
	GetAttack() int
	GetDefense() int
	TakeDamage(amount int) int // Returns actual damage taken
}

// Strike is the outcome of one attack.
type Strike struct {
	Attacker string
	Defender string
	Damage   int  // Damage actually dealt
	Fatal    bool // Defender died from this strike
}

// Message renders the strike for the combat log.
func (s Strike) Message() string {
	if s.Fatal {
		return fmt.Sprintf("%s hits %s for %d. %s falls!", s.Attacker, s.Defender, s.Damage, s.Defender)
	}
	return fmt.Sprintf("%s hits %s for %d.", s.Attacker, s.Defender, s.Damage)
}

// Damage returns attacker's attack minus defender's defense, at least 1.
func Damage(attacker, defender Combatant) int {
	return max(1, attacker.GetAttack()-defender.GetDefense())
}

// Attack applies one blow from attacker to defender.
func Attack(attacker, defender Combatant) Strike {
	dealt := defender.TakeDamage(Damage(attacker, defender))
	return Strike{
		Attacker: attacker.GetName(),
		Defender: defender.GetName(),
		Damage:   dealt,
		Fatal:    !defender.IsAlive(),
	}
}
