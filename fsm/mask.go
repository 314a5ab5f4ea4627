package fsm

import (
	"fmt"
	"math/bits"
)

// Mask is a fixed-width permission set. Bit i allows a transition into the
// state registered in slot i.
type Mask uint32

const (
	// MaxCapacity is the hard upper bound on states per machine: one slot
	// per Mask bit.
	MaxCapacity = 32

	// AllTransitions permits every slot. It is the default for new states.
	AllTransitions Mask = ^Mask(0)

	// NoTransitions permits nothing; a state with this mask is terminal.
	NoTransitions Mask = 0

	// TransitionToSelf is the highest bit. It carries no special meaning in
	// the engine and only names slot 31.
	TransitionToSelf Mask = 1 << (MaxCapacity - 1)
)

// Bit returns the single-bit mask for slot ordinal, or 0 when ordinal is
// outside [0, MaxCapacity).
func Bit(ordinal int) Mask {
	if ordinal < 0 || ordinal >= MaxCapacity {
		return 0
	}
	return 1 << uint(ordinal)
}

// Bits builds a mask from slot ordinals. Out-of-range ordinals are ignored.
func Bits(ordinals ...int) Mask {
	var m Mask
	for _, o := range ordinals {
		m |= Bit(o)
	}
	return m
}

// Has reports whether every bit of bit is set in m.
func (m Mask) Has(bit Mask) bool {
	return m&bit == bit
}

// With returns m with bits set.
func (m Mask) With(bits Mask) Mask {
	return m | bits
}

// Without returns m with bits cleared.
func (m Mask) Without(bits Mask) Mask {
	return m &^ bits
}

// Count returns the number of permitted slots.
func (m Mask) Count() int {
	return bits.OnesCount32(uint32(m))
}

// Ordinals returns the set slot ordinals in ascending order.
func (m Mask) Ordinals() []int {
	out := make([]int, 0, m.Count())
	for v := uint32(m); v != 0; v &= v - 1 {
		out = append(out, bits.TrailingZeros32(v))
	}
	return out
}

// String renders the mask as 32 binary digits, slot 31 first.
func (m Mask) String() string {
	return fmt.Sprintf("%032b", uint32(m))
}
