package game

import (
	"time"

	"github.com/samdwyer/tickfsm/internal/world"
)

const (
	DefaultFrameInterval = time.Second / 30
	DefaultFixedInterval = time.Second / 4
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible dungeon generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// FrameInterval paces Update and rendering.
	FrameInterval time.Duration
	// FixedInterval paces FixedUpdate: enemy movement and enemy turns.
	FixedInterval time.Duration

	// Width and Height of the dungeon; zero means the world defaults.
	Width, Height int
}

func (c Config) withDefaults() Config {
	if c.FrameInterval <= 0 {
		c.FrameInterval = DefaultFrameInterval
	}
	if c.FixedInterval <= 0 {
		c.FixedInterval = DefaultFixedInterval
	}
	if c.Width <= 0 {
		c.Width = world.DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = world.DefaultHeight
	}
	return c
}
