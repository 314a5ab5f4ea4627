// Package world generates dungeon maps and answers the spatial questions
// enemy behaviors ask: can I step there, which way is the party, can I see it.
package world

// Tile is a single map cell, stored as its display rune.
type Tile rune

const (
	TileWall  Tile = '#'
	TileFloor Tile = '.'
)

// IsPassable reports whether the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t == TileFloor
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}
