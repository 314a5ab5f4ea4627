package world

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tickfsm/internal/telemetry"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 22

	// SightRadius is how far an enemy sees outside its own room.
	SightRadius = 6

	minRoomSize = 5
	maxRoomSize = 12
	minLeafSize = 9
)

// Dungeon is a generated map. Tiles is indexed [y][x].
type Dungeon struct {
	Width  int
	Height int
	Tiles  [][]Tile
	Rooms  []Room
	rng    *rand.Rand
}

// NewDungeon creates a dungeon of solid wall. rng drives generation; the
// same seed yields the same layout.
func NewDungeon(width, height int, rng *rand.Rand) *Dungeon {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}
	return &Dungeon{Width: width, Height: height, Tiles: tiles, rng: rng}
}

// Generate carves rooms and corridors with binary space partitioning.
func (d *Dungeon) Generate(ctx context.Context) {
	_, span := telemetry.Tracer("world").Start(ctx, "dungeon.generate")
	defer span.End()
	start := time.Now()

	root := &leaf{x: 1, y: 1, w: d.Width - 2, h: d.Height - 2}
	d.split(root)
	d.carveLeaves(root)
	d.connect(root)

	span.SetAttributes(
		attribute.Int("dungeon.width", d.Width),
		attribute.Int("dungeon.height", d.Height),
		attribute.Int("dungeon.room_count", len(d.Rooms)),
		attribute.Int64("dungeon.generation_ms", time.Since(start).Milliseconds()),
	)
}

func (d *Dungeon) inBounds(x, y int) bool {
	return x >= 0 && x < d.Width && y >= 0 && y < d.Height
}

// IsPassable reports whether (x, y) is floor.
func (d *Dungeon) IsPassable(x, y int) bool {
	return d.inBounds(x, y) && d.Tiles[y][x].IsPassable()
}

// GetTile returns the tile at (x, y); out of bounds reads as wall.
func (d *Dungeon) GetTile(x, y int) Tile {
	if !d.inBounds(x, y) {
		return TileWall
	}
	return d.Tiles[y][x]
}

// RoomIndexAt returns the index of the room containing (x, y), or -1.
func (d *Dungeon) RoomIndexAt(x, y int) int {
	for i, room := range d.Rooms {
		if room.Contains(x, y) {
			return i
		}
	}
	return -1
}

// RandomPointInRoom returns a random floor cell of room i, falling back to
// its center.
func (d *Dungeon) RandomPointInRoom(i int) (int, int) {
	if i < 0 || i >= len(d.Rooms) {
		return -1, -1
	}
	room := d.Rooms[i]
	for range 100 {
		x := room.X + d.rng.Intn(room.Width)
		y := room.Y + d.rng.Intn(room.Height)
		if d.IsPassable(x, y) {
			return x, y
		}
	}
	return room.Center()
}

// InSight reports whether a viewer at (ax, ay) can see (bx, by): both in the
// same room, or within SightRadius on either axis.
func (d *Dungeon) InSight(ax, ay, bx, by int) bool {
	if r := d.RoomIndexAt(ax, ay); r >= 0 && r == d.RoomIndexAt(bx, by) {
		return true
	}
	return abs(ax-bx) <= SightRadius && abs(ay-by) <= SightRadius
}

// StepToward returns a unit step (dx, dy) from (fx, fy) that reduces the
// distance to (tx, ty) and lands on floor, or (0, 0) when no such step
// exists. The longer axis is tried first.
func (d *Dungeon) StepToward(fx, fy, tx, ty int) (int, int) {
	dx, dy := sign(tx-fx), sign(ty-fy)
	first, second := [2]int{dx, 0}, [2]int{0, dy}
	if abs(ty-fy) > abs(tx-fx) {
		first, second = second, first
	}
	for _, s := range [][2]int{first, second} {
		if s != [2]int{0, 0} && d.IsPassable(fx+s[0], fy+s[1]) {
			return s[0], s[1]
		}
	}
	return 0, 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
