package world

import (
	"context"
	"math/rand"
	"testing"
)

func generate(seed int64) *Dungeon {
	d := NewDungeon(DefaultWidth, DefaultHeight, rand.New(rand.NewSource(seed)))
	d.Generate(context.Background())
	return d
}

func TestDungeonReproducibility(t *testing.T) {
	d1 := generate(12345)
	d2 := generate(12345)

	if len(d1.Rooms) != len(d2.Rooms) {
		t.Fatalf("Room count mismatch: %d != %d", len(d1.Rooms), len(d2.Rooms))
	}
	for i := range d1.Rooms {
		if d1.Rooms[i] != d2.Rooms[i] {
			t.Errorf("Room %d mismatch: %+v != %+v", i, d1.Rooms[i], d2.Rooms[i])
		}
	}
	for y := 0; y < d1.Height; y++ {
		for x := 0; x < d1.Width; x++ {
			if d1.Tiles[y][x] != d2.Tiles[y][x] {
				t.Fatalf("Tile mismatch at (%d,%d): %c != %c", x, y, d1.Tiles[y][x], d2.Tiles[y][x])
			}
		}
	}
}

func TestDungeonDifferentSeeds(t *testing.T) {
	d1 := generate(12345)
	d2 := generate(54321)

	identical := len(d1.Rooms) == len(d2.Rooms)
	for i := 0; identical && i < len(d1.Rooms); i++ {
		if d1.Rooms[i] != d2.Rooms[i] {
			identical = false
		}
	}
	if identical {
		t.Error("Dungeons with different seeds should not be identical")
	}
}

func TestDungeonHasRoomsAndSolidBorder(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		d := generate(seed)
		if len(d.Rooms) < 2 {
			t.Errorf("seed %d: got %d rooms, want at least 2", seed, len(d.Rooms))
		}
		for x := 0; x < d.Width; x++ {
			if d.IsPassable(x, 0) || d.IsPassable(x, d.Height-1) {
				t.Fatalf("seed %d: border row open at x=%d", seed, x)
			}
		}
		for y := 0; y < d.Height; y++ {
			if d.IsPassable(0, y) || d.IsPassable(d.Width-1, y) {
				t.Fatalf("seed %d: border column open at y=%d", seed, y)
			}
		}
	}
}

func TestRoomCentersAreFloor(t *testing.T) {
	d := generate(99)
	for i, r := range d.Rooms {
		x, y := r.Center()
		if !d.IsPassable(x, y) {
			t.Errorf("room %d center (%d,%d) is not floor", i, x, y)
		}
		if got := d.RoomIndexAt(x, y); got != i {
			t.Errorf("RoomIndexAt(%d,%d) = %d, want %d", x, y, got, i)
		}
		px, py := d.RandomPointInRoom(i)
		if !r.Contains(px, py) {
			t.Errorf("RandomPointInRoom(%d) = (%d,%d), outside room", i, px, py)
		}
	}
	if x, y := d.RandomPointInRoom(len(d.Rooms)); x != -1 || y != -1 {
		t.Errorf("RandomPointInRoom(out of range) = (%d,%d), want (-1,-1)", x, y)
	}
}

func TestGetTileOutOfBounds(t *testing.T) {
	d := NewDungeon(10, 10, rand.New(rand.NewSource(1)))
	if got := d.GetTile(-1, 3); got != TileWall {
		t.Errorf("GetTile(-1,3) = %c, want wall", got)
	}
	if d.IsPassable(10, 10) {
		t.Error("IsPassable out of bounds should be false")
	}
}

// openField returns a dungeon whose interior is all floor.
func openField(w, h int) *Dungeon {
	d := NewDungeon(w, h, rand.New(rand.NewSource(1)))
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			d.Tiles[y][x] = TileFloor
		}
	}
	return d
}

func TestStepToward(t *testing.T) {
	d := openField(20, 20)

	tests := []struct {
		name           string
		fx, fy, tx, ty int
		wantDX, wantDY int
	}{
		{"east", 5, 5, 9, 5, 1, 0},
		{"north", 5, 5, 5, 1, 0, -1},
		{"longer axis first", 5, 5, 7, 12, 0, 1},
		{"already there", 5, 5, 5, 5, 0, 0},
	}
	for _, tt := range tests {
		dx, dy := d.StepToward(tt.fx, tt.fy, tt.tx, tt.ty)
		if dx != tt.wantDX || dy != tt.wantDY {
			t.Errorf("%s: StepToward = (%d,%d), want (%d,%d)", tt.name, dx, dy, tt.wantDX, tt.wantDY)
		}
	}
}

func TestStepTowardAroundWall(t *testing.T) {
	d := openField(20, 20)
	d.Tiles[5][6] = TileWall

	dx, dy := d.StepToward(5, 5, 10, 7)
	if dx != 0 || dy != 1 {
		t.Errorf("StepToward blocked east = (%d,%d), want (0,1)", dx, dy)
	}

	d.Tiles[6][5] = TileWall
	dx, dy = d.StepToward(5, 5, 10, 7)
	if dx != 0 || dy != 0 {
		t.Errorf("StepToward boxed in = (%d,%d), want (0,0)", dx, dy)
	}
}

func TestInSight(t *testing.T) {
	d := openField(40, 20)
	d.Rooms = []Room{{X: 1, Y: 1, Width: 30, Height: 5}}

	if !d.InSight(1, 1, 29, 4) {
		t.Error("same room should be in sight regardless of distance")
	}
	if !d.InSight(10, 10, 14, 14) {
		t.Error("within radius should be in sight")
	}
	if d.InSight(10, 10, 10+SightRadius+1, 10) {
		t.Error("beyond radius outside a shared room should not be in sight")
	}
}
