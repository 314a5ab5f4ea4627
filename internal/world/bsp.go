package world

// leaf is a node of the BSP tree used during generation.
type leaf struct {
	x, y, w, h  int
	left, right *leaf
	room        *Room
}

func (l *leaf) isLeaf() bool {
	return l.left == nil && l.right == nil
}

// split divides l along its longer axis until leaves are near minLeafSize.
func (d *Dungeon) split(l *leaf) {
	canH := l.h >= minLeafSize*2
	canV := l.w >= minLeafSize*2
	if !canH && !canV {
		return
	}

	horizontal := canH && (!canV || l.h >= l.w)
	size := l.w
	if horizontal {
		size = l.h
	}
	lo, hi := minLeafSize, size-minLeafSize
	if hi < lo {
		return
	}
	at := lo + d.rng.Intn(hi-lo+1)

	if horizontal {
		l.left = &leaf{x: l.x, y: l.y, w: l.w, h: at}
		l.right = &leaf{x: l.x, y: l.y + at, w: l.w, h: l.h - at}
	} else {
		l.left = &leaf{x: l.x, y: l.y, w: at, h: l.h}
		l.right = &leaf{x: l.x + at, y: l.y, w: l.w - at, h: l.h}
	}
	d.split(l.left)
	d.split(l.right)
}

// carveLeaves places one room inside every leaf that can hold one.
func (d *Dungeon) carveLeaves(l *leaf) {
	if l == nil {
		return
	}
	if !l.isLeaf() {
		d.carveLeaves(l.left)
		d.carveLeaves(l.right)
		return
	}

	w := min(minRoomSize+d.rng.Intn(maxRoomSize-minRoomSize+1), l.w-2)
	h := min(minRoomSize+d.rng.Intn(maxRoomSize-minRoomSize+1), l.h-2)
	if w < minRoomSize || h < minRoomSize {
		return
	}

	room := Room{
		X:      l.x + 1 + d.rng.Intn(l.w-w-1),
		Y:      l.y + 1 + d.rng.Intn(l.h-h-1),
		Width:  w,
		Height: h,
	}
	l.room = &room
	d.Rooms = append(d.Rooms, room)

	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			d.carve(x, y)
		}
	}
}

// connect joins sibling subtrees with an L-shaped corridor.
func (d *Dungeon) connect(l *leaf) {
	if l == nil || l.isLeaf() {
		return
	}
	d.connect(l.left)
	d.connect(l.right)

	a, b := anyRoom(l.left), anyRoom(l.right)
	if a == nil || b == nil {
		return
	}
	x1, y1 := a.Center()
	x2, y2 := b.Center()
	if d.rng.Intn(2) == 0 {
		d.tunnelX(x1, x2, y1)
		d.tunnelY(y1, y2, x2)
	} else {
		d.tunnelY(y1, y2, x1)
		d.tunnelX(x1, x2, y2)
	}
}

func anyRoom(l *leaf) *Room {
	if l == nil {
		return nil
	}
	if l.room != nil {
		return l.room
	}
	if r := anyRoom(l.left); r != nil {
		return r
	}
	return anyRoom(l.right)
}

func (d *Dungeon) tunnelX(x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		d.carve(x, y)
	}
}

func (d *Dungeon) tunnelY(y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		d.carve(x, y)
	}
}

// carve turns (x, y) into floor, keeping the outer border solid.
func (d *Dungeon) carve(x, y int) {
	if x > 0 && x < d.Width-1 && y > 0 && y < d.Height-1 {
		d.Tiles[y][x] = TileFloor
	}
}
