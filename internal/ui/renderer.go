package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tickfsm/internal/entity"
	"github.com/samdwyer/tickfsm/internal/world"
)

// Frame is everything drawn in one pass.
type Frame struct {
	Dungeon *world.Dungeon
	Party   *entity.Party
	Enemies []*entity.Enemy
	// Status lines are drawn under the map, top to bottom.
	Status []string
	// Banner, when set, is centered over the map (pause, game over).
	Banner string
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the dungeon, enemies, party and status lines.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()

	d := f.Dungeon
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			tile := d.GetTile(x, y)
			r.screen.SetContent(x, y, tile.Rune(), r.getTileStyle(tile))
		}
	}

	for _, e := range f.Enemies {
		if !e.IsAlive() {
			continue
		}
		style := tcell.StyleDefault.Foreground(e.Color())
		if e.Behavior() == entity.BehaviorChase {
			style = style.Bold(true)
		}
		r.screen.SetContent(e.X, e.Y, e.Symbol, style)
	}

	// Draw party on top
	partyStyle := tcell.StyleDefault.
		Foreground(tcell.ColorYellow).
		Bold(true)
	r.screen.SetContent(f.Party.X, f.Party.Y, f.Party.Symbol, partyStyle)

	for i, line := range f.Status {
		r.RenderMessage(line, d.Height+i)
	}
	if f.Banner != "" {
		x := max(0, (d.Width-len(f.Banner))/2)
		r.renderText(f.Banner, x, d.Height/2, tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow))
	}

	r.screen.Show()
}

// getTileStyle returns the appropriate style for a tile type.
func (r *Renderer) getTileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	default:
		return tcell.StyleDefault
	}
}

// RenderMessage displays a message on row y.
func (r *Renderer) RenderMessage(msg string, y int) {
	r.renderText(msg, 0, y, tcell.StyleDefault.Foreground(tcell.ColorWhite))
}

func (r *Renderer) renderText(msg string, x, y int, style tcell.Style) {
	for i, ch := range []rune(msg) {
		r.screen.SetContent(x+i, y, ch, style)
	}
}
