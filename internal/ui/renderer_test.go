package ui

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/tickfsm/internal/entity"
	"github.com/samdwyer/tickfsm/internal/gamedata"
	"github.com/samdwyer/tickfsm/internal/world"
)

func TestRender(t *testing.T) {
	screen, err := NewSimulationScreen(20, 12)
	require.NoError(t, err)
	defer screen.Close()

	rng := rand.New(rand.NewSource(1))
	d := world.NewDungeon(12, 8, rng)
	for y := 1; y < 7; y++ {
		for x := 1; x < 11; x++ {
			d.Tiles[y][x] = world.TileFloor
		}
	}
	party := entity.NewParty(2, 2)
	bestiary := gamedata.MustLoadEnemyRegistry()
	goblin, err := entity.NewEnemy(bestiary.GetByID("goblin"), 5, 3, 0, d, party, rng)
	require.NoError(t, err)
	dead, err := entity.NewEnemy(bestiary.GetByID("orc"), 6, 3, 0, d, party, rng)
	require.NoError(t, err)
	dead.TakeDamage(dead.MaxHP)

	NewRenderer(screen).Render(Frame{
		Dungeon: d,
		Party:   party,
		Enemies: []*entity.Enemy{goblin, dead},
		Status:  []string{"HP 40/40", "explore"},
	})

	assert.Equal(t, '#', screen.Content(0, 0))
	assert.Equal(t, '.', screen.Content(1, 1))
	assert.Equal(t, '&', screen.Content(2, 2))
	assert.Equal(t, 'g', screen.Content(5, 3))
	assert.Equal(t, '.', screen.Content(6, 3), "dead enemies are not drawn")
	assert.Equal(t, "HP 40/40", screen.Row(8, 8))
	assert.Equal(t, "explore", screen.Row(9, 7))
}

func TestRenderBanner(t *testing.T) {
	screen, err := NewSimulationScreen(20, 12)
	require.NoError(t, err)
	defer screen.Close()

	d := world.NewDungeon(12, 8, rand.New(rand.NewSource(1)))
	NewRenderer(screen).Render(Frame{
		Dungeon: d,
		Party:   entity.NewParty(1, 1),
		Banner:  "PAUSED",
	})

	assert.Equal(t, "PAUSED", screen.Row(4, 9)[3:9])
}
