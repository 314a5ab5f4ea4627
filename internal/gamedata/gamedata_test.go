package gamedata

import (
	"math/rand"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestLoadEnemies(t *testing.T) {
	enemies, err := LoadEnemies()
	if err != nil {
		t.Fatalf("Failed to load enemies: %v", err)
	}

	if len(enemies) != 3 {
		t.Errorf("Expected 3 enemies, got %d", len(enemies))
	}

	expectedIDs := map[string]bool{"goblin": false, "orc": false, "skeleton": false}
	for _, e := range enemies {
		if _, ok := expectedIDs[e.ID]; ok {
			expectedIDs[e.ID] = true
		}
		if e.HP <= 0 || e.SpawnWeight <= 0 || e.RestTicks <= 0 || e.WanderSteps <= 0 {
			t.Errorf("enemy %q has non-positive stats: %+v", e.ID, e)
		}
	}
	for id, found := range expectedIDs {
		if !found {
			t.Errorf("Expected enemy %q not found", id)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load[EnemiesFile]("missing.json"); err == nil {
		t.Error("Load(missing.json) should fail")
	}
}

func TestEnemyRegistry(t *testing.T) {
	registry := MustLoadEnemyRegistry()

	if registry.Count() != 3 {
		t.Errorf("Expected 3 enemy types, got %d", registry.Count())
	}

	goblin := registry.GetByID("goblin")
	if goblin == nil {
		t.Fatal("Goblin not found by ID")
	}
	if goblin.Name != "Goblin" {
		t.Errorf("Expected name 'Goblin', got %q", goblin.Name)
	}
	if registry.GetByID("dragon") != nil {
		t.Error("GetByID(dragon) should be nil")
	}

	// Weighted spawning is deterministic with the same seed
	rng1 := rand.New(rand.NewSource(12345))
	rng2 := rand.New(rand.NewSource(12345))
	for i := 0; i < 10; i++ {
		a, b := registry.SpawnRandom(rng1).ID, registry.SpawnRandom(rng2).ID
		if a != b {
			t.Fatalf("spawn %d: %q != %q with same seed", i, a, b)
		}
	}
}

func TestSpawnRandomFollowsWeights(t *testing.T) {
	registry := NewEnemyRegistry([]EnemyDef{
		{ID: "never", SpawnWeight: 0},
		{ID: "always", SpawnWeight: 4},
	})
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		if got := registry.SpawnRandom(rng).ID; got != "always" {
			t.Fatalf("SpawnRandom picked %q, a zero-weight enemy", got)
		}
	}

	if NewEnemyRegistry(nil).SpawnRandom(rng) != nil {
		t.Error("empty registry should spawn nil")
	}
}

func TestEnemyDefMethods(t *testing.T) {
	def := EnemyDef{Glyph: "g", Color: "#ff0000"}
	if def.GlyphRune() != 'g' {
		t.Errorf("GlyphRune() = %c, want g", def.GlyphRune())
	}
	if def.TCellColor() != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("TCellColor() = %v, want #ff0000", def.TCellColor())
	}

	empty := EnemyDef{Color: "not-a-color"}
	if empty.GlyphRune() != '?' {
		t.Errorf("empty GlyphRune() = %c, want ?", empty.GlyphRune())
	}
	if empty.TCellColor() != tcell.ColorWhite {
		t.Errorf("bad color should fall back to white, got %v", empty.TCellColor())
	}
}
