package profile

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"nine-empires/internal/game"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadAIProfile_MissingFileUsesDefaults(t *testing.T) {
	p := LoadAIProfile(t.TempDir(), "default", zap.NewNop())

	def := game.DefaultAIProfile()
	if p.MinMorale != def.MinMorale || p.BuildingChance != def.BuildingChance {
		t.Errorf("Expected built-in defaults, got %+v", p)
	}
	if p.Name != "default" {
		t.Errorf("Expected profile named after the request, got %q", p.Name)
	}
}

func TestLoadAIProfile_PartialFileOverridesOnlyNamedFields(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "land.yaml", "min_morale: 0.8\nnavy_priority: 0.0\n")

	p := LoadAIProfile(dir, "land", zap.NewNop())

	if p.MinMorale != 0.8 {
		t.Errorf("Expected overridden min morale 0.8, got %f", p.MinMorale)
	}
	if p.NavyPriority != 0 {
		t.Errorf("Expected overridden navy priority 0, got %f", p.NavyPriority)
	}
	def := game.DefaultAIProfile()
	if p.BuildingChance != def.BuildingChance {
		t.Errorf("Expected unnamed field to keep default %f, got %f", def.BuildingChance, p.BuildingChance)
	}
}

func TestLoadAIProfile_SciencePrioritiesFromFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "seatrade.yaml", "science_priorities: [0.1, 0.1, 0.3, 0.3, 0.1, 0.1]\n")

	p := LoadAIProfile(dir, "seatrade", zap.NewNop())

	if p.SciencePriorities[2] != 0.3 || p.SciencePriorities[3] != 0.3 {
		t.Errorf("Expected trade and sailing priorities 0.3, got %v", p.SciencePriorities)
	}
}

func TestLoadAll_ReturnsEveryShippedProfile(t *testing.T) {
	profiles := LoadAll(t.TempDir(), zap.NewNop())

	for _, name := range Names {
		if profiles[name] == nil {
			t.Errorf("Expected profile %q loaded", name)
		}
	}
}

func TestLoadTerrain_FileDefinesCatalog(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "terrain.yaml", `terrain:
  - name: steppe
    food: 0.9
    production: 0.8
    defense: 0.1
  - name: highlands
    food: 0.5
    production: 1.4
    defense: 0.3
`)

	c := LoadTerrain(filepath.Join(dir, "terrain.yaml"), zap.NewNop())

	if c.Len() != 3 { // sea + two land types
		t.Fatalf("Expected 3 terrain entries, got %d", c.Len())
	}
	if got := c.Lookup(1).Name; got != "steppe" {
		t.Errorf("Expected steppe at id 1, got %q", got)
	}
	if got := c.Lookup(2).Defense; got != 0.3 {
		t.Errorf("Expected highlands defense 0.3, got %f", got)
	}
}

func TestLoadTerrain_MissingFileUsesDefaults(t *testing.T) {
	c := LoadTerrain(filepath.Join(t.TempDir(), "nope.yaml"), zap.NewNop())

	if c.Len() != game.DefaultTerrainCatalog().Len() {
		t.Errorf("Expected default catalog, got %d entries", c.Len())
	}
}

func TestLoadTerrain_InvalidEntryFallsBackWhole(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "terrain.yaml", `terrain:
  - name: ""
    food: 1.0
`)

	c := LoadTerrain(filepath.Join(dir, "terrain.yaml"), zap.NewNop())

	if c.Len() != game.DefaultTerrainCatalog().Len() {
		t.Errorf("Expected full fallback to defaults, got %d entries", c.Len())
	}
}
