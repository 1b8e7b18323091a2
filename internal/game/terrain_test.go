package game

import (
	"testing"
)

func TestTerrainCatalog_SeaIsAlwaysEntryZero(t *testing.T) {
	c := NewTerrainCatalog([]Terrain{{Name: "plains", Food: 1.0}})

	if got := c.Lookup(TerrainSea).Name; got != "sea" {
		t.Errorf("Expected entry 0 to be sea, got %q", got)
	}
	if got := c.Lookup(1).Name; got != "plains" {
		t.Errorf("Expected entry 1 to be plains, got %q", got)
	}
}

func TestTerrainCatalog_EmptyInputFallsBackToDefaults(t *testing.T) {
	c := NewTerrainCatalog(nil)

	if c.Len() != DefaultTerrainCatalog().Len() {
		t.Errorf("Expected default catalog size %d, got %d", DefaultTerrainCatalog().Len(), c.Len())
	}
}

func TestTerrainCatalog_LookupOutOfRangeReturnsSea(t *testing.T) {
	c := DefaultTerrainCatalog()

	if got := c.Lookup(-1).Name; got != "sea" {
		t.Errorf("Expected sea for negative id, got %q", got)
	}
	if got := c.Lookup(999).Name; got != "sea" {
		t.Errorf("Expected sea for out-of-range id, got %q", got)
	}
}
