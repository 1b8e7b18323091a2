package game

import (
	"errors"
	"testing"
)

// stubRand pins the randomness source so battle factors and AI draws are
// reproducible in tests. Float64 always returns f; Intn always returns n
// clamped into range.
type stubRand struct {
	f float64
	n int
}

func (s stubRand) Float64() float64 { return s.f }

func (s stubRand) Intn(n int) int {
	if s.n >= n {
		return n - 1
	}
	return s.n
}

// evenRand makes battleFactor exactly 1.0 on both sides.
var evenRand = stubRand{f: 0.5}

func TestResolveBattle_TerrainBonusHoldsTheLine(t *testing.T) {
	mr := NewMilitaryResolver(DefaultTerrainCatalog(), evenRand)
	attacker := NewEmpire(1, "Aragon", ControlHuman)
	defender := NewEmpire(2, "Castile", "default")

	// Even forces on plains: the 0.1 terrain bonus tips it 10 vs 11.
	result := mr.ResolveBattle(attacker, defender, 10, 10, 1, 0, false)

	if result.TerritoryCaptured {
		t.Error("Expected defender to hold with terrain advantage")
	}
	if result.AttackerLosses != 10 {
		t.Errorf("Expected total attacker losses on a failed assault, got %d", result.AttackerLosses)
	}
	// defendForce * (1 - 10/11) truncates to zero.
	if result.DefenderLosses != 0 {
		t.Errorf("Expected no defender losses, got %d", result.DefenderLosses)
	}
}

func TestResolveBattle_FortBonusStacksWithTerrain(t *testing.T) {
	mr := NewMilitaryResolver(DefaultTerrainCatalog(), evenRand)
	attacker := NewEmpire(1, "Aragon", ControlHuman)
	defender := NewEmpire(2, "Castile", "default")

	// 13 vs 10 loses once a level-1 fort raises defense to 10*1.4 = 14.
	result := mr.ResolveBattle(attacker, defender, 13, 10, 1, 1, false)

	if result.TerritoryCaptured {
		t.Error("Expected fortified defender to hold")
	}
}

func TestResolveBattle_LandVictoryCapturesAndWipesDefenders(t *testing.T) {
	mr := NewMilitaryResolver(DefaultTerrainCatalog(), evenRand)
	attacker := NewEmpire(1, "Aragon", ControlHuman)
	defender := NewEmpire(2, "Castile", "default")
	defender.Population = 50

	// 30 vs 10 on plains: defense 11, victory ratio 30/11.
	result := mr.ResolveBattle(attacker, defender, 30, 10, 1, 0, false)

	if !result.TerritoryCaptured {
		t.Fatal("Expected attacker victory")
	}
	if result.DefenderLosses != 10 {
		t.Errorf("Expected defending force wiped out, got %d losses", result.DefenderLosses)
	}
	// attackerLosses = 30 * (1 - r/(r+1)) with r = 30/11, about 8.
	if result.AttackerLosses != 8 {
		t.Errorf("Expected 8 attacker losses, got %d", result.AttackerLosses)
	}
	// Plains food 1.0: exchange = 50 * 1.0 / 50 = 1.
	if result.PopulationExchange != 1 {
		t.Errorf("Expected population exchange 1, got %d", result.PopulationExchange)
	}
}

func TestResolveBattle_NavalWinReducesDefenderNavy(t *testing.T) {
	mr := NewMilitaryResolver(DefaultTerrainCatalog(), evenRand)
	attacker := NewEmpire(1, "Aragon", ControlHuman)
	defender := NewEmpire(2, "Castile", "default")
	defender.Navy = 7

	result := mr.ResolveBattle(attacker, defender, 14, 7, TerrainSea, 0, true)

	if !result.TerritoryCaptured {
		t.Fatal("Expected naval attacker victory")
	}
	// defenderLosses = truncate(7 * 2/3) = 4, deducted from the fleet.
	if result.DefenderLosses != 4 {
		t.Errorf("Expected 4 defender losses, got %d", result.DefenderLosses)
	}
	if defender.Navy != 3 {
		t.Errorf("Expected defender navy reduced to 3, got %d", defender.Navy)
	}
}

func TestResolveBattle_NavyNeverGoesNegative(t *testing.T) {
	mr := NewMilitaryResolver(DefaultTerrainCatalog(), evenRand)
	attacker := NewEmpire(1, "Aragon", ControlHuman)
	defender := NewEmpire(2, "Castile", "default")
	defender.Navy = 1

	mr.ResolveBattle(attacker, defender, 50, 9, TerrainSea, 0, true)

	if defender.Navy < 0 {
		t.Errorf("Expected navy floored at zero, got %d", defender.Navy)
	}
}

func TestMoveArmy_UnitsLandInArrivedLayer(t *testing.T) {
	mr := NewMilitaryResolver(DefaultTerrainCatalog(), evenRand)
	m := NewWorldMap()
	m.Set(LayerTerrain, 5, 5, 1)
	m.Set(LayerTerrain, 6, 5, 1)
	m.Set(LayerArmy, 5, 5, 4)

	if err := mr.MoveArmy(m, 3, 5, 5, 6, 5); err != nil {
		t.Fatalf("Expected move to succeed, got %v", err)
	}
	if got := m.At(LayerArmy, 5, 5); got != 1 {
		t.Errorf("Expected 1 unit left at source, got %d", got)
	}
	if got := m.At(LayerArrived, 6, 5); got != 3 {
		t.Errorf("Expected 3 units in arrived layer, got %d", got)
	}
	if got := m.At(LayerArmy, 6, 5); got != 0 {
		t.Errorf("Expected destination army layer untouched, got %d", got)
	}

	// Arrived units cannot move again until the layer is folded back.
	if err := mr.MoveArmy(m, 3, 6, 5, 5, 5); !errors.Is(err, ErrInsufficientUnits) {
		t.Errorf("Expected ErrInsufficientUnits re-moving arrived units, got %v", err)
	}
}

func TestMoveArmy_RejectsSeaDestination(t *testing.T) {
	mr := NewMilitaryResolver(DefaultTerrainCatalog(), evenRand)
	m := NewWorldMap()
	m.Set(LayerTerrain, 5, 5, 1)
	m.Set(LayerArmy, 5, 5, 4)

	if err := mr.MoveArmy(m, 2, 5, 5, 6, 5); !errors.Is(err, ErrSeaDestination) {
		t.Errorf("Expected ErrSeaDestination, got %v", err)
	}
	if got := m.At(LayerArmy, 5, 5); got != 4 {
		t.Errorf("Expected no units moved on rejection, got %d at source", got)
	}
}

func TestEmbarkArmy_BoundedByNavyCapacity(t *testing.T) {
	mr := NewMilitaryResolver(DefaultTerrainCatalog(), evenRand)
	m := NewWorldMap()
	m.Set(LayerTerrain, 5, 5, 1)
	m.Set(LayerArmy, 5, 5, 10)
	e := NewEmpire(1, "Aragon", ControlHuman)
	e.Navy = 5
	e.Embarked = 2
	e.MovedEmbarked = 1

	// 2+1+3 > 5: over capacity.
	if err := mr.EmbarkArmy(m, e, 3, 5, 5, 6, 5); !errors.Is(err, ErrNavyCapacity) {
		t.Fatalf("Expected ErrNavyCapacity, got %v", err)
	}

	if err := mr.EmbarkArmy(m, e, 2, 5, 5, 6, 5); err != nil {
		t.Fatalf("Expected embark within capacity to succeed, got %v", err)
	}
	if e.MovedEmbarked != 3 {
		t.Errorf("Expected moved-embarked counter at 3, got %d", e.MovedEmbarked)
	}
	if got := m.At(LayerArmy, 6, 5); got != 2 {
		t.Errorf("Expected 2 units on the sea cell, got %d", got)
	}
}

func TestEmbarkArmy_RequiresSeaDestination(t *testing.T) {
	mr := NewMilitaryResolver(DefaultTerrainCatalog(), evenRand)
	m := NewWorldMap()
	m.Set(LayerTerrain, 5, 5, 1)
	m.Set(LayerTerrain, 6, 5, 1)
	m.Set(LayerArmy, 5, 5, 10)
	e := NewEmpire(1, "Aragon", ControlHuman)
	e.Navy = 5

	if err := mr.EmbarkArmy(m, e, 2, 5, 5, 6, 5); !errors.Is(err, ErrNotSea) {
		t.Errorf("Expected ErrNotSea for land destination, got %v", err)
	}
}
