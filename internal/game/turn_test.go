package game

import (
	"testing"
)

// newTestWorld builds an orchestrator over the given empires, granting each
// one plains cell in row 2 at its id's column.
func newTestWorld(t *testing.T, controls map[int]string) *Orchestrator {
	t.Helper()
	r := NewRegistry()
	m := NewWorldMap()
	for id, control := range controls {
		if _, err := r.Add(id, "empire", control); err != nil {
			t.Fatal(err)
		}
		m.Set(LayerTerrain, id, 2, 1)
		m.Set(LayerOwner, id, 2, id)
	}
	return NewOrchestrator(Config{
		Registry: r,
		Map:      m,
		Rand:     stubRand{f: 0.99}, // suppresses AI construction draws
	})
}

func TestOrchestrator_StartHandsControlToHuman(t *testing.T) {
	o := newTestWorld(t, map[int]string{1: ControlHuman, 2: "default"})
	o.Registry.Current = 1

	current := o.Start()

	if current == nil || current.ID != 1 {
		t.Fatalf("Expected empire 1 to open the game, got %v", current)
	}
	if o.State() != StateAwaitingCommand {
		t.Errorf("Expected awaiting-command state, got %v", o.State())
	}
}

func TestOrchestrator_StartAutoPlaysLeadingAI(t *testing.T) {
	o := newTestWorld(t, map[int]string{1: "default", 2: ControlHuman})
	o.Registry.Current = 1

	current := o.Start()

	if current == nil || current.ID != 2 {
		t.Fatalf("Expected AI opener to play through to empire 2, got %v", current)
	}
	if o.State() != StateAwaitingCommand {
		t.Errorf("Expected awaiting-command state, got %v", o.State())
	}
}

func TestOrchestrator_StartEndsGameWithNoLandAnywhere(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Add(1, "empire", ControlHuman); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Add(2, "empire", ControlHuman); err != nil {
		t.Fatal(err)
	}
	o := NewOrchestrator(Config{Registry: r, Map: NewWorldMap()})

	if current := o.Start(); current != nil {
		t.Errorf("Expected nil with no land anywhere, got %v", current)
	}
	if o.State() != StateGameOver {
		t.Errorf("Expected game-over state, got %v", o.State())
	}
}

func TestOrchestrator_EndTurnChainsThroughAIEmpires(t *testing.T) {
	o := newTestWorld(t, map[int]string{1: ControlHuman, 2: "default", 3: ControlHuman})
	o.Registry.Current = 1

	next := o.EndTurn()

	if next == nil || next.ID != 3 {
		t.Fatalf("Expected the AI empire 2 to play and control to reach 3, got %v", next)
	}
	if o.State() != StateAwaitingCommand {
		t.Errorf("Expected awaiting-command state, got %v", o.State())
	}
}

func TestOrchestrator_TurnCounterIncrementsOnWrapAround(t *testing.T) {
	o := newTestWorld(t, map[int]string{1: ControlHuman, 2: ControlHuman})
	o.Registry.Current = 2
	o.Turn = 7

	next := o.EndTurn()

	if next == nil || next.ID != 1 {
		t.Fatalf("Expected control to wrap to empire 1, got %v", next)
	}
	if o.Turn != 8 {
		t.Errorf("Expected turn counter at 8 after wrap, got %d", o.Turn)
	}
}

func TestOrchestrator_EndTurnGameOverWhenAloneOnTheMap(t *testing.T) {
	o := newTestWorld(t, map[int]string{2: ControlHuman})
	if _, err := o.Registry.Add(1, "landless", ControlHuman); err != nil {
		t.Fatal(err)
	}
	if _, err := o.Registry.Add(3, "landless", ControlHuman); err != nil {
		t.Fatal(err)
	}
	o.Registry.Current = 2

	if next := o.EndTurn(); next != nil {
		t.Errorf("Expected game over with no other landed empire, got %v", next)
	}
	if o.State() != StateGameOver {
		t.Errorf("Expected game-over state, got %v", o.State())
	}
}

func TestOrchestrator_EndTurnAppliesIncomeGrowthAndScience(t *testing.T) {
	o := newTestWorld(t, map[int]string{1: ControlHuman, 2: ControlHuman})
	o.Registry.Current = 1
	e := o.Registry.Get(1)
	e.Population = 100
	e.Peasants = 100
	e.TaxRate = 10

	o.EndTurn()

	if e.Treasury <= 0 {
		t.Errorf("Expected taxed peasants to produce income, got treasury %d", e.Treasury)
	}
	if e.Population <= 100 {
		t.Errorf("Expected population growth, got %d", e.Population)
	}
	if e.Science.Agriculture <= 1.0 {
		t.Errorf("Expected passive science progress, got %f", e.Science.Agriculture)
	}
}

func TestOrchestrator_DescribeTerritoryReportsOwnership(t *testing.T) {
	o := newTestWorld(t, map[int]string{1: ControlHuman})
	o.Map.Set(LayerFort, 1, 2, 2)

	info, err := o.DescribeTerritory(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if info.Terrain != "plains" {
		t.Errorf("Expected plains, got %q", info.Terrain)
	}
	if info.Forts != 2 {
		t.Errorf("Expected 2 forts reported, got %d", info.Forts)
	}

	if _, err := o.DescribeTerritory(-1, 0); err == nil {
		t.Error("Expected out-of-bounds error")
	}
}
