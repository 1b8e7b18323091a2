package game

import (
	"testing"
)

func testEconomy() *EconomyEngine {
	return NewEconomyEngine(DefaultTerrainCatalog())
}

func TestCalculateMorale_TrustBonusClampedToOne(t *testing.T) {
	ec := testEconomy()
	e := NewEmpire(1, "Aragon", ControlHuman)
	e.Population = 100

	// No tax, no unemployment, full trust: the chain gives 1.5 and the
	// final clamp brings it back to 1.
	if got := ec.CalculateMorale(e); got != 1.0 {
		t.Errorf("Expected morale clamped to 1.0, got %f", got)
	}
}

func TestCalculateMorale_DebtCanZeroMorale(t *testing.T) {
	ec := testEconomy()
	e := NewEmpire(1, "Aragon", ControlHuman)
	e.Population = 100
	e.Trust = 0
	e.TaxRate = 10
	e.Treasury = -1000

	// Chain gives 0.8; debt penalty of -1000/(10*100) = -1 pushes it
	// below zero before the final clamp.
	if got := ec.CalculateMorale(e); got != 0 {
		t.Errorf("Expected morale clamped to 0 under heavy debt, got %f", got)
	}
}

func TestCalculateMorale_UnemploymentScalesDown(t *testing.T) {
	ec := testEconomy()
	e := NewEmpire(1, "Aragon", ControlHuman)
	e.Population = 100
	e.Unemployed = 50
	e.Trust = 0

	got := ec.CalculateMorale(e)
	if got < 0.49 || got > 0.51 {
		t.Errorf("Expected morale near 0.5 with half unemployed, got %f", got)
	}
}

func TestCalculateIncome_PeasantClassIncome(t *testing.T) {
	ec := testEconomy()
	e := NewEmpire(1, "Aragon", ControlHuman)
	e.Peasants = 100
	e.TaxRate = 10
	e.Morale = 1.0

	// 100 peasants at 10% tax, full morale, agriculture 1.0: 100*0.1*4 = 40.
	if got := ec.CalculateIncome(e); got != 40 {
		t.Errorf("Expected income 40, got %d", got)
	}
}

func TestCalculateIncome_MaintenanceAndInterestAtZeroTax(t *testing.T) {
	ec := testEconomy()
	e := NewEmpire(1, "Aragon", ControlHuman)
	e.Peasants = 100
	e.Morale = 1.0
	e.Forts = 2
	e.Treasury = 1000

	// Zero tax: class income vanishes, fort upkeep costs 60, interest
	// earns 40.
	if got := ec.CalculateIncome(e); got != -20 {
		t.Errorf("Expected income -20, got %d", got)
	}
}

func TestCalculateIncome_DebtInterestIsPunitive(t *testing.T) {
	ec := testEconomy()
	e := NewEmpire(1, "Aragon", ControlHuman)
	e.Treasury = -1000

	if got := ec.CalculateIncome(e); got != -120 {
		t.Errorf("Expected -120 debt interest, got %d", got)
	}
}

func TestCalculatePopulationGrowth_FlooredToOne(t *testing.T) {
	ec := testEconomy()
	e := NewEmpire(1, "Aragon", ControlHuman)
	e.Population = 10
	e.Morale = 1.0

	// Base rate 0.005 truncates to zero people for a tiny population but
	// a positive rate still grows by one.
	if got := ec.CalculatePopulationGrowth(e, 0); got != 1 {
		t.Errorf("Expected growth floored to 1, got %d", got)
	}
}

func TestCalculatePopulationGrowth_ZeroAtZeroMorale(t *testing.T) {
	ec := testEconomy()
	e := NewEmpire(1, "Aragon", ControlHuman)
	e.Population = 1000
	e.Morale = 0

	if got := ec.CalculatePopulationGrowth(e, 1.0); got != 0 {
		t.Errorf("Expected zero growth at zero morale, got %d", got)
	}
}

func TestDistributeGrowth_RemainderGoesToUnemployed(t *testing.T) {
	ec := testEconomy()
	e := NewEmpire(1, "Aragon", ControlHuman)
	e.Population = 100
	e.DistributePopulation()
	before := *e

	growth := 10
	ec.DistributeGrowth(e, growth, GrowthTiles{Land: 1, Sea: 1, Production: 1, TradeRoutes: 1})

	if e.Population != before.Population+growth {
		t.Errorf("Expected population %d, got %d", before.Population+growth, e.Population)
	}
	gained := (e.Peasants - before.Peasants) +
		(e.Fishers - before.Fishers) +
		(e.Workers - before.Workers) +
		(e.Merchants - before.Merchants) +
		(e.Unemployed - before.Unemployed)
	if gained != growth {
		t.Errorf("Expected class gains to sum to %d, got %d", growth, gained)
	}
	if e.Unemployed <= before.Unemployed {
		t.Error("Expected truncation remainder to land in unemployed")
	}
}

func TestFindMaxSustainableTax_LastQualifyingWins(t *testing.T) {
	ec := testEconomy()
	e := NewEmpire(1, "Aragon", ControlHuman)
	e.Population = 100
	e.Trust = 0

	// Morale is 1 - tax/50 here, so rates below 12.5% stay above a 0.75
	// floor. The scan keeps the last qualifying rate, but with morale
	// strictly decreasing in tax through every empire state the last
	// qualifying rate and the highest qualifying rate coincide, so the
	// ordering half of that rule has no observable effect here.
	if got := ec.FindMaxSustainableTax(e, 0.75); got != 12 {
		t.Errorf("Expected highest sustainable tax 12, got %f", got)
	}
}

func TestFindMaxSustainableTax_ZeroWhenNothingQualifies(t *testing.T) {
	ec := testEconomy()
	e := NewEmpire(1, "Aragon", ControlHuman)
	e.Population = 100
	e.Trust = 0

	if got := ec.FindMaxSustainableTax(e, 0.995); got != 0 {
		t.Errorf("Expected zero when no rate clears the floor, got %f", got)
	}
}
