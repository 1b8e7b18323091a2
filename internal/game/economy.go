package game

// EconomyEngine computes morale, income, science funding support and
// population growth. It mutates empires directly; the world map is only read.
type EconomyEngine struct {
	terrain *TerrainCatalog
}

// NewEconomyEngine creates an economy engine over a terrain catalog.
func NewEconomyEngine(terrain *TerrainCatalog) *EconomyEngine {
	return &EconomyEngine{terrain: terrain}
}

// CalculateMorale recomputes and stores the empire's morale. The
// multiplicative chain (tax penalty, unemployment penalty, trust bonus) is
// computed first, the debt penalty added after, and only the final value is
// clamped to [0, 1].
func (ec *EconomyEngine) CalculateMorale(e *Empire) float64 {
	e.Morale = moraleAt(e, e.TaxRate)
	return e.Morale
}

// moraleAt computes morale as if the given tax rate (percent) were applied,
// without mutating the empire.
func moraleAt(e *Empire, taxRate float64) float64 {
	pop := float64(maxInt(e.Population, 1))
	taxPenalty := taxRate / 100 * 2
	unemployment := float64(e.Unemployed) / pop
	trustBonus := e.Trust / 2

	morale := 1.0 * (1 - taxPenalty) * (1 - unemployment) * (1 + trustBonus)

	debt := 0.0
	if e.Treasury < 0 {
		debt = float64(e.Treasury) / (10 * pop)
	}
	morale += debt

	if morale < 0 {
		return 0
	}
	if morale > 1 {
		return 1
	}
	return morale
}

// CalculateIncome returns the empire's net income for a turn. Each class
// income, each maintenance cost and the treasury interest are truncated
// toward zero independently before summation.
func (ec *EconomyEngine) CalculateIncome(e *Empire) int {
	tax := e.TaxRate / 100
	income := 0

	income += int(float64(e.Peasants) * tax * e.Morale * e.Science.Agriculture * 4)
	income += int(float64(e.Fishers) * tax * e.Morale * e.Science.Sailing * 4)
	income += int(float64(e.Workers) * tax * e.Morale * e.Science.Industry * 8)
	income += int(float64(e.Merchants) * tax * e.Morale * e.Science.Trade * 16)

	income -= int(float64(e.Mills) * e.Science.Industry * 20)
	income -= e.Forts * 30
	income -= e.Churches * 3
	income -= e.Universities * 25
	income -= e.Navy * 20
	income -= e.Soldiers * 30

	if e.Treasury > 0 {
		income += int(float64(e.Treasury) * 0.04)
	} else if e.Treasury < 0 {
		income -= int(float64(-e.Treasury) * 0.12)
	}

	return income
}

// CalculatePopulationGrowth returns this turn's population increase given the
// average food potential of the empire's territory. A positive growth rate
// always yields at least one person; a non-positive rate yields zero.
func (ec *EconomyEngine) CalculatePopulationGrowth(e *Empire, avgFood float64) int {
	if e.Population <= 0 {
		return 0
	}
	churchBonus := float64(e.Churches) * 0.02
	if churchBonus > 0.10 {
		churchBonus = 0.10
	}
	rate := (0.005 +
		(e.Science.Medicine - 1.0) +
		avgFood*e.Science.Agriculture*0.01 +
		churchBonus) * e.Morale
	if rate <= 0 {
		return 0
	}
	growth := int(float64(e.Population) * rate)
	if growth < 1 {
		growth = 1
	}
	return growth
}

// GrowthTiles is the territory census that steers growth distribution.
type GrowthTiles struct {
	Land        int // owned non-sea cells
	Sea         int // owned sea cells
	Production  int // owned cells whose terrain produces
	TradeRoutes int // owned cells adjacent to another owned cell
}

// CountGrowthTiles surveys the empire's territory on the map.
func (ec *EconomyEngine) CountGrowthTiles(e *Empire, m *WorldMap) GrowthTiles {
	var t GrowthTiles
	for _, c := range m.OwnedCells(e.ID) {
		terrainID := m.At(LayerTerrain, c.X, c.Y)
		if terrainID == TerrainSea {
			t.Sea++
		} else {
			t.Land++
		}
		if ec.terrain.Lookup(terrainID).Production > 0 {
			t.Production++
		}
		for _, n := range m.Neighbors(c.X, c.Y) {
			if m.At(LayerOwner, n.X, n.Y) == e.ID {
				t.TradeRoutes++
				break
			}
		}
	}
	return t
}

// DistributeGrowth splits a population increase across the working classes in
// proportion to the territory census: peasant share from land, fisher from
// sea, worker from production tiles, merchant from trade routes. The four
// ratios are normalized to sum to 1, each bucket truncated, and the remainder
// goes to unemployed.
func (ec *EconomyEngine) DistributeGrowth(e *Empire, growth int, tiles GrowthTiles) {
	e.Population += growth
	if growth <= 0 {
		return
	}
	total := float64(maxInt(tiles.Land+tiles.Sea, 1))

	peasantRatio := float64(tiles.Land) / total * 0.4
	fisherRatio := float64(tiles.Sea) / total * 0.4
	workerRatio := float64(tiles.Production) / total * 0.3
	merchantRatio := float64(tiles.TradeRoutes) / total * 0.2

	sum := peasantRatio + fisherRatio + workerRatio + merchantRatio
	if sum > 0 {
		peasantRatio /= sum
		fisherRatio /= sum
		workerRatio /= sum
		merchantRatio /= sum
	}

	newPeasants := int(float64(growth) * peasantRatio)
	newFishers := int(float64(growth) * fisherRatio)
	newWorkers := int(float64(growth) * workerRatio)
	newMerchants := int(float64(growth) * merchantRatio)

	e.Peasants += newPeasants
	e.Fishers += newFishers
	e.Workers += newWorkers
	e.Merchants += newMerchants
	e.Unemployed += growth - newPeasants - newFishers - newWorkers - newMerchants
}

// AverageFood returns the mean terrain food potential over the empire's
// owned cells.
func (ec *EconomyEngine) AverageFood(e *Empire, m *WorldMap) float64 {
	total := 0.0
	count := 0
	for _, c := range m.OwnedCells(e.ID) {
		total += ec.terrain.Lookup(m.At(LayerTerrain, c.X, c.Y)).Food
		count++
	}
	return total / float64(maxInt(count, 1))
}

// FindMaxSustainableTax scans candidate tax rates from 1% to 25% in 1% steps
// and returns the highest rate whose simulated morale still exceeds the
// floor. The scan is deliberately linear, not a binary search: the last
// qualifying rate wins even when the morale curve is not monotonic. Returns 0
// when no rate qualifies.
func (ec *EconomyEngine) FindMaxSustainableTax(e *Empire, minMorale float64) float64 {
	best := 0.0
	for tax := 1; tax <= 25; tax++ {
		if moraleAt(e, float64(tax)) > minMorale {
			best = float64(tax)
		}
	}
	return best
}
