package game

import "fmt"

// BattleResult is the value describing one resolved battle. It is never
// persisted.
type BattleResult struct {
	AttackerLosses     int
	DefenderLosses     int
	TerritoryCaptured  bool
	PopulationExchange int
	FortDamage         int
	Message            string
}

// MilitaryResolver resolves battles and validates army movement. All
// randomness goes through the injected source.
type MilitaryResolver struct {
	terrain *TerrainCatalog
	rng     Rand
}

// NewMilitaryResolver creates a resolver over a terrain catalog and a
// randomness source.
func NewMilitaryResolver(terrain *TerrainCatalog, rng Rand) *MilitaryResolver {
	return &MilitaryResolver{terrain: terrain, rng: rng}
}

// ResolveBattle computes the outcome of a battle between an attacking and a
// defending force. Land defense is scaled by terrain and fort bonuses; naval
// combat is scaled by sailing science on both sides and reduces the
// defender's navy on an attacker win. Loss values are truncated toward zero;
// territory is only ever captured on an attacker win.
func (mr *MilitaryResolver) ResolveBattle(attacker, defender *Empire, attackForce, defendForce, terrainID, fortLevel int, naval bool) BattleResult {
	attackStrength := float64(attackForce) * attacker.Science.Military * battleFactor(mr.rng)
	defenseStrength := float64(defendForce) * defender.Science.Military * battleFactor(mr.rng)

	if naval {
		attackStrength *= attacker.Science.Sailing
		defenseStrength *= defender.Science.Sailing
	} else {
		terrainBonus := mr.terrain.Lookup(terrainID).Defense
		fortBonus := float64(fortLevel) * 0.3
		defenseStrength *= 1 + terrainBonus + fortBonus
	}

	var result BattleResult

	if attackStrength > defenseStrength {
		result.TerritoryCaptured = true
		if naval {
			ratio := defenseStrength / attackStrength
			result.AttackerLosses = int(float64(attackForce) * (1 - ratio*ratio/3))
			result.DefenderLosses = int(float64(defendForce) * (1 - 1.0/3))
			defender.Navy -= result.DefenderLosses
			if defender.Navy < 0 {
				defender.Navy = 0
			}
		} else {
			victoryRatio := attackStrength / defenseStrength
			result.AttackerLosses = int(float64(attackForce) * (1 - victoryRatio/(victoryRatio+1)))
			result.DefenderLosses = defendForce

			if fortLevel > 0 && defenseStrength > attackStrength/4 {
				result.FortDamage = int(float64(fortLevel)/2*mr.rng.Float64() + 0.5)
			}
			if defender.Population > 0 {
				food := mr.terrain.Lookup(terrainID).Food
				result.PopulationExchange = int(float64(defender.Population) * food / float64(maxInt(defender.Population, 1)))
			}
		}
		result.Message = fmt.Sprintf("Attacker wins! Losses - Attacker: %d, Defender: %d",
			result.AttackerLosses, result.DefenderLosses)
	} else {
		if naval {
			ratio := attackStrength / defenseStrength
			result.AttackerLosses = int(float64(attackForce) * (1 - 1.0/3))
			result.DefenderLosses = int(float64(defendForce) * (1 - ratio*ratio/3))
		} else {
			result.AttackerLosses = attackForce
			result.DefenderLosses = int(float64(defendForce) * (1 - attackStrength/defenseStrength))
		}
		result.Message = fmt.Sprintf("Defender wins! Losses - Attacker: %d, Defender: %d",
			result.AttackerLosses, result.DefenderLosses)
	}

	return result
}

// MoveArmy moves units between cells. The destination must be land, and the
// moved units land in the arrived layer rather than the army layer so they
// cannot move again this turn. No state changes on rejection.
func (mr *MilitaryResolver) MoveArmy(m *WorldMap, amount, fromX, fromY, toX, toY int) error {
	if !m.InBounds(fromX, fromY) || !m.InBounds(toX, toY) {
		return ErrOutOfBounds
	}
	if m.At(LayerArmy, fromX, fromY) < amount {
		return ErrInsufficientUnits
	}
	if m.At(LayerTerrain, toX, toY) == TerrainSea {
		return ErrSeaDestination
	}
	m.Add(LayerArmy, fromX, fromY, -amount)
	m.Add(LayerArrived, toX, toY, amount)
	return nil
}

// EmbarkArmy loads units onto naval capacity at an adjacent sea cell. The
// owner's embarked counters are bounded by its navy; on success the
// moved-embarked counter grows and the units transfer between army cells.
func (mr *MilitaryResolver) EmbarkArmy(m *WorldMap, owner *Empire, amount, fromX, fromY, toX, toY int) error {
	if !m.InBounds(fromX, fromY) || !m.InBounds(toX, toY) {
		return ErrOutOfBounds
	}
	if m.At(LayerArmy, fromX, fromY) < amount {
		return ErrInsufficientUnits
	}
	if m.At(LayerTerrain, toX, toY) != TerrainSea {
		return ErrNotSea
	}
	if owner.Embarked+owner.MovedEmbarked+amount > owner.Navy {
		return ErrNavyCapacity
	}
	owner.MovedEmbarked += amount
	m.Add(LayerArmy, fromX, fromY, -amount)
	m.Add(LayerArmy, toX, toY, amount)
	return nil
}
