package game

// BuildKind identifies what a build or sell command targets.
type BuildKind int

const (
	BuildFort BuildKind = iota
	BuildChurch
	BuildUniversity
	BuildMill
	BuildArmy
	BuildNavy
)

// Construction costs in gold.
const (
	FortCost       = 700
	ChurchCost     = 100
	UniversityCost = 500
	MillCost       = 200
	NavyCost       = 200 // per ship
	ArmyCost       = 150 // per unit
)

// Sell refunds as fractions of cost.
const (
	FortSell       = 0.10
	ChurchSell     = 0.10
	UniversitySell = 0.50
	MillSell       = 0.90
	NavySell       = 0.90
	ArmySell       = 0.50
)

// String returns the kind name as used in the command vocabulary.
func (k BuildKind) String() string {
	switch k {
	case BuildFort:
		return "fort"
	case BuildChurch:
		return "church"
	case BuildUniversity:
		return "university"
	case BuildMill:
		return "mill"
	case BuildArmy:
		return "army"
	case BuildNavy:
		return "navy"
	default:
		return "unknown"
	}
}

// Cost returns the per-unit construction cost.
func (k BuildKind) Cost() int {
	switch k {
	case BuildFort:
		return FortCost
	case BuildChurch:
		return ChurchCost
	case BuildUniversity:
		return UniversityCost
	case BuildMill:
		return MillCost
	case BuildArmy:
		return ArmyCost
	case BuildNavy:
		return NavyCost
	default:
		return 0
	}
}

// SellValue returns the per-unit refund when selling.
func (k BuildKind) SellValue() int {
	switch k {
	case BuildFort:
		return int(FortCost * FortSell)
	case BuildChurch:
		return int(ChurchCost * ChurchSell)
	case BuildUniversity:
		return int(UniversityCost * UniversitySell)
	case BuildMill:
		return int(MillCost * MillSell)
	case BuildArmy:
		return int(ArmyCost * ArmySell)
	case BuildNavy:
		return int(NavyCost * NavySell)
	default:
		return 0
	}
}

// Layer returns the map layer holding this kind's per-cell count. Navy has no
// layer; it lives on the empire.
func (k BuildKind) Layer() Layer {
	switch k {
	case BuildFort:
		return LayerFort
	case BuildChurch:
		return LayerChurch
	case BuildUniversity:
		return LayerUniversity
	case BuildMill:
		return LayerMill
	case BuildArmy:
		return LayerArmy
	default:
		return LayerArmy
	}
}

// buildKindByName maps command suffixes to kinds.
var buildKindByName = map[string]BuildKind{
	"fort":       BuildFort,
	"church":     BuildChurch,
	"university": BuildUniversity,
	"mill":       BuildMill,
	"army":       BuildArmy,
	"navy":       BuildNavy,
}

// forbiddenTerrain lists, per structure, the terrain names it cannot stand
// on. Sea is rejected for every land structure before this table applies.
var forbiddenTerrain = map[BuildKind][]string{
	BuildFort:       {"swamp"},
	BuildChurch:     {"mountains"},
	BuildUniversity: {"mountains", "swamp", "desert"},
	BuildMill:       {"desert", "tundra"},
}

// terrainAllows checks the structure's terrain restrictions.
func terrainAllows(k BuildKind, terrainName string) bool {
	for _, banned := range forbiddenTerrain[k] {
		if banned == terrainName {
			return false
		}
	}
	return true
}

// addBuildingTotal keeps the empire's building totals in step with the
// per-cell counts on the map.
func addBuildingTotal(e *Empire, k BuildKind, delta int) {
	switch k {
	case BuildFort:
		e.Forts += delta
	case BuildChurch:
		e.Churches += delta
	case BuildUniversity:
		e.Universities += delta
	case BuildMill:
		e.Mills += delta
	}
}
