// Package game contains the rules engine for Nine Empires: the world grid,
// empire economy and science, battle resolution, the AI policy engine and the
// turn orchestrator. This package is presentation-free; a UI drives it through
// parsed commands and reads back result values.
package game

// TerrainSea is the reserved terrain id for sea. It is always defined and is
// the fallback for any id outside the loaded catalog.
const TerrainSea = 0

// Terrain is a static terrain definition. Immutable after load.
type Terrain struct {
	Name       string
	Food       float64 // food potential, >= 0
	Production float64 // production potential, >= 0
	Defense    float64 // defense bonus multiplier, >= 0
}

// TerrainCatalog is an ordered lookup of terrain definitions. Index 0 is sea.
type TerrainCatalog struct {
	types []Terrain
}

// NewTerrainCatalog builds a catalog from land terrain definitions. The sea
// entry is always prepended; callers pass land types only. An empty or nil
// list yields the built-in default set.
func NewTerrainCatalog(land []Terrain) *TerrainCatalog {
	if len(land) == 0 {
		return DefaultTerrainCatalog()
	}
	types := make([]Terrain, 0, len(land)+1)
	types = append(types, seaTerrain)
	types = append(types, land...)
	return &TerrainCatalog{types: types}
}

var seaTerrain = Terrain{Name: "sea"}

// DefaultTerrainCatalog returns the built-in set of nine land terrain types
// plus the implicit sea entry.
func DefaultTerrainCatalog() *TerrainCatalog {
	return &TerrainCatalog{types: []Terrain{
		seaTerrain,
		{Name: "plains", Food: 1.0, Production: 1.0, Defense: 0.1},
		{Name: "forest", Food: 0.8, Production: 1.2, Defense: 0.2},
		{Name: "hills", Food: 0.6, Production: 1.5, Defense: 0.3},
		{Name: "mountains", Food: 0.4, Production: 2.0, Defense: 0.4},
		{Name: "desert", Food: 0.2, Production: 0.5, Defense: 0.1},
		{Name: "swamp", Food: 0.5, Production: 0.7, Defense: 0.2},
		{Name: "tundra", Food: 0.3, Production: 0.8, Defense: 0.1},
		{Name: "grassland", Food: 1.2, Production: 0.9, Defense: 0.1},
		{Name: "jungle", Food: 0.7, Production: 1.1, Defense: 0.3},
	}}
}

// Lookup returns the terrain definition for an id. It never fails:
// out-of-range ids return the sea definition.
func (c *TerrainCatalog) Lookup(id int) Terrain {
	if id < 0 || id >= len(c.types) {
		return c.types[TerrainSea]
	}
	return c.types[id]
}

// Len returns the number of defined terrain types, sea included.
func (c *TerrainCatalog) Len() int {
	return len(c.types)
}
