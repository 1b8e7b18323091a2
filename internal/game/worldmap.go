package game

// MapSize is the fixed side length of the world grid.
const MapSize = 15

// Layer identifies one of the nine parallel map layers.
type Layer int

const (
	LayerOwner Layer = iota
	LayerOriginalOwner
	LayerTerrain
	LayerFort
	LayerChurch
	LayerUniversity
	LayerMill
	LayerArmy
	LayerArrived
	numLayers
)

// NumLayers is the number of map layers, in persisted order.
const NumLayers = int(numLayers)

// Cell is one grid coordinate.
type Cell struct {
	X, Y int
}

// cardinal lists the four orthogonal neighbor offsets.
var cardinal = [4]Cell{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

// WorldMap is the fixed 15x15 multi-layer grid. It is allocated once at load
// and mutated in place for the simulation's lifetime. All layer values are
// non-negative integers; the owner layer only ever holds 0 (unclaimed) or a
// valid empire id, enforced at the single write path.
type WorldMap struct {
	layers [numLayers][MapSize][MapSize]int
}

// NewWorldMap returns an empty map: all sea, unowned, no units.
func NewWorldMap() *WorldMap {
	return &WorldMap{}
}

// InBounds reports whether a coordinate lies on the grid.
func (m *WorldMap) InBounds(x, y int) bool {
	return x >= 0 && x < MapSize && y >= 0 && y < MapSize
}

// At returns a layer value. Callers validate bounds via InBounds first;
// indexing out of range is a programming error and panics.
func (m *WorldMap) At(l Layer, x, y int) int {
	return m.layers[l][y][x]
}

// Set writes a layer value. Negative values and invalid owner ids panic:
// those states are unreachable through the command surface.
func (m *WorldMap) Set(l Layer, x, y, v int) {
	if v < 0 {
		panic("worldmap: negative layer value")
	}
	if l == LayerOwner && v > MaxEmpires {
		panic("worldmap: invalid owner id")
	}
	m.layers[l][y][x] = v
}

// Add adjusts a layer value by delta, going through Set so the invariants
// hold.
func (m *WorldMap) Add(l Layer, x, y, delta int) {
	m.Set(l, x, y, m.layers[l][y][x]+delta)
}

// Neighbors returns the in-bounds orthogonal neighbors of a cell.
func (m *WorldMap) Neighbors(x, y int) []Cell {
	out := make([]Cell, 0, 4)
	for _, d := range cardinal {
		nx, ny := x+d.X, y+d.Y
		if m.InBounds(nx, ny) {
			out = append(out, Cell{nx, ny})
		}
	}
	return out
}

// CountOwner returns how many cells an empire owns.
func (m *WorldMap) CountOwner(id int) int {
	count := 0
	for y := 0; y < MapSize; y++ {
		for x := 0; x < MapSize; x++ {
			if m.layers[LayerOwner][y][x] == id {
				count++
			}
		}
	}
	return count
}

// OwnedCells returns every cell owned by an empire, in row-major order.
func (m *WorldMap) OwnedCells(id int) []Cell {
	var out []Cell
	for y := 0; y < MapSize; y++ {
		for x := 0; x < MapSize; x++ {
			if m.layers[LayerOwner][y][x] == id {
				out = append(out, Cell{x, y})
			}
		}
	}
	return out
}

// SumOwned totals a layer over the cells an empire owns.
func (m *WorldMap) SumOwned(l Layer, owner int) int {
	sum := 0
	for y := 0; y < MapSize; y++ {
		for x := 0; x < MapSize; x++ {
			if m.layers[LayerOwner][y][x] == owner {
				sum += m.layers[l][y][x]
			}
		}
	}
	return sum
}

// ResetArrived folds the arrived layer back into the army layer and clears
// it, making last turn's moved units eligible to move again. Runs at the
// start of every empire's turn.
func (m *WorldMap) ResetArrived() {
	for y := 0; y < MapSize; y++ {
		for x := 0; x < MapSize; x++ {
			m.layers[LayerArmy][y][x] += m.layers[LayerArrived][y][x]
			m.layers[LayerArrived][y][x] = 0
		}
	}
}

// HasCoast reports whether any cell owned by the empire borders sea.
func (m *WorldMap) HasCoast(id int) bool {
	for y := 0; y < MapSize; y++ {
		for x := 0; x < MapSize; x++ {
			if m.layers[LayerOwner][y][x] != id {
				continue
			}
			for _, n := range m.Neighbors(x, y) {
				if m.layers[LayerTerrain][n.Y][n.X] == TerrainSea {
					return true
				}
			}
		}
	}
	return false
}

// ThreatenedCells returns the cells an empire owns that border a non-empty
// foreign-owned cell.
func (m *WorldMap) ThreatenedCells(id int) []Cell {
	var out []Cell
	for y := 0; y < MapSize; y++ {
		for x := 0; x < MapSize; x++ {
			if m.layers[LayerOwner][y][x] != id {
				continue
			}
			for _, n := range m.Neighbors(x, y) {
				owner := m.layers[LayerOwner][n.Y][n.X]
				if owner != id && owner != 0 {
					out = append(out, Cell{x, y})
					break
				}
			}
		}
	}
	return out
}
