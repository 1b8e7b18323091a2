package game

import "sort"

// ControlHuman marks an empire driven by the presentation layer. Any other
// control value is the name of the AI profile driving it.
const ControlHuman = "human"

// Relation levels between two empires, 1 (war) through 5 (allied).
const (
	RelationWar      = 1
	RelationHostile  = 2
	RelationNeutral  = 3
	RelationFriendly = 4
	RelationAllied   = 5
)

// Diplomatic actions are transient per-turn AI intents, distinct from
// relation levels.
const (
	ActionWorsen  = -1
	ActionNeutral = 0
	ActionImprove = 1
)

// Empire is one player of the simulation, human or AI controlled. Empires are
// created at scenario load and never deleted; one whose land count reaches
// zero is skipped in the turn order but keeps its state.
type Empire struct {
	ID      int
	Name    string
	Control string

	Treasury   int // signed: negative is debt
	Population int

	// Population partition. The six classes always sum to Population.
	Peasants   int
	Fishers    int
	Workers    int
	Merchants  int
	Soldiers   int
	Unemployed int

	LandCount int // derived, recomputed from the map each turn

	Navy          int
	Embarked      int // units currently at sea
	MovedEmbarked int // units embarked this turn; Embarked+MovedEmbarked <= Navy

	TaxRate float64 // percent, 0..100
	Morale  float64 // 0..1
	Trust   float64 // diplomacy multiplier, >= 0

	// Building totals, mirroring the per-cell counts on the map.
	Forts        int
	Churches     int
	Universities int
	Mills        int

	Science ScienceTrack

	Relations map[int]int // other empire id -> relation level 1..5
	Actions   map[int]int // other empire id -> per-turn AI action -1/0/1

	relationsChanged map[int]bool // caps relation changes to one per target per turn
}

// NewEmpire creates an empire with neutral defaults and level-1.0 science.
func NewEmpire(id int, name, control string) *Empire {
	return &Empire{
		ID:               id,
		Name:             name,
		Control:          control,
		Morale:           1.0,
		Trust:            1.0,
		Science:          NewScienceTrack(),
		Relations:        make(map[int]int),
		Actions:          make(map[int]int),
		relationsChanged: make(map[int]bool),
	}
}

// IsAI reports whether the empire is AI controlled.
func (e *Empire) IsAI() bool {
	return e.Control != ControlHuman
}

// Relation returns the relation level with another empire, neutral when none
// has been established.
func (e *Empire) Relation(otherID int) int {
	if level, ok := e.Relations[otherID]; ok {
		return level
	}
	return RelationNeutral
}

// ChangeRelation shifts the relation with another empire by delta, clamped to
// the 1..5 range. At most one change per target per turn is allowed; further
// attempts report false and leave the relation untouched.
func (e *Empire) ChangeRelation(otherID, delta int) bool {
	if e.relationsChanged[otherID] {
		return false
	}
	level := e.Relation(otherID) + delta
	if level < RelationWar {
		level = RelationWar
	}
	if level > RelationAllied {
		level = RelationAllied
	}
	e.Relations[otherID] = level
	e.relationsChanged[otherID] = true
	return true
}

// ResetTurnDiplomacy clears the per-turn relation-change tracker and the
// transient AI actions. Called when the empire becomes the active one.
func (e *Empire) ResetTurnDiplomacy() {
	e.relationsChanged = make(map[int]bool)
	e.Actions = make(map[int]int)
}

// AtWar reports whether the empire is at war with anyone.
func (e *Empire) AtWar() bool {
	for _, level := range e.Relations {
		if level == RelationWar {
			return true
		}
	}
	return false
}

// DistributePopulation splits the total population into the default class
// ratios: 40% peasants, 20% fishers, 25% workers, 10% merchants, 5%
// unemployed. Rounding remainder is folded into unemployed so the partition
// sum stays exact.
func (e *Empire) DistributePopulation() {
	e.Peasants = e.Population * 40 / 100
	e.Fishers = e.Population * 20 / 100
	e.Workers = e.Population * 25 / 100
	e.Merchants = e.Population * 10 / 100
	e.Soldiers = 0
	e.Unemployed = e.Population - e.Peasants - e.Fishers - e.Workers - e.Merchants
}

// MaxEmpires is the highest supported empire id.
const MaxEmpires = 9

// Registry holds all empires by id and tracks whose turn it is.
type Registry struct {
	empires map[int]*Empire

	// Current is the id of the active empire.
	Current int
}

// NewRegistry creates an empty registry with empire 1 active.
func NewRegistry() *Registry {
	return &Registry{
		empires: make(map[int]*Empire),
		Current: 1,
	}
}

// Add creates and registers an empire. Ids outside 1..MaxEmpires or already
// taken are rejected.
func (r *Registry) Add(id int, name, control string) (*Empire, error) {
	if id < 1 || id > MaxEmpires {
		return nil, ErrInvalidEmpire
	}
	if _, exists := r.empires[id]; exists {
		return nil, ErrInvalidEmpire
	}
	e := NewEmpire(id, name, control)
	r.empires[id] = e
	return e, nil
}

// Get returns an empire by id, or nil if not registered.
func (r *Registry) Get(id int) *Empire {
	return r.empires[id]
}

// CurrentEmpire returns the active empire.
func (r *Registry) CurrentEmpire() *Empire {
	return r.empires[r.Current]
}

// All returns every registered empire ordered by id.
func (r *Registry) All() []*Empire {
	out := make([]*Empire, 0, len(r.empires))
	for _, e := range r.empires {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of registered empires.
func (r *Registry) Len() int {
	return len(r.empires)
}

// NextEligible advances Current cyclically to the next empire holding land
// and returns it. It returns nil when a full cycle finds no eligible empire,
// which ends the simulation. An empire whose own turn just ended is not a
// candidate for its own succession.
func (r *Registry) NextEligible() *Empire {
	start := r.Current
	for step := 0; step < MaxEmpires; step++ {
		next := r.Current + 1
		if next > MaxEmpires {
			next = 1
		}
		if next == start {
			return nil
		}
		r.Current = next
		if e := r.empires[next]; e != nil && e.LandCount > 0 {
			return e
		}
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
