package game

// ScienceBranch identifies one of the six technology branches. Branch ids are
// 1-based to match the command vocabulary and the persisted snapshot order.
type ScienceBranch int

const (
	BranchAgriculture ScienceBranch = iota + 1
	BranchIndustry
	BranchTrade
	BranchSailing
	BranchMilitary
	BranchMedicine
)

// NumBranches is the number of science branches.
const NumBranches = 6

// String returns the branch name.
func (b ScienceBranch) String() string {
	switch b {
	case BranchAgriculture:
		return "Agriculture"
	case BranchIndustry:
		return "Industry"
	case BranchTrade:
		return "Trade"
	case BranchSailing:
		return "Sailing"
	case BranchMilitary:
		return "Military"
	case BranchMedicine:
		return "Medicine"
	default:
		return "Unknown"
	}
}

// ScienceTrack holds the six branch levels of an empire plus the set of
// empires it currently has spies in. Levels start at 1.0 and never decrease.
type ScienceTrack struct {
	Agriculture float64
	Industry    float64
	Trade       float64
	Sailing     float64
	Military    float64
	Medicine    float64
	Spied       map[int]bool // empire id -> spy active
}

// NewScienceTrack returns a track with every branch at level 1.0.
func NewScienceTrack() ScienceTrack {
	return ScienceTrack{
		Agriculture: 1.0,
		Industry:    1.0,
		Trade:       1.0,
		Sailing:     1.0,
		Military:    1.0,
		Medicine:    1.0,
		Spied:       make(map[int]bool),
	}
}

// Level returns the level of a branch. Unknown branches report 1.0.
func (s *ScienceTrack) Level(b ScienceBranch) float64 {
	switch b {
	case BranchAgriculture:
		return s.Agriculture
	case BranchIndustry:
		return s.Industry
	case BranchTrade:
		return s.Trade
	case BranchSailing:
		return s.Sailing
	case BranchMilitary:
		return s.Military
	case BranchMedicine:
		return s.Medicine
	default:
		return 1.0
	}
}

// SetLevel sets the level of a branch. Unknown branches are ignored.
func (s *ScienceTrack) SetLevel(b ScienceBranch, level float64) {
	switch b {
	case BranchAgriculture:
		s.Agriculture = level
	case BranchIndustry:
		s.Industry = level
	case BranchTrade:
		s.Trade = level
	case BranchSailing:
		s.Sailing = level
	case BranchMilitary:
		s.Military = level
	case BranchMedicine:
		s.Medicine = level
	}
}

// progressCap is the maximum level gain a branch can make in a single step,
// funded or passive.
const progressCap = 0.3

// scienceProgress computes the level gain for a branch at the given level
// with the given numerator, scaled by the university factor. The cubic decay
// makes high levels progressively more expensive.
func scienceProgress(numerator, level, uniFactor float64) float64 {
	progress := numerator / 10000 / (level * level * level) * uniFactor
	if progress < 0 {
		return 0
	}
	if progress > progressCap {
		return progressCap
	}
	return progress
}

// FundScience spends treasury on one branch and returns the level gain.
// The spend is rejected (zero progress, no mutation) when amount <= 0 or the
// treasury cannot cover it. The amount is clamped to the per-branch cap of
// level cubed times 1000, and the resulting progress never exceeds 0.3.
func (e *Empire) FundScience(branch ScienceBranch, amount int) float64 {
	if amount <= 0 || amount > e.Treasury {
		return 0
	}
	level := e.Science.Level(branch)
	limit := int(level * level * level * 1000)
	spent := amount
	if spent > limit {
		spent = limit
	}
	progress := scienceProgress(float64(spent), level, e.universityFactor())
	if progress <= 0 {
		return 0
	}
	e.Science.SetLevel(branch, level+progress)
	e.Treasury -= spent
	return progress
}

// PassiveScienceTick advances every branch by the automatic per-turn
// increment. It runs only once population reaches 100 and is driven by a
// fixed numerator rather than spend; it is in addition to funded spending.
func (e *Empire) PassiveScienceTick() {
	if e.Population < 100 {
		return
	}
	uni := e.universityFactor()
	for b := BranchAgriculture; b <= BranchMedicine; b++ {
		level := e.Science.Level(b)
		if progress := scienceProgress(1000, level, uni); progress > 0 {
			e.Science.SetLevel(b, level+progress)
		}
	}
}

// universityFactor scales science progress with university density.
func (e *Empire) universityFactor() float64 {
	return 1 + float64(e.Universities)/float64(maxInt(e.Population, 1))*50
}

// CanViewScience reports whether this empire may inspect another empire's
// science levels: always for itself, when a spy is active, or when relations
// are friendly or better.
func (e *Empire) CanViewScience(otherID int) bool {
	if otherID == e.ID {
		return true
	}
	if e.Science.Spied[otherID] {
		return true
	}
	return e.Relation(otherID) >= RelationFriendly
}

// spyBaseCost is the treasury cost of placing a spy.
const spyBaseCost = 1000

// SpyCost returns the cost of placing a spy in another empire. Friendly or
// allied relations reduce it to 20% of base.
func (e *Empire) SpyCost(otherID int) int {
	if e.Relation(otherID) >= RelationFriendly {
		return spyBaseCost / 5
	}
	return spyBaseCost
}
