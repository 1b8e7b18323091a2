package game

// AIProfile is a named bundle of weights and thresholds governing one AI
// behavior style. Profiles are loaded once and shared read-only across all
// empires referencing them.
type AIProfile struct {
	Name string

	FoodWeight       float64
	ProductionWeight float64
	HateWeight       float64
	DiplomacyWeight  float64
	Friendliness     float64
	Chance           float64 // symmetric jitter applied to diplomatic values
	TrustWeight      float64
	RemoteWeight     float64
	MinTrust         float64

	TradeThreshold  float64
	FriendThreshold float64
	AllyThreshold   float64

	MinMorale float64
	MinTax    float64 // fraction, 0..1

	// FearDiplomacy is carried through load and save but consumed by
	// nothing; its intended effect was never established.
	FearDiplomacy [5]float64

	WarMilitarySpending   float64
	PeaceMilitarySpending float64

	BuildingChance     float64
	ChurchPriority     float64
	MillPriority       float64
	NavyPriority       float64
	UniversityPriority float64

	SciencePriorities [NumBranches]float64
}

// DefaultAIProfile returns the built-in fallback profile.
func DefaultAIProfile() *AIProfile {
	return &AIProfile{
		Name:                  "default",
		FoodWeight:            1.0,
		ProductionWeight:      1.0,
		HateWeight:            1.0,
		DiplomacyWeight:       1.0,
		Friendliness:          0.5,
		Chance:                0.2,
		TrustWeight:           1.0,
		RemoteWeight:          0.5,
		MinTrust:              0.3,
		TradeThreshold:        0.6,
		FriendThreshold:       0.4,
		AllyThreshold:         0.2,
		MinMorale:             0.5,
		MinTax:                0.1,
		WarMilitarySpending:   0.4,
		PeaceMilitarySpending: 0.2,
		BuildingChance:        0.7,
		ChurchPriority:        0.2,
		MillPriority:          0.3,
		NavyPriority:          0.2,
		UniversityPriority:    0.3,
		SciencePriorities:     [NumBranches]float64{0.2, 0.2, 0.2, 0.2, 0.2, 0.2},
	}
}

// AIPolicyEngine makes all decisions for AI-controlled empires. It composes
// the economy engine and the military resolver and shares their injected
// randomness source.
type AIPolicyEngine struct {
	registry *Registry
	economy  *EconomyEngine
	profiles map[string]*AIProfile
	fallback *AIProfile
	rng      Rand
}

// NewAIPolicyEngine creates a policy engine. The profiles map may be nil;
// any empire whose control names no loaded profile uses the built-in default.
func NewAIPolicyEngine(registry *Registry, economy *EconomyEngine, profiles map[string]*AIProfile, rng Rand) *AIPolicyEngine {
	return &AIPolicyEngine{
		registry: registry,
		economy:  economy,
		profiles: profiles,
		fallback: DefaultAIProfile(),
		rng:      rng,
	}
}

// ProfileFor returns the profile for a control name, falling back to the
// built-in default.
func (ai *AIPolicyEngine) ProfileFor(control string) *AIProfile {
	if p, ok := ai.profiles[control]; ok {
		return p
	}
	return ai.fallback
}

// TakeTurn runs the full decision sequence for one AI empire: tax rate,
// diplomacy, military budgeting, construction.
func (ai *AIPolicyEngine) TakeTurn(e *Empire, m *WorldMap) {
	p := ai.ProfileFor(e.Control)

	ai.adjustTax(e, p)
	ai.decideDiplomacy(e, p, m)
	ai.decideMilitary(e, p, m)
	if e.Treasury > 0 && ai.rng.Float64() < p.BuildingChance {
		ai.construct(e, p, m)
	}
}

// adjustTax picks the highest sustainable tax rate. The profile's morale
// floor is relaxed in proportion to current unemployment, and the result is
// floored at the profile's minimum tax.
func (ai *AIPolicyEngine) adjustTax(e *Empire, p *AIProfile) {
	minMorale := p.MinMorale * (1 - float64(e.Unemployed)/float64(maxInt(e.Population, 1)))
	rate := ai.economy.FindMaxSustainableTax(e, minMorale)
	if floor := p.MinTax * 100; rate < floor {
		rate = floor
	}
	e.TaxRate = rate
	ai.economy.CalculateMorale(e)
}

// decideDiplomacy sets a transient improve/worsen/neutral action toward every
// other landed empire based on relative strength, trust and military threat.
func (ai *AIPolicyEngine) decideDiplomacy(e *Empire, p *AIProfile, m *WorldMap) {
	for _, other := range ai.registry.All() {
		if other.ID == e.ID || other.LandCount == 0 {
			continue
		}
		value := ai.diplomaticValue(e, other, p, m)
		switch {
		case value > p.AllyThreshold:
			e.Actions[other.ID] = ActionImprove
		case value < -p.AllyThreshold:
			e.Actions[other.ID] = ActionWorsen
		default:
			e.Actions[other.ID] = ActionNeutral
		}
	}
}

// diplomaticValue scores the relationship with another empire. Positive
// values favor improving relations.
func (ai *AIPolicyEngine) diplomaticValue(e, other *Empire, p *AIProfile, m *WorldMap) float64 {
	landRatio := float64(other.LandCount) / float64(maxInt(e.LandCount, 1))
	value := 1 - landRatio
	value *= 1 + (other.Trust-1)*p.TrustWeight

	ownForce := m.SumOwned(LayerArmy, e.ID) + e.Navy
	otherForce := m.SumOwned(LayerArmy, other.ID) + other.Navy
	threat := float64(otherForce) / float64(maxInt(ownForce, 1)) *
		other.Science.Military / e.Science.Military
	value -= threat * p.HateWeight

	// Symmetric jitter of +/- the configured chance.
	value *= 1 - p.Chance + ai.rng.Float64()*2*p.Chance
	return value
}

// decideMilitary spends a war- or peace-rate share of the treasury: armies
// spread as evenly as possible over threatened cells first, then a fraction
// of the remainder on navy if the empire has a coast.
func (ai *AIPolicyEngine) decideMilitary(e *Empire, p *AIProfile, m *WorldMap) {
	ratio := p.PeaceMilitarySpending
	if e.AtWar() {
		ratio = p.WarMilitarySpending
	}
	budget := int(float64(e.Treasury) * ratio)
	if budget <= 0 {
		return
	}

	remaining := budget
	threatened := m.ThreatenedCells(e.ID)
	if len(threatened) > 0 {
		perCell := budget / (len(threatened) * ArmyCost)
		if perCell < 1 {
			perCell = 1
		}
		for _, c := range threatened {
			if e.Treasury < ArmyCost || remaining < ArmyCost {
				break
			}
			units := perCell
			if cost := units * ArmyCost; cost > remaining {
				units = remaining / ArmyCost
			}
			if units < 1 {
				break
			}
			m.Add(LayerArmy, c.X, c.Y, units)
			e.Treasury -= units * ArmyCost
			remaining -= units * ArmyCost
		}
	}

	if remaining > 0 && m.HasCoast(e.ID) {
		ships := int(float64(remaining)*p.NavyPriority) / NavyCost
		if ships > 0 {
			e.Navy += ships
			e.Treasury -= ships * NavyCost
		}
	}
}

// construct picks one random owned cell and builds one affordable structure
// there, chosen by a cumulative-weight draw over the profile's priorities.
func (ai *AIPolicyEngine) construct(e *Empire, p *AIProfile, m *WorldMap) {
	owned := m.OwnedCells(e.ID)
	if len(owned) == 0 {
		return
	}
	cell := owned[ai.rng.Intn(len(owned))]

	type choice struct {
		priority float64
		kind     BuildKind
		cost     int
	}
	choices := []choice{
		{p.ChurchPriority, BuildChurch, ChurchCost},
		{p.MillPriority, BuildMill, MillCost},
		{p.UniversityPriority, BuildUniversity, UniversityCost},
	}

	total := 0.0
	affordable := choices[:0]
	for _, c := range choices {
		if e.Treasury >= c.cost && c.priority > 0 {
			affordable = append(affordable, c)
			total += c.priority
		}
	}
	if len(affordable) == 0 || total <= 0 {
		return
	}

	draw := ai.rng.Float64() * total
	acc := 0.0
	for _, c := range affordable {
		acc += c.priority
		if draw <= acc {
			m.Add(c.kind.Layer(), cell.X, cell.Y, 1)
			addBuildingTotal(e, c.kind, 1)
			e.Treasury -= c.cost
			return
		}
	}
}
