package game

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"
)

// State is the orchestrator's position in the turn state machine.
type State int

const (
	// StateAwaitingCommand waits for the active human empire's next command.
	StateAwaitingCommand State = iota
	// StateProcessingTurnEnd runs the end-of-turn update for one empire.
	StateProcessingTurnEnd
	// StateAutoPlayingAI runs AI empires back to back until a human empire
	// is reached or none remain.
	StateAutoPlayingAI
	// StateGameOver is terminal: no eligible empire remains or the caller
	// quit.
	StateGameOver
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateAwaitingCommand:
		return "AwaitingCommand"
	case StateProcessingTurnEnd:
		return "ProcessingTurnEnd"
	case StateAutoPlayingAI:
		return "AutoPlayingAI"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Saver persists a snapshot of the running game, invoked by the save_game
// command. The returned string becomes the command result message.
type Saver interface {
	SaveSnapshot(o *Orchestrator) (string, error)
}

// Config assembles an orchestrator. Registry and Map are required; the rest
// default sensibly. Rand defaults to the unseeded process-wide source, so
// deterministic runs must inject their own.
type Config struct {
	Registry *Registry
	Map      *WorldMap
	Terrain  *TerrainCatalog
	Profiles map[string]*AIProfile
	Turn     int
	Rand     Rand
	Saver    Saver
	Logger   *zap.Logger
}

// Orchestrator is the top-level state machine sequencing empires through turn
// phases. It exclusively owns the registry and map for the duration of any
// single call; callers serialize access.
type Orchestrator struct {
	Registry *Registry
	Map      *WorldMap
	Terrain  *TerrainCatalog
	Economy  *EconomyEngine
	Military *MilitaryResolver
	Policy   *AIPolicyEngine

	Turn int

	state State
	saver Saver
	log   *zap.Logger
}

// systemRand adapts the process-wide math/rand source.
type systemRand struct{}

func (systemRand) Float64() float64 { return rand.Float64() }
func (systemRand) Intn(n int) int   { return rand.Intn(n) }

// NewOrchestrator wires the engine components together.
func NewOrchestrator(cfg Config) *Orchestrator {
	terrain := cfg.Terrain
	if terrain == nil {
		terrain = DefaultTerrainCatalog()
	}
	rng := cfg.Rand
	if rng == nil {
		rng = systemRand{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	economy := NewEconomyEngine(terrain)
	o := &Orchestrator{
		Registry: cfg.Registry,
		Map:      cfg.Map,
		Terrain:  terrain,
		Economy:  economy,
		Military: NewMilitaryResolver(terrain, rng),
		Policy:   NewAIPolicyEngine(cfg.Registry, economy, cfg.Profiles, rng),
		Turn:     cfg.Turn,
		state:    StateAwaitingCommand,
		saver:    cfg.Saver,
		log:      logger,
	}
	return o
}

// State returns the current machine state.
func (o *Orchestrator) State() State {
	return o.state
}

// Start hands control to the initial empire. If the scenario's current empire
// is AI controlled the auto-play chain runs immediately. Returns the active
// empire, or nil if the game ended before a human got control.
func (o *Orchestrator) Start() *Empire {
	o.recountLand()
	current := o.Registry.CurrentEmpire()
	if current == nil || current.LandCount == 0 {
		current = o.Registry.NextEligible()
		if current == nil {
			o.state = StateGameOver
			return nil
		}
	}
	if current.IsAI() {
		current = o.autoPlay(current)
	}
	if current == nil {
		return nil
	}
	o.state = StateAwaitingCommand
	return current
}

// EndTurn finishes the active empire's turn: runs its end-of-turn update,
// advances to the next eligible empire and auto-plays any AI empires until a
// human empire holds control or the game ends. Returns the new active empire,
// nil on game over.
func (o *Orchestrator) EndTurn() *Empire {
	if o.state == StateGameOver {
		return nil
	}
	o.state = StateProcessingTurnEnd
	ending := o.Registry.CurrentEmpire()
	if ending != nil {
		o.updateEmpire(ending)
	}
	o.recountLand()

	next := o.Registry.NextEligible()
	if next == nil {
		o.gameOver()
		return nil
	}
	o.beginTurn(next)

	if next.IsAI() {
		next = o.autoPlay(next)
		if next == nil {
			return nil
		}
	}

	if next.ID == 1 {
		o.Turn++
	}
	o.state = StateAwaitingCommand
	o.log.Info("turn passes", zap.Int("turn", o.Turn), zap.String("empire", next.Name))
	return next
}

// autoPlay runs AI empires back to back. The loop is bounded by "next
// eligible empire is human or none remain"; chained turns never recurse.
func (o *Orchestrator) autoPlay(current *Empire) *Empire {
	o.state = StateAutoPlayingAI
	for current != nil && current.IsAI() {
		o.log.Debug("ai turn", zap.String("empire", current.Name), zap.String("profile", current.Control))
		o.Policy.TakeTurn(current, o.Map)
		o.updateEmpire(current)
		o.recountLand()

		current = o.Registry.NextEligible()
		if current == nil {
			o.gameOver()
			return nil
		}
		o.beginTurn(current)
	}
	return current
}

// updateEmpire applies the end-of-turn update for one empire: morale, passive
// science, income, population growth and its distribution.
func (o *Orchestrator) updateEmpire(e *Empire) {
	o.Economy.CalculateMorale(e)
	e.PassiveScienceTick()

	income := o.Economy.CalculateIncome(e)
	e.Treasury += income

	avgFood := o.Economy.AverageFood(e, o.Map)
	growth := o.Economy.CalculatePopulationGrowth(e, avgFood)
	tiles := o.Economy.CountGrowthTiles(e, o.Map)
	o.Economy.DistributeGrowth(e, growth, tiles)

	o.log.Debug("empire updated",
		zap.String("empire", e.Name),
		zap.Int("income", income),
		zap.Int("growth", growth),
		zap.Float64("morale", e.Morale))
}

// beginTurn prepares the new active empire: its relation-change tracker is
// reset and the arrived layer cleared globally.
func (o *Orchestrator) beginTurn(e *Empire) {
	e.ResetTurnDiplomacy()
	o.Map.ResetArrived()
}

// recountLand rebuilds every empire's derived land count from the owner
// layer.
func (o *Orchestrator) recountLand() {
	for _, e := range o.Registry.All() {
		e.LandCount = o.Map.CountOwner(e.ID)
	}
}

func (o *Orchestrator) gameOver() {
	o.state = StateGameOver
	o.log.Info("game over", zap.Int("turn", o.Turn))
}

// TerritoryInfo is a read-only report about one cell for the presentation
// layer.
type TerritoryInfo struct {
	Owner         string
	OriginalOwner string
	Terrain       string
	Food          float64
	Production    float64
	Defense       float64
	Forts         int
	Churches      int
	Universities  int
	Mills         int
	Army          int
}

// DescribeTerritory reports the contents of a cell.
func (o *Orchestrator) DescribeTerritory(x, y int) (TerritoryInfo, error) {
	if !o.Map.InBounds(x, y) {
		return TerritoryInfo{}, ErrOutOfBounds
	}
	var info TerritoryInfo
	if owner := o.Registry.Get(o.Map.At(LayerOwner, x, y)); owner != nil {
		info.Owner = owner.Name
	}
	if original := o.Registry.Get(o.Map.At(LayerOriginalOwner, x, y)); original != nil {
		info.OriginalOwner = original.Name
	}
	terrain := o.Terrain.Lookup(o.Map.At(LayerTerrain, x, y))
	info.Terrain = terrain.Name
	info.Food = terrain.Food
	info.Production = terrain.Production
	info.Defense = terrain.Defense
	info.Forts = o.Map.At(LayerFort, x, y)
	info.Churches = o.Map.At(LayerChurch, x, y)
	info.Universities = o.Map.At(LayerUniversity, x, y)
	info.Mills = o.Map.At(LayerMill, x, y)
	info.Army = o.Map.At(LayerArmy, x, y)
	return info, nil
}

// Summary returns a one-line description of the running game, used by the
// CLI driver.
func (o *Orchestrator) Summary() string {
	active := 0
	for _, e := range o.Registry.All() {
		if e.LandCount > 0 {
			active++
		}
	}
	return fmt.Sprintf("turn %d, %d empires holding land, state %s", o.Turn, active, o.state)
}
