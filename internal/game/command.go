package game

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Direction is a cardinal movement direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Offset returns the coordinate delta for the direction.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

var directionByName = map[string]Direction{
	"up":    DirUp,
	"down":  DirDown,
	"left":  DirLeft,
	"right": DirRight,
}

// Command is the closed set of actions the engine accepts. Raw command text
// is decoded exactly once, at the boundary, by ParseCommand; the engine's
// public surface takes only these variants.
type Command interface {
	isCommand()
}

// BuildCommand constructs a structure or recruits units at a cell.
type BuildCommand struct {
	Kind   BuildKind
	At     Cell
	Amount int // units for army/navy; ignored for structures
}

// SellCommand sells a structure or disbands units at a cell.
type SellCommand struct {
	Kind   BuildKind
	At     Cell
	Amount int
}

// MoveCommand moves army units one cell in a direction.
type MoveCommand struct {
	Dir    Direction
	From   Cell
	Amount int
}

// EmbarkCommand loads units from a cell onto adjacent sea, resolving a naval
// invasion when an enemy borders the cell.
type EmbarkCommand struct {
	From   Cell
	Amount int
}

// SpendScienceCommand funds one science branch from the treasury.
type SpendScienceCommand struct {
	Branch ScienceBranch
	Amount int
}

// SetHostileCommand turns relations with a target empire hostile, both ways.
type SetHostileCommand struct {
	Target int
}

// ImproveRelationsCommand raises relations with a target by one level.
type ImproveRelationsCommand struct {
	Target int
}

// SpyCommand places a spy in a target empire.
type SpyCommand struct {
	Target int
}

// AdjustTaxCommand steps the tax rate up or down by ten points.
type AdjustTaxCommand struct {
	Increase bool
}

// EndTurnCommand ends the active empire's turn.
type EndTurnCommand struct{}

// SaveGameCommand persists a snapshot through the configured Saver.
type SaveGameCommand struct{}

// QuitCommand ends the simulation.
type QuitCommand struct{}

func (BuildCommand) isCommand()            {}
func (SellCommand) isCommand()             {}
func (MoveCommand) isCommand()             {}
func (EmbarkCommand) isCommand()           {}
func (SpendScienceCommand) isCommand()     {}
func (SetHostileCommand) isCommand()       {}
func (ImproveRelationsCommand) isCommand() {}
func (SpyCommand) isCommand()              {}
func (AdjustTaxCommand) isCommand()        {}
func (EndTurnCommand) isCommand()          {}
func (SaveGameCommand) isCommand()         {}
func (QuitCommand) isCommand()             {}

// ParseCommand decodes one command string from the fixed vocabulary. The
// presentation layer supplies the selected cell and unit amount alongside the
// text; both are attached to the decoded variant where relevant.
func ParseCommand(text string, at Cell, amount int) (Command, error) {
	switch text {
	case "end_turn":
		return EndTurnCommand{}, nil
	case "save_game":
		return SaveGameCommand{}, nil
	case "quit":
		return QuitCommand{}, nil
	case "embark":
		return EmbarkCommand{From: at, Amount: amount}, nil
	case "increase_tax":
		return AdjustTaxCommand{Increase: true}, nil
	case "decrease_tax":
		return AdjustTaxCommand{Increase: false}, nil
	}

	switch {
	case strings.HasPrefix(text, "build_"):
		kind, ok := buildKindByName[strings.TrimPrefix(text, "build_")]
		if !ok {
			return nil, ErrUnknownCommand
		}
		return BuildCommand{Kind: kind, At: at, Amount: amount}, nil

	case strings.HasPrefix(text, "sell_"):
		kind, ok := buildKindByName[strings.TrimPrefix(text, "sell_")]
		if !ok {
			return nil, ErrUnknownCommand
		}
		return SellCommand{Kind: kind, At: at, Amount: amount}, nil

	case strings.HasPrefix(text, "move_"):
		dir, ok := directionByName[strings.TrimPrefix(text, "move_")]
		if !ok {
			return nil, ErrUnknownCommand
		}
		return MoveCommand{Dir: dir, From: at, Amount: amount}, nil

	case strings.HasPrefix(text, "spend_science_"):
		parts := strings.Split(strings.TrimPrefix(text, "spend_science_"), "_")
		if len(parts) != 2 {
			return nil, ErrUnknownCommand
		}
		branch, err := strconv.Atoi(parts[0])
		if err != nil || branch < 1 || branch > NumBranches {
			return nil, ErrUnknownCommand
		}
		spend, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, ErrUnknownCommand
		}
		return SpendScienceCommand{Branch: ScienceBranch(branch), Amount: spend}, nil

	case strings.HasPrefix(text, "set_negative_"):
		target, err := strconv.Atoi(strings.TrimPrefix(text, "set_negative_"))
		if err != nil {
			return nil, ErrUnknownCommand
		}
		return SetHostileCommand{Target: target}, nil

	case strings.HasPrefix(text, "improve_relations_"):
		target, err := strconv.Atoi(strings.TrimPrefix(text, "improve_relations_"))
		if err != nil {
			return nil, ErrUnknownCommand
		}
		return ImproveRelationsCommand{Target: target}, nil

	case strings.HasPrefix(text, "spy_"):
		target, err := strconv.Atoi(strings.TrimPrefix(text, "spy_"))
		if err != nil {
			return nil, ErrUnknownCommand
		}
		return SpyCommand{Target: target}, nil
	}

	return nil, ErrUnknownCommand
}

// CommandResult is what every applied command returns. The engine never
// raises into the caller; rejections carry the reason in Message.
type CommandResult struct {
	OK      bool
	Message string
	Battle  *BattleResult // set when the command resolved a battle
}

func rejected(err error) CommandResult {
	return CommandResult{OK: false, Message: err.Error()}
}

func accepted(format string, args ...any) CommandResult {
	return CommandResult{OK: true, Message: fmt.Sprintf(format, args...)}
}

// Apply executes one decoded command for the active empire. Precondition
// failures are reported in the result with no state mutated.
func (o *Orchestrator) Apply(cmd Command) CommandResult {
	if o.state == StateGameOver {
		return rejected(ErrGameOver)
	}
	current := o.Registry.CurrentEmpire()
	if current == nil {
		return rejected(ErrInvalidEmpire)
	}

	switch c := cmd.(type) {
	case BuildCommand:
		return o.applyBuild(current, c)
	case SellCommand:
		return o.applySell(current, c)
	case MoveCommand:
		return o.applyMove(current, c)
	case EmbarkCommand:
		return o.applyEmbark(current, c)
	case SpendScienceCommand:
		return o.applySpendScience(current, c)
	case SetHostileCommand:
		return o.applySetHostile(current, c)
	case ImproveRelationsCommand:
		return o.applyImproveRelations(current, c)
	case SpyCommand:
		return o.applySpy(current, c)
	case AdjustTaxCommand:
		return o.applyAdjustTax(current, c)
	case EndTurnCommand:
		if next := o.EndTurn(); next != nil {
			return accepted("%s's turn", next.Name)
		}
		return accepted("Game Over - No valid empires remaining")
	case SaveGameCommand:
		return o.applySave()
	case QuitCommand:
		o.gameOver()
		return accepted("quit")
	default:
		return rejected(ErrUnknownCommand)
	}
}

func (o *Orchestrator) applyBuild(e *Empire, c BuildCommand) CommandResult {
	if !o.Map.InBounds(c.At.X, c.At.Y) {
		return rejected(ErrOutOfBounds)
	}
	if o.Map.At(LayerOwner, c.At.X, c.At.Y) != e.ID {
		return rejected(ErrNotOwned)
	}
	terrainID := o.Map.At(LayerTerrain, c.At.X, c.At.Y)
	terrain := o.Terrain.Lookup(terrainID)

	switch c.Kind {
	case BuildNavy:
		if terrainID != TerrainSea {
			return rejected(ErrNotSea)
		}
		if !o.hasAdjacentOwnedLand(e.ID, c.At) {
			return rejected(ErrNoAdjacentLand)
		}
		amount := maxInt(c.Amount, 1)
		cost := NavyCost * amount
		if e.Treasury < cost {
			return rejected(ErrInsufficientFunds)
		}
		e.Navy += amount
		e.Treasury -= cost
		return accepted("Built %d ships for %d gold", amount, cost)

	case BuildArmy:
		if terrainID == TerrainSea {
			return rejected(ErrWrongTerrain)
		}
		amount := maxInt(c.Amount, 1)
		cost := ArmyCost * amount
		if e.Treasury < cost {
			return rejected(ErrInsufficientFunds)
		}
		if e.Unemployed+e.Peasants+e.Workers+e.Merchants < amount {
			return rejected(ErrInsufficientPeople)
		}
		recruit(e, amount)
		o.Map.Add(LayerArmy, c.At.X, c.At.Y, amount)
		e.Treasury -= cost
		return accepted("Recruited army of %d for %d gold", amount, cost)

	default: // structures
		if terrainID == TerrainSea {
			return rejected(ErrWrongTerrain)
		}
		if !terrainAllows(c.Kind, terrain.Name) {
			return rejected(ErrWrongTerrain)
		}
		cost := c.Kind.Cost()
		if e.Treasury < cost {
			return rejected(ErrInsufficientFunds)
		}
		o.Map.Add(c.Kind.Layer(), c.At.X, c.At.Y, 1)
		addBuildingTotal(e, c.Kind, 1)
		e.Treasury -= cost
		return accepted("Built %s for %d gold", c.Kind, cost)
	}
}

// recruit turns civilians into soldiers, drawing from the unemployed first,
// then peasants, workers and merchants. The partition sum is preserved.
func recruit(e *Empire, amount int) {
	remaining := amount
	for _, pool := range []*int{&e.Unemployed, &e.Peasants, &e.Workers, &e.Merchants} {
		if remaining == 0 {
			break
		}
		used := minInt(remaining, *pool)
		*pool -= used
		remaining -= used
	}
	e.Soldiers += amount
}

func (o *Orchestrator) applySell(e *Empire, c SellCommand) CommandResult {
	if !o.Map.InBounds(c.At.X, c.At.Y) {
		return rejected(ErrOutOfBounds)
	}
	if o.Map.At(LayerOwner, c.At.X, c.At.Y) != e.ID {
		return rejected(ErrNotOwned)
	}

	switch c.Kind {
	case BuildArmy:
		amount := maxInt(c.Amount, 1)
		if o.Map.At(LayerArmy, c.At.X, c.At.Y) < amount {
			return rejected(ErrInsufficientUnits)
		}
		o.Map.Add(LayerArmy, c.At.X, c.At.Y, -amount)
		// Disbanded soldiers rejoin the unemployed. AI-raised armies are not
		// backed by the soldier class, so the transfer is bounded by it.
		back := minInt(amount, e.Soldiers)
		e.Soldiers -= back
		e.Unemployed += back
		refund := c.Kind.SellValue() * amount
		e.Treasury += refund
		return accepted("Sold %s for %d gold", c.Kind, refund)

	case BuildNavy:
		amount := maxInt(c.Amount, 1)
		if e.Navy < amount {
			return rejected(ErrInsufficientUnits)
		}
		if e.Embarked+e.MovedEmbarked > e.Navy-amount {
			return rejected(ErrNavyCapacity)
		}
		e.Navy -= amount
		refund := c.Kind.SellValue() * amount
		e.Treasury += refund
		return accepted("Sold %s for %d gold", c.Kind, refund)

	default:
		if o.Map.At(c.Kind.Layer(), c.At.X, c.At.Y) < 1 {
			return rejected(ErrNothingToSell)
		}
		o.Map.Add(c.Kind.Layer(), c.At.X, c.At.Y, -1)
		addBuildingTotal(e, c.Kind, -1)
		refund := c.Kind.SellValue()
		e.Treasury += refund
		return accepted("Sold %s for %d gold", c.Kind, refund)
	}
}

func (o *Orchestrator) applyMove(e *Empire, c MoveCommand) CommandResult {
	if !o.Map.InBounds(c.From.X, c.From.Y) {
		return rejected(ErrOutOfBounds)
	}
	if o.Map.At(LayerOwner, c.From.X, c.From.Y) != e.ID {
		return rejected(ErrNotOwned)
	}
	dx, dy := c.Dir.Offset()
	amount := maxInt(c.Amount, 1)
	if err := o.Military.MoveArmy(o.Map, amount, c.From.X, c.From.Y, c.From.X+dx, c.From.Y+dy); err != nil {
		return rejected(err)
	}
	return accepted("Moved %d units", amount)
}

func (o *Orchestrator) applyEmbark(e *Empire, c EmbarkCommand) CommandResult {
	if !o.Map.InBounds(c.From.X, c.From.Y) {
		return rejected(ErrOutOfBounds)
	}
	if o.Map.At(LayerOwner, c.From.X, c.From.Y) != e.ID {
		return rejected(ErrNotOwned)
	}
	amount := maxInt(c.Amount, 1)

	sea, enemy := Cell{-1, -1}, Cell{-1, -1}
	enemyID := 0
	for _, n := range o.Map.Neighbors(c.From.X, c.From.Y) {
		if o.Map.At(LayerTerrain, n.X, n.Y) == TerrainSea && sea.X < 0 {
			sea = n
		}
		if owner := o.Map.At(LayerOwner, n.X, n.Y); owner != 0 && owner != e.ID && enemyID == 0 {
			enemy, enemyID = n, owner
		}
	}
	if sea.X < 0 {
		return rejected(ErrNoAdjacentSea)
	}

	if err := o.Military.EmbarkArmy(o.Map, e, amount, c.From.X, c.From.Y, sea.X, sea.Y); err != nil {
		return rejected(err)
	}

	if enemyID == 0 {
		return accepted("Embarked %d units", amount)
	}

	// An adjacent enemy turns the embarkation into a naval invasion against
	// the enemy's fleet.
	defender := o.Registry.Get(enemyID)
	result := o.Military.ResolveBattle(e, defender, amount, defender.Navy, TerrainSea, 0, true)
	o.log.Info("naval battle",
		zap.String("attacker", e.Name),
		zap.String("defender", defender.Name),
		zap.Bool("captured", result.TerritoryCaptured))

	if result.TerritoryCaptured {
		remaining := amount - result.AttackerLosses
		o.Map.Set(LayerOwner, enemy.X, enemy.Y, e.ID)
		if remaining > 0 {
			// The landing party replaces whatever garrison held the cell.
			o.Map.Set(LayerArmy, enemy.X, enemy.Y, remaining)
		}
		// The landing party leaves the sea again.
		landed := minInt(amount, o.Map.At(LayerArmy, sea.X, sea.Y))
		o.Map.Add(LayerArmy, sea.X, sea.Y, -landed)
		e.MovedEmbarked = maxInt(e.MovedEmbarked-amount, 0)
		return CommandResult{
			OK:      true,
			Message: fmt.Sprintf("Victory! Territory captured from %s", defender.Name),
			Battle:  &result,
		}
	}
	return CommandResult{OK: true, Message: result.Message, Battle: &result}
}

func (o *Orchestrator) applySpendScience(e *Empire, c SpendScienceCommand) CommandResult {
	progress := e.FundScience(c.Branch, c.Amount)
	if progress <= 0 {
		return rejected(ErrScienceRejected)
	}
	return accepted("Advanced %s by %.2f levels", c.Branch, progress)
}

func (o *Orchestrator) applySetHostile(e *Empire, c SetHostileCommand) CommandResult {
	target := o.Registry.Get(c.Target)
	if target == nil || target.ID == e.ID {
		return rejected(ErrInvalidEmpire)
	}
	// Hostile is level 2; the at-war checks elsewhere look for level 1, so
	// this alone does not trigger war-rate military spending.
	e.Relations[target.ID] = RelationHostile
	target.Relations[e.ID] = RelationHostile
	return accepted("Relations with %s set to hostile", target.Name)
}

func (o *Orchestrator) applyImproveRelations(e *Empire, c ImproveRelationsCommand) CommandResult {
	target := o.Registry.Get(c.Target)
	if target == nil || target.ID == e.ID {
		return rejected(ErrInvalidEmpire)
	}
	if !e.ChangeRelation(target.ID, 1) {
		return rejected(ErrRelationLocked)
	}
	target.Relations[e.ID] = e.Relation(target.ID)
	return accepted("Relations improved with %s", target.Name)
}

func (o *Orchestrator) applySpy(e *Empire, c SpyCommand) CommandResult {
	target := o.Registry.Get(c.Target)
	if target == nil || target.ID == e.ID {
		return rejected(ErrInvalidEmpire)
	}
	cost := e.SpyCost(target.ID)
	if e.Treasury < cost {
		return rejected(ErrInsufficientFunds)
	}
	e.Treasury -= cost
	e.Science.Spied[target.ID] = true
	return accepted("Spy placed in %s", target.Name)
}

func (o *Orchestrator) applyAdjustTax(e *Empire, c AdjustTaxCommand) CommandResult {
	if c.Increase {
		if e.TaxRate <= 90 {
			e.TaxRate += 10
			if e.TaxRate > 100 {
				e.TaxRate = 100
			}
		}
		return accepted("Tax rate increased to %.1f%%", e.TaxRate)
	}
	if e.TaxRate >= 10 {
		e.TaxRate -= 10
		if e.TaxRate < 0 {
			e.TaxRate = 0
		}
	}
	return accepted("Tax rate decreased to %.1f%%", e.TaxRate)
}

func (o *Orchestrator) applySave() CommandResult {
	if o.saver == nil {
		return rejected(fmt.Errorf("saving is not configured"))
	}
	desc, err := o.saver.SaveSnapshot(o)
	if err != nil {
		o.log.Warn("save failed", zap.Error(err))
		return rejected(fmt.Errorf("save failed: %w", err))
	}
	return accepted("Game saved as %s", desc)
}

// hasAdjacentOwnedLand checks for an owned non-sea neighbor.
func (o *Orchestrator) hasAdjacentOwnedLand(id int, at Cell) bool {
	for _, n := range o.Map.Neighbors(at.X, at.Y) {
		if o.Map.At(LayerOwner, n.X, n.Y) == id && o.Map.At(LayerTerrain, n.X, n.Y) != TerrainSea {
			return true
		}
	}
	return false
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
