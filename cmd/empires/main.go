package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nine-empires/internal/database"
	"nine-empires/internal/game"
	"nine-empires/internal/profile"
	"nine-empires/pkg/scenario"
)

var (
	scenarioPath string
	dbPath       string
	profileDir   string
	terrainPath  string
	saveSlot     int
	saveName     string
	seed         int64
	maxTurns     int
	verbose      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "empires",
		Short: "Turn-based empire simulation",
		Long: `Runs the empire simulation headless: loads a scenario, plays
AI empires automatically and ends human turns without input, reporting the
state of the world as turns pass.`,
		RunE: runSimulation,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "empires.db", "Path to the save database")
	rootCmd.PersistentFlags().StringVar(&profileDir, "profiles", "profiles", "Directory holding AI profile files")
	rootCmd.PersistentFlags().StringVar(&terrainPath, "terrain", "profiles/terrain.yaml", "Path to the terrain definition file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "Scenario file (embedded default when empty)")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (time-based when 0)")
	rootCmd.Flags().IntVarP(&maxTurns, "turns", "t", 20, "Number of turns to simulate")
	rootCmd.Flags().IntVar(&saveSlot, "slot", 1, "Save slot written at the end of the run")
	rootCmd.Flags().StringVar(&saveName, "name", "autosave", "Save name")

	resumeCmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume a saved game",
		RunE:  runResume,
	}
	resumeCmd.Flags().IntVar(&saveSlot, "slot", 1, "Save slot to resume")
	resumeCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (time-based when 0)")
	resumeCmd.Flags().IntVarP(&maxTurns, "turns", "t", 20, "Number of turns to simulate")

	savesCmd := &cobra.Command{
		Use:   "saves",
		Short: "List saved games",
		RunE:  runListSaves,
	}

	rootCmd.AddCommand(resumeCmd, savesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runSimulation(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	var s *scenario.Scenario
	if scenarioPath != "" {
		s, err = scenario.Load(scenarioPath)
	} else {
		s, err = scenario.Default()
	}
	if err != nil {
		return err
	}

	return simulate(logger, s)
}

func runResume(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.New(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	save, err := db.GetSave(saveSlot)
	if err != nil {
		return err
	}
	s, err := scenario.Decode(strings.NewReader(save.Snapshot))
	if err != nil {
		return fmt.Errorf("saved snapshot in slot %d: %w", saveSlot, err)
	}
	s.Turn = save.Turn

	logger.Info("resuming save",
		zap.Int("slot", save.Slot),
		zap.String("name", save.Name),
		zap.Int("turn", save.Turn))
	return simulate(logger, s)
}

func runListSaves(cmd *cobra.Command, args []string) error {
	db, err := database.New(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	saves, err := db.ListSaves()
	if err != nil {
		return err
	}
	if len(saves) == 0 {
		fmt.Println("No saved games.")
		return nil
	}
	for _, save := range saves {
		fmt.Printf("slot %d: %s (turn %d, saved %s)\n",
			save.Slot, save.Name, save.Turn, save.CreatedAt.Format(time.DateTime))
	}
	return nil
}

// simulate drives the orchestrator for maxTurns, ending human turns without
// input, then writes a final save.
func simulate(logger *zap.Logger, s *scenario.Scenario) error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	db, err := database.New(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	o := game.NewOrchestrator(game.Config{
		Registry: s.Registry,
		Map:      s.Map,
		Terrain:  profile.LoadTerrain(terrainPath, logger),
		Profiles: profile.LoadAll(profileDir, logger),
		Turn:     s.Turn,
		Rand:     game.NewRand(seed),
		Saver:    &database.SlotSaver{DB: db, Slot: saveSlot, Name: saveName},
		Logger:   logger,
	})

	current := o.Start()
	for turn := 0; turn < maxTurns && current != nil; turn++ {
		fmt.Printf("turn %d: %s holds %d territories, treasury %d\n",
			o.Turn, current.Name, current.LandCount, current.Treasury)
		current = o.EndTurn()
	}

	fmt.Println(o.Summary())
	if o.State() != game.StateGameOver {
		result := o.Apply(game.SaveGameCommand{})
		if !result.OK {
			return fmt.Errorf("final save failed: %s", result.Message)
		}
		fmt.Printf("Saved: %s\n", result.Message)
	}
	return nil
}
