// snake is a terminal Snake game with an SSH server and a replay journal.
//
// Usage:
//
//	snake                    - Play locally (same as "snake play")
//	snake serve              - Start SSH server for remote play
//	snake runs               - List recorded runs
//	snake replay <run-id>    - Re-simulate a recorded run
//	snake config             - Print the effective configuration
//
// Global flags:
//
//	--seed <value>     - Set RNG seed for reproducible games
//	--config <path>    - Use a custom YAML config
//	--db <path>        - Set journal database path (default: ~/.snake/runs.db)
//	--log-file <path>  - Write logs to a file
//	--log-level <lvl>  - debug, info, warn or error
//	--no-journal       - Do not record runs
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagSeed      int64
	flagConfig    string
	flagDBPath    string
	flagLogFile   string
	flagLogLevel  string
	flagNoJournal bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - the classic game in your terminal",
	Long: `Snake is a terminal version of the classic game. Steer the snake with
the arrow keys, WASD, the on-screen pad or a mouse drag, eat food to grow,
and avoid the walls and your own tail.

Available commands:
  play     - Play locally (default)
  serve    - Start SSH server for remote play
  runs     - List recorded runs
  replay   - Re-simulate a recorded run
  config   - Print the effective configuration

Examples:
  snake
  snake play --seed 42
  snake serve --ssh :2222 --metrics :9108
  snake runs --limit 20
  snake replay 5b2c0a5e-...`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/runs.db", "Path to run journal database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagNoJournal, "no-journal", false, "Do not record runs")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the game config or exits.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// openJournal opens the run journal for play. Failures are reported and
// the game continues without recording.
func openJournal() *storage.Store {
	if flagNoJournal {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run journal: %v\n", err)
		return nil
	}
	return store
}

// mustOpenStore opens the journal for commands that cannot work without it.
func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run journal: %v\n", err)
		os.Exit(1)
	}
	return store
}
