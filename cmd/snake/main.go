// snake is the classic snake game for the terminal.
//
// Usage:
//
//	snake play               - Play with the interactive menu
//	snake scores             - Show high scores and play history
//	snake serve              - Start SSH server for remote play plus a spectator feed
//	snake reset-scores       - Clear high scores
//
// Global flags:
//
//	--config <path>      - Game config YAML (default: built-in search order)
//	--scores <path>      - High-score file; .db/.sqlite keeps play history
//	--difficulty <level> - easy, normal, hard or 1-3
//	--seed <value>       - Set RNG seed for reproducible food placement
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/records"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	// Global flags
	flagConfig     string
	flagScores     string
	flagDifficulty string
	flagSeed       int64
	flagVerbose    bool
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
	Long: `Snake for the terminal. Eat apples, grow, and avoid the walls and
your own tail. Each difficulty level keeps its own high score.

Available commands:
  play          - Play with the interactive menu
  scores        - View high scores and play history
  serve         - Start SSH server for remote play
  reset-scores  - Clear high scores

Examples:
  snake play
  snake play --difficulty hard
  snake scores --scores ~/.snake/scores.db
  snake serve --ssh :2222 --http :8080`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagScores, "scores", "", "Path to high scores (.json file, or .db for history); default from config")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, normal, hard or 1-3")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resetScoresCmd)
}

// app is everything a command needs: config, the score store and a tracker
// loaded from it.
type app struct {
	cfg     config.SnakeConfig
	backend storage.Backend
	tracker *records.Tracker
	history tui.HistorySource
	sqlite  *storage.SQLiteStore
	logger  *log.Logger
}

// newLogger builds the command logger.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// setup loads config and scores. Only an invalid config is fatal; storage
// problems leave an in-memory tracker so the game still works.
func setup(logger *log.Logger) (*app, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyDifficultyPreset(&cfg, flagDifficulty); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}

	path := flagScores
	if path == "" {
		path = cfg.Records.Path
	}

	var store records.Store
	if backend, openErr := storage.Open(path); openErr != nil {
		logger.Warn("could not open high scores, playing without saving", "path", path, "error", openErr)
	} else {
		a.backend = backend
		store = backend
		if db, ok := backend.(*storage.SQLiteStore); ok {
			a.sqlite = db
			a.history = db
		}
	}

	tracker, err := records.NewTracker(store, cfg.Records.AppleThreshold)
	if err != nil {
		// The tracker is still usable with default scores.
		logger.Warn("could not load high scores", "path", path, "error", err)
	}
	a.tracker = tracker

	logger.Debug("setup complete", "level", cfg.Difficulty.Level, "scores", path)
	return a, nil
}

// newGame creates a game from the app's config and tracker.
func (a *app) newGame(logger *log.Logger) (*snake.Game, error) {
	opts := []snake.Option{snake.WithLogger(logger)}
	if flagSeed != 0 {
		opts = append(opts, snake.WithSeed(flagSeed))
	}
	return snake.New(a.cfg, a.tracker, opts...)
}

// Close releases the score store.
func (a *app) Close() {
	if a.backend == nil {
		return
	}
	if err := a.backend.Close(); err != nil {
		a.logger.Warn("could not close high scores", "error", err)
	}
}

// mustSetup is setup for commands that cannot continue without config.
func mustSetup(logger *log.Logger) *app {
	a, err := setup(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return a
}
