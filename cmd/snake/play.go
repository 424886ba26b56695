package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
)

var flagNoMenu bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake",
	Long: `Start the game with the main menu.

Controls:
  Arrows/WASD  - Turn
  Mouse click  - Turn toward the clicked cell
  Enter/Space  - Start
  R            - Restart (after game over)
  1/2/3        - Easy/Normal/Hard
  P/Esc        - Pause
  ?            - Toggle help
  Ctrl+S       - Screenshot to ~/.snake/screenshots
  Q            - Back to menu
  Ctrl+C       - Quit

Difficulty levels:
  easy   - 10 moves per second
  normal - 15 moves per second
  hard   - 20 moves per second

Debug logs go to ~/.snake/snake.log with --verbose.

Examples:
  snake play
  snake play --difficulty hard
  snake play --no-menu --seed 42
  snake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoMenu, "no-menu", false, "Skip the menu and go straight to the game")
}

func runPlay(_ *cobra.Command, _ []string) {
	a := mustSetup(newLogger("snake"))

	gameLog, closeLog := playLogger()

	game, err := a.newGame(gameLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if flagNoMenu {
		err = tui.Run(game, width, height)
	} else {
		err = tui.RunSession(game, a.history, width, height)
	}

	// Close store before potential exit
	a.Close()
	closeLog()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// playLogger returns the logger used while the alt screen is up. Output to
// the terminal would corrupt the board, so it goes to a file or nowhere.
func playLogger() (*log.Logger, func()) {
	discard := log.New(io.Discard)
	if !flagVerbose {
		return discard, func() {}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return discard, func() {}
	}
	path := filepath.Join(home, ".snake", "snake.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return discard, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return discard, func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }
}
