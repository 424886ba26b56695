package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/config"
)

var (
	flagResetYes     bool
	flagResetHistory bool
)

var resetScoresCmd = &cobra.Command{
	Use:   "reset-scores",
	Short: "Clear high scores",
	Long: `Reset the best score of every level to zero. With a SQLite score
store, --history also deletes the recorded games.

Examples:
  snake reset-scores
  snake reset-scores --yes --history --scores ~/.snake/scores.db`,
	Args: cobra.NoArgs,
	Run:  runResetScores,
}

func init() {
	resetScoresCmd.Flags().BoolVarP(&flagResetYes, "yes", "y", false, "Do not ask for confirmation")
	resetScoresCmd.Flags().BoolVar(&flagResetHistory, "history", false, "Also delete play history (SQLite only)")
}

func runResetScores(_ *cobra.Command, _ []string) {
	a := mustSetup(newLogger("snake"))
	defer a.Close()

	if !flagResetYes && !confirm("Reset all high scores?") {
		fmt.Println("Cancelled.")
		return
	}

	if err := a.tracker.ClearHighScores(); err != nil {
		fmt.Fprintf(os.Stderr, "Error resetting scores: %v\n", err)
		return
	}
	fmt.Println("High scores reset.")

	if !flagResetHistory {
		return
	}
	if a.sqlite == nil {
		fmt.Println("No play history to delete (scores are not in a database).")
		return
	}
	for _, d := range config.Difficulties() {
		if err := a.sqlite.ClearGames(d); err != nil {
			fmt.Fprintf(os.Stderr, "Error deleting %s history: %v\n", d, err)
			return
		}
	}
	fmt.Println("Play history deleted.")
}

func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
