package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best score for every difficulty level. With a SQLite
score store (--scores ending in .db) the top games of each level are listed
too.

Examples:
  snake scores
  snake scores --scores ~/.snake/scores.db --limit 5
  snake scores --tui`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores in the interactive scoreboard")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Games to list per level")
}

func runScores(_ *cobra.Command, _ []string) {
	a := mustSetup(newLogger("snake"))
	defer a.Close()

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if _, err := tui.RunScoreboard(a.tracker, a.history, a.cfg.Difficulty.Level, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
		}
		return
	}

	fmt.Println("High Scores")
	fmt.Println()
	fmt.Printf("  %-8s  %s\n", "Level", "Best")
	fmt.Printf("  %-8s  %s\n", "-----", "----")
	for _, d := range config.Difficulties() {
		fmt.Printf("  %-8s  %d\n", d, a.tracker.HighScore(d))
	}

	if a.sqlite == nil {
		return
	}

	for _, d := range config.Difficulties() {
		printHistory(a.sqlite, d)
	}
}

// printHistory lists the top games and aggregate stats for one level.
func printHistory(db *storage.SQLiteStore, d config.Difficulty) {
	fmt.Println()
	fmt.Printf("Top games - %s\n", d)

	games, err := db.TopGames(d, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving games: %v\n", err)
		return
	}
	if len(games) == 0 {
		fmt.Println("  No games recorded yet.")
		return
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-6s  %s\n", "Rank", "Score", "Apples", "Time", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-6s  %s\n", "----", "-----", "------", "----", "----")
	for i, g := range games {
		fmt.Printf("  %-4d  %-6d  %-6d  %-6s  %s\n",
			i+1, g.Score, g.Apples, g.Duration.Round(time.Second), g.PlayedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := db.Stats(d); err == nil {
		fmt.Printf("  %d games, average %.1f\n", stats.GamesCount, stats.AvgScore)
	}
}
