package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show saved scores",
	Long: `Display Highscore, RecentScore and the most recent runs.

Examples:
  colorswitch scores
  colorswitch scores --limit 25
  colorswitch scores --store gdata`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	defer store.Close()

	high, err := store.HighScore()
	if err != nil {
		return err
	}
	recent, err := store.RecentScore()
	if err != nil {
		return err
	}
	runs, err := store.RecentRuns(flagLimit)
	if err != nil {
		return err
	}
	stats, err := store.Stats()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Color Switch")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Highscore    %d\n", high)
	fmt.Fprintf(out, "  RecentScore  %d\n", recent)
	fmt.Fprintln(out)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'colorswitch' to set the first high score!")
		return nil
	}

	fmt.Fprintf(out, "  %-6s  %-10s  %s\n", "Run", "Score", "Date")
	fmt.Fprintf(out, "  %-6s  %-10s  %s\n", "---", "-----", "----")
	for _, r := range runs {
		fmt.Fprintf(out, "  %-6s  %-10d  %s\n", fmt.Sprintf("#%d", r.ID), r.Score, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Runs: %d   Best: %d   Average: %.1f\n", stats.Runs, stats.Best, stats.Average)
	return nil
}
