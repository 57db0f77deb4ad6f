package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagYes bool

var resetCmd = &cobra.Command{
	Use:   "reset-scores",
	Short: "Clear saved scores",
	Long: `Clear Highscore, RecentScore and the run history of the selected store.

Examples:
  colorswitch reset-scores --yes
  colorswitch reset-scores --store gdata --yes`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Do not ask for confirmation")
}

func runReset(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	if !flagYes {
		fmt.Fprint(cmd.OutOrStdout(), "Clear all saved scores? [y/N] ")
		var answer string
		_, _ = fmt.Fscanln(cmd.InOrStdin(), &answer)
		if answer != "y" && answer != "Y" && answer != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	store := openStore(logger)
	defer store.Close()

	if err := store.Reset(); err != nil {
		return err
	}
	logger.Info("scores cleared", "store", flagStore)
	fmt.Fprintln(cmd.OutOrStdout(), "Scores cleared.")
	return nil
}
