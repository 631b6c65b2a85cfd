package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd lists the recorded synthesis runs of a profile.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded load order runs of a profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		store := e.history(cmd.Context())
		if store == nil {
			return errors.New("history database is disabled or unreachable, set DATABASE_ENABLED=true")
		}
		runs, err := store.List(cmd.Context(), profileFlag, historyLimit)
		if err != nil {
			return err
		}
		return printJSON(runs)
	},
}

func init() {
	historyCmd.Flags().StringVar(&profileFlag, "profile", "", "Profile name")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs")
	_ = historyCmd.MarkFlagRequired("profile")
	RootCmd.AddCommand(historyCmd)
}
