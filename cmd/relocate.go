package cmd

import (
	"github.com/spf13/cobra"
)

// relocateCmd moves Script Extender output into the overwrite folder.
var relocateCmd = &cobra.Command{
	Use:   "relocate",
	Short: "Move Script Extender files into the overwrite folder",
	Long: `Run after the game exits. Moves everything under the game's Script Extender directory
into <overwrite>/SE_CONFIG and removes the emptied directories.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		report, err := e.relocator().Relocate()
		if err != nil {
			return err
		}
		return printJSON(report)
	},
}

func init() {
	RootCmd.AddCommand(relocateCmd)
}
