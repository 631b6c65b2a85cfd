package cmd

import (
	"fmt"

	"bg3-modsettings/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fixFlag    bool
	jsonOutput bool
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the tool, directories, cache and backup bucket",
	Long:  `Checks that the environment can extract archives and write load orders. Pass --profile to include a profile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		client, err := e.storage()
		if err != nil {
			return err
		}

		svc := integrity.NewService(integrity.Config{
			ToolPath:   e.cfg.Game.ToolPath,
			ScratchDir: e.cfg.Game.ScratchDir,
		}, e.profiles(), client, e.cfg.Storage.Bucket, e.log)

		if fixFlag {
			svc.CheckBucket(cmd.Context(), true)
		}
		report := svc.Run(cmd.Context(), profileFlag)

		if jsonOutput {
			if err := printJSON(report); err != nil {
				return err
			}
		} else {
			fmt.Println("\n=== Integrity Report ===")
			for _, r := range report.Checks {
				line := fmt.Sprintf("%-8s %-8s %s", r.Name, r.Status, r.Detail)
				if r.Error != "" {
					line += r.Error
				}
				fmt.Println(line)
			}
		}

		if !report.Healthy {
			return fmt.Errorf("integrity checks failed")
		}
		e.log.Info("All integrity checks passed", zap.Int("checks", len(report.Checks)))
		return nil
	},
}

func init() {
	integrityCmd.Flags().StringVar(&profileFlag, "profile", "", "Profile to check")
	integrityCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the backup bucket when missing")
	integrityCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	RootCmd.AddCommand(integrityCmd)
}
