package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// profileCmd is the parent command for profile callbacks.
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Profile lifecycle callbacks",
}

var profileInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a profile directory and its empty cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		created, err := e.service(nil).ProfileCreated(profileFlag)
		if err != nil {
			return err
		}
		e.log.Info("Profile ready", zap.String("profile", profileFlag), zap.Bool("cache_created", created))
		return nil
	},
}

func init() {
	profileInitCmd.Flags().StringVar(&profileFlag, "profile", "", "Profile name")
	_ = profileInitCmd.MarkFlagRequired("profile")

	profileCmd.AddCommand(profileInitCmd)
	RootCmd.AddCommand(profileCmd)
}
