package cmd

import (
	"errors"

	"bg3-modsettings/feature/backup"

	"github.com/spf13/cobra"
)

// backupCmd is the parent command for profile backups.
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up profile artifacts to object storage",
}

var backupPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload modsettings.lsx and modsCache.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, dir, err := backupService()
		if err != nil {
			return err
		}
		if err := svc.EnsureBucket(cmd.Context()); err != nil {
			return err
		}
		report, err := svc.Push(cmd.Context(), profileFlag, dir)
		if err != nil {
			return err
		}
		return printJSON(report)
	},
}

var backupPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Restore modsettings.lsx and modsCache.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, dir, err := backupService()
		if err != nil {
			return err
		}
		report, err := svc.Pull(cmd.Context(), profileFlag, dir)
		if err != nil {
			return err
		}
		return printJSON(report)
	},
}

func backupService() (*backup.Service, string, error) {
	e, err := loadEnv()
	if err != nil {
		return nil, "", err
	}
	client, err := e.storage()
	if err != nil {
		return nil, "", err
	}
	if client == nil {
		return nil, "", errors.New("storage is disabled, set STORAGE_ENABLED=true")
	}
	dir, err := e.profiles().Dir(profileFlag)
	if err != nil {
		return nil, "", err
	}
	return backup.NewService(client, e.cfg.Storage.Bucket, e.cfg.Backup.Prefix, e.log), dir, nil
}

func init() {
	backupCmd.PersistentFlags().StringVar(&profileFlag, "profile", "", "Profile name")
	_ = backupCmd.MarkPersistentFlagRequired("profile")

	backupCmd.AddCommand(backupPushCmd, backupPullCmd)
	RootCmd.AddCommand(backupCmd)
}
