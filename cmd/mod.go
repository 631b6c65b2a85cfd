package cmd

import (
	"bg3-modsettings/feature/modsettings/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	modName     string
	modPath     string
	modPriority int
	modState    int
)

// modCmd is the parent command for mod lifecycle callbacks.
var modCmd = &cobra.Command{
	Use:   "mod",
	Short: "Mod lifecycle callbacks",
}

var modInstalledCmd = &cobra.Command{
	Use:     "installed",
	Short:   "Cache the archive descriptors of an installed mod",
	Example: `  mod installed --profile Default --name "Alpha" --path "C:/mods/Alpha"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		mod, err := models.NewModRef(modName, models.ModState(modState), modPath, modPriority)
		if err != nil {
			return err
		}
		entries, failures, err := e.service(nil).ModInstalled(cmd.Context(), profileFlag, mod)
		if err != nil {
			return err
		}
		return printJSON(map[string]any{"entries": entries, "failures": failures})
	},
}

var modRemovedCmd = &cobra.Command{
	Use:   "removed",
	Short: "Drop a removed mod from the cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		deleted, err := e.service(nil).ModRemoved(profileFlag, modName)
		if err != nil {
			return err
		}
		e.log.Info("Mod removed", zap.String("mod", modName), zap.Int("deleted_archives", len(deleted)))
		return nil
	},
}

func init() {
	modCmd.PersistentFlags().StringVar(&profileFlag, "profile", "", "Profile name")
	modCmd.PersistentFlags().StringVar(&modName, "name", "", "Mod name")
	_ = modCmd.MarkPersistentFlagRequired("profile")
	_ = modCmd.MarkPersistentFlagRequired("name")

	modInstalledCmd.Flags().StringVar(&modPath, "path", "", "Mod installation directory")
	modInstalledCmd.Flags().IntVar(&modPriority, "priority", 0, "Mod priority")
	modInstalledCmd.Flags().IntVar(&modState, "state", int(models.StateExists|models.StateActive), "Mod state bits")
	_ = modInstalledCmd.MarkFlagRequired("path")

	modCmd.AddCommand(modInstalledCmd, modRemovedCmd)
	RootCmd.AddCommand(modCmd)
}
