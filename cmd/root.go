package cmd

import (
	"fmt"
	"os"

	"bg3-modsettings/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configDir is where .env is looked up.
var configDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "bg3-modsettings",
	Short: "Baldur's Gate 3 load order companion",
	Long: `bg3-modsettings keeps a mod manager profile's modsettings.lsx in sync with its mod roster.
It extracts archive descriptors with Divine, caches them per profile and writes the load order
the game reads. Lifecycle callbacks are served either as commands or over the HTTP hook server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format at debug level gives readable ISO8601 timestamps
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "Directory holding the .env file")
}
