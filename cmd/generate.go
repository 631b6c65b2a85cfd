package cmd

import (
	"errors"
	"fmt"

	"bg3-modsettings/feature/modsettings/synth"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ErrIncompleteLoadOrder is returned by generate when some archives could not be read.
var ErrIncompleteLoadOrder = errors.New("load order written without unreadable archives")

var (
	profileFlag string
	rosterFlag  string
)

// generateCmd writes a profile's load order.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write modsettings.lsx for a profile",
	Long: `Prunes the profile cache, resolves every roster mod and writes the profile's modsettings.lsx.

The roster is a JSON document {"mods": [{"name", "state", "path", "priority"}]} read from
--roster, or from stdin when --roster is "-" or omitted.

Examples:
  generate --profile Default --roster roster.json
  cat roster.json | generate --profile Default`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&profileFlag, "profile", "", "Profile name")
	generateCmd.Flags().StringVar(&rosterFlag, "roster", "-", "Roster JSON file, - for stdin")
	_ = generateCmd.MarkFlagRequired("profile")
	RootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.log.Sync()

	mods, err := readRoster(rosterFlag)
	if err != nil {
		return err
	}

	result, err := e.service(e.history(cmd.Context())).AboutToRun(cmd.Context(), profileFlag, mods)
	if err != nil {
		return err
	}

	for _, f := range result.Failures {
		e.log.Warn("Archive left out of the load order",
			zap.String("mod", f.Mod),
			zap.String("archive", f.Archive),
			zap.String("error", f.Error),
		)
	}
	if err := printJSON(result); err != nil {
		return err
	}
	return failuresErr(result)
}

// failuresErr reports archives left out of an otherwise written load order.
func failuresErr(result *synth.Result) error {
	if len(result.Failures) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d archive(s) failed, first %s/%s: %s", ErrIncompleteLoadOrder,
		len(result.Failures), result.Failures[0].Mod, result.Failures[0].Archive, result.Failures[0].Error)
}
