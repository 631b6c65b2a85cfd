package cmd

import (
	"bg3-modsettings/feature/vfs"

	"github.com/spf13/cobra"
)

// mappingsCmd prints the virtual file system mappings of a profile.
var mappingsCmd = &cobra.Command{
	Use:   "mappings",
	Short: "Print the VFS mappings for a roster",
	Long: `Prints the source/destination pairs the mod manager's virtual file system needs:
enabled mods' PAK_FILES into the game's Mods directory, their SE_CONFIG into the Script Extender
directory, and the profile's modsettings.lsx into the player profile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		dir, err := e.profiles().Dir(profileFlag)
		if err != nil {
			return err
		}
		mods, err := readRoster(rosterFlag)
		if err != nil {
			return err
		}

		mapper := vfs.NewMapper(e.gamePaths(), e.log)
		if err := mapper.EnsureTargets(); err != nil {
			return err
		}
		mappings, err := mapper.Mappings(mods, dir)
		if err != nil {
			return err
		}
		return printJSON(mappings)
	},
}

func init() {
	mappingsCmd.Flags().StringVar(&profileFlag, "profile", "", "Profile name")
	mappingsCmd.Flags().StringVar(&rosterFlag, "roster", "-", "Roster JSON file, - for stdin")
	_ = mappingsCmd.MarkFlagRequired("profile")
	RootCmd.AddCommand(mappingsCmd)
}
