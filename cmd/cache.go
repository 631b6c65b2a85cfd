package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"bg3-modsettings/feature/modsettings/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dryRunPrune bool
	yesConfirm  bool
)

// cacheCmd is the parent command for cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and maintain a profile's metadata cache",
}

var cacheShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the profile's modsCache.json content",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		c, err := e.service(nil).Cache(profileFlag)
		if err != nil {
			return err
		}
		return printJSON(c)
	},
}

var cacheInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty cache when none exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		created, err := e.service(nil).UIInitialized(profileFlag)
		if err != nil {
			return err
		}
		e.log.Info("Cache initialized", zap.String("profile", profileFlag), zap.Bool("created", created))
		return nil
	},
}

var cacheResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace the cache with an empty one",
	Long:  `Discards the cache content, corrupt or not. Every archive is extracted again on the next generate.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		if !confirmDestructiveAction() {
			e.log.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}
		if err := e.service(nil).Reset(profileFlag); err != nil {
			return err
		}
		e.log.Info("Cache reset", zap.String("profile", profileFlag))
		return nil
	},
}

// cachePruneCmd drops references to mods that left the roster.
var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Drop cache references to mods outside the roster",
	Long: `Compares the cache with the roster, reports stale references and unreferenced archives,
and optionally removes them.

Examples:
  # Report only
  cache prune --profile Default --roster roster.json --dry-run

  # Prune with interactive confirmation
  cache prune --profile Default --roster roster.json

  # Prune with auto-confirm (non-interactive)
  cache prune --profile Default --roster roster.json --yes

When the roster is read from stdin the prompt cannot be answered; pass --yes.`,
	RunE: runCachePrune,
}

func init() {
	cacheCmd.PersistentFlags().StringVar(&profileFlag, "profile", "", "Profile name")
	_ = cacheCmd.MarkPersistentFlagRequired("profile")

	cachePruneCmd.Flags().StringVar(&rosterFlag, "roster", "-", "Roster JSON file, - for stdin")
	cachePruneCmd.Flags().BoolVar(&dryRunPrune, "dry-run", false, "Force dry-run (no mutations even with --yes)")
	cachePruneCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	cacheResetCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	cacheCmd.AddCommand(cacheShowCmd, cacheInitCmd, cacheResetCmd, cachePruneCmd)
	RootCmd.AddCommand(cacheCmd)
}

func runCachePrune(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	l := e.log

	mods, err := readRoster(rosterFlag)
	if err != nil {
		return err
	}
	svc := e.service(nil)

	// Step 1: Plan (always runs)
	plan, _, err := svc.Prune(profileFlag, mods, reconcile.ReconcileOptions{DryRun: true})
	if err != nil {
		return fmt.Errorf("failed to plan prune: %w", err)
	}
	printPruneReport(l, plan)

	if plan.Empty() {
		l.Info("Cache already matches the roster.")
		return nil
	}
	if dryRunPrune {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	// Step 2: Apply (if confirmed)
	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}
	_, executed, err := svc.Prune(profileFlag, mods, reconcile.ReconcileOptions{Confirmed: true})
	if err != nil {
		return fmt.Errorf("failed to apply prune: %w", err)
	}
	l.Info("Successfully executed actions", zap.Int("count", executed))
	return nil
}

// printPruneReport prints a prune plan using logger.
func printPruneReport(l *zap.Logger, plan *reconcile.ReconcilePlan) {
	s := plan.Summary
	l.Info("Prune report",
		zap.Int("total_archives", s.TotalArchives),
		zap.Int("stale_references", s.StaleReferences),
		zap.Int("deleted_archives", s.DeletedArchives),
		zap.Strings("stale_mods", s.StaleMods),
	)

	maxShow := min(len(plan.Actions), 5)
	for _, action := range plan.Actions[:maxShow] {
		l.Info("Sample action",
			zap.String("type", string(action.Type)),
			zap.String("archive", action.ArchiveID),
			zap.String("mod", action.ModName),
			zap.String("reason", action.Reason),
		)
	}
	if len(plan.Actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
