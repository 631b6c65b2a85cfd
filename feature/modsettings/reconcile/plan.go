package reconcile

import (
	"fmt"
	"maps"
	"slices"

	"bg3-modsettings/feature/modsettings/cache"
)

// Plan compares c against the live roster names and returns the actions that would converge it.
// Actions are ordered by archive id; within an archive, dropped references come before the
// archive deletion. c is not modified.
func Plan(c cache.Cache, live map[string]struct{}) *ReconcilePlan {
	plan := &ReconcilePlan{Actions: []Action{}}
	stale := make(map[string]struct{})

	for _, id := range c.ArchiveIDs() {
		meta := c[id]
		plan.Summary.TotalArchives++

		kept := 0
		for _, name := range meta.ModNames {
			if _, ok := live[name]; ok {
				kept++
				continue
			}
			stale[name] = struct{}{}
			plan.Summary.StaleReferences++
			plan.Actions = append(plan.Actions, Action{
				Type:      ActionDropReference,
				ArchiveID: id,
				ModName:   name,
				Reason:    "mod not in live roster",
			})
		}

		if kept == 0 {
			plan.Summary.DeletedArchives++
			plan.Actions = append(plan.Actions, Action{
				Type:      ActionDeleteArchive,
				ArchiveID: id,
				Reason:    "archive has no remaining references",
			})
		}
	}

	plan.Summary.StaleMods = slices.Sorted(maps.Keys(stale))
	return plan
}

// ApplyTo executes plan against c in memory and returns the number of actions executed.
func ApplyTo(c cache.Cache, plan *ReconcilePlan) int {
	executed := 0
	for _, action := range plan.Actions {
		switch action.Type {
		case ActionDropReference:
			meta, ok := c[action.ArchiveID]
			if !ok || !meta.RemoveMod(action.ModName) {
				continue
			}
			c[action.ArchiveID] = meta
			executed++
		case ActionDeleteArchive:
			meta, ok := c[action.ArchiveID]
			if !ok || meta.Referenced() {
				continue
			}
			delete(c, action.ArchiveID)
			executed++
		}
	}
	return executed
}

// Apply executes plan against the repository in one read-modify-write.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
func Apply(repo *cache.Repository, plan *ReconcilePlan, opts ReconcileOptions) (executed int, err error) {
	if !opts.Executes() || plan.Empty() {
		return 0, nil
	}

	err = repo.Update(func(c cache.Cache) error {
		executed = ApplyTo(c, plan)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to apply reconcile plan: %w", err)
	}
	return executed, nil
}

// Prune plans and applies against the current cache content in a single read-modify-write.
// The cache file is left untouched when there is nothing to prune. The returned plan describes
// what was removed.
func Prune(repo *cache.Repository, live map[string]struct{}) (*ReconcilePlan, error) {
	c, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to prune mods cache: %w", err)
	}

	plan := Plan(c, live)
	if plan.Empty() {
		return plan, nil
	}

	ApplyTo(c, plan)
	if err := repo.Save(c); err != nil {
		return nil, fmt.Errorf("failed to prune mods cache: %w", err)
	}
	return plan, nil
}
