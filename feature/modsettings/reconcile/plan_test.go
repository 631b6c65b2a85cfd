package reconcile

import (
	"os"
	"testing"

	"bg3-modsettings/feature/modsettings/cache"
	"bg3-modsettings/feature/modsettings/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func archive(uuid string, mods ...string) models.ArchiveMetadata {
	return models.ArchiveMetadata{
		UUID:     models.Plain(uuid),
		Name:     models.Plain("Archive " + uuid),
		ModNames: mods,
	}
}

func live(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// seed writes c to a fresh profile cache and returns its repository.
func seed(t *testing.T, c cache.Cache) *cache.Repository {
	t.Helper()
	repo := cache.ForProfile(t.TempDir())
	require.NoError(t, repo.Save(c))
	return repo
}

// TestPlan_Actions tests that stale references and orphaned archives are planned in order.
func TestPlan_Actions(t *testing.T) {
	c := cache.Cache{
		"shared.pak": archive("1", "Alpha", "Beta"),
		"beta.pak":   archive("2", "Beta"),
		"alpha.pak":  archive("3", "Alpha"),
	}

	plan := Plan(c, live("Alpha"))

	assert.Equal(t, []Action{
		{Type: ActionDropReference, ArchiveID: "beta.pak", ModName: "Beta", Reason: "mod not in live roster"},
		{Type: ActionDeleteArchive, ArchiveID: "beta.pak", Reason: "archive has no remaining references"},
		{Type: ActionDropReference, ArchiveID: "shared.pak", ModName: "Beta", Reason: "mod not in live roster"},
	}, plan.Actions)
	assert.Equal(t, PlanSummary{
		TotalArchives:   3,
		StaleReferences: 2,
		DeletedArchives: 1,
		StaleMods:       []string{"Beta"},
	}, plan.Summary)

	// Planning never mutates.
	assert.Equal(t, []string{"Alpha", "Beta"}, c["shared.pak"].ModNames)
	assert.Contains(t, c, "beta.pak")
}

// TestPlan_NothingStale tests that a converged cache produces an empty plan.
func TestPlan_NothingStale(t *testing.T) {
	c := cache.Cache{"alpha.pak": archive("1", "Alpha")}

	plan := Plan(c, live("Alpha", "Gamma"))

	assert.True(t, plan.Empty())
	assert.Equal(t, 1, plan.Summary.TotalArchives)
	assert.Empty(t, plan.Summary.StaleMods)
}

// TestApply_RequiresConfirmation tests the dry-run and confirmation gates.
func TestApply_RequiresConfirmation(t *testing.T) {
	tests := []struct {
		name     string
		opts     ReconcileOptions
		executed int
	}{
		{name: "unconfirmed", opts: ReconcileOptions{}, executed: 0},
		{name: "dry run", opts: ReconcileOptions{Confirmed: true, DryRun: true}, executed: 0},
		{name: "confirmed", opts: ReconcileOptions{Confirmed: true}, executed: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := seed(t, cache.Cache{"beta.pak": archive("2", "Beta")})
			c, err := repo.Load()
			require.NoError(t, err)

			plan := Plan(c, live())
			executed, err := Apply(repo, plan, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.executed, executed)

			after, err := repo.Load()
			require.NoError(t, err)
			if tt.executed > 0 {
				assert.Empty(t, after)
			} else {
				assert.Contains(t, after, "beta.pak")
			}
		})
	}
}

// TestApply_SkipsOutdatedActions tests that actions already satisfied by the cache are not counted.
func TestApply_SkipsOutdatedActions(t *testing.T) {
	repo := seed(t, cache.Cache{"alpha.pak": archive("1", "Alpha")})
	plan := &ReconcilePlan{Actions: []Action{
		{Type: ActionDropReference, ArchiveID: "gone.pak", ModName: "Beta"},
		{Type: ActionDeleteArchive, ArchiveID: "alpha.pak"},
	}}

	executed, err := Apply(repo, plan, ReconcileOptions{Confirmed: true})
	require.NoError(t, err)
	assert.Zero(t, executed)

	c, err := repo.Load()
	require.NoError(t, err)
	assert.Contains(t, c, "alpha.pak", "referenced archives are never deleted")
}

// TestPrune_BetaUninstalled tests that an uninstalled mod's archive leaves the cache entirely.
func TestPrune_BetaUninstalled(t *testing.T) {
	repo := seed(t, cache.Cache{"beta.pak": archive("2", "Beta")})

	plan, err := Prune(repo, live("Alpha"))
	require.NoError(t, err)
	assert.Equal(t, 1, plan.Summary.DeletedArchives)

	c, err := repo.Load()
	require.NoError(t, err)
	assert.NotContains(t, c, "beta.pak")
}

// TestPrune_Converges tests that no stale name or orphan archive survives a prune.
func TestPrune_Converges(t *testing.T) {
	repo := seed(t, cache.Cache{
		"a.pak": archive("1", "Alpha", "Beta", "Gamma"),
		"b.pak": archive("2", "Beta", "Gamma"),
		"c.pak": archive("3", "Gamma"),
		"d.pak": archive("4", "Delta"),
	})
	roster := live("Alpha", "Delta")

	_, err := Prune(repo, roster)
	require.NoError(t, err)

	c, err := repo.Load()
	require.NoError(t, err)
	for id, meta := range c {
		assert.True(t, meta.Referenced(), "archive %s is unreferenced", id)
		for _, name := range meta.ModNames {
			assert.Contains(t, roster, name, "archive %s keeps stale reference", id)
		}
	}
	assert.ElementsMatch(t, []string{"a.pak", "d.pak"}, c.ArchiveIDs())

	again, err := Prune(repo, roster)
	require.NoError(t, err)
	assert.True(t, again.Empty(), "second prune has nothing left to do")
}

// TestPrune_MissingCacheIsNotCreated tests that a no-op prune does not touch the file system.
func TestPrune_MissingCacheIsNotCreated(t *testing.T) {
	repo := cache.ForProfile(t.TempDir())

	plan, err := Prune(repo, live("Alpha"))
	require.NoError(t, err)
	assert.True(t, plan.Empty())

	_, statErr := os.Stat(repo.Path())
	assert.True(t, os.IsNotExist(statErr))
}

// TestPrune_CorruptCache tests that a corrupt cache aborts the prune.
func TestPrune_CorruptCache(t *testing.T) {
	repo := cache.ForProfile(t.TempDir())
	require.NoError(t, os.WriteFile(repo.Path(), []byte("not json"), 0o644))

	_, err := Prune(repo, live())
	assert.ErrorIs(t, err, cache.ErrCorruptCache)
}
