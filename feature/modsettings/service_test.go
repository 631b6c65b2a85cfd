package modsettings

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"bg3-modsettings/core/database"
	"bg3-modsettings/feature/modsettings/cache"
	"bg3-modsettings/feature/modsettings/history"
	"bg3-modsettings/feature/modsettings/models"
	"bg3-modsettings/feature/modsettings/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubExtractor returns metadata keyed by archive filename.
type stubExtractor struct {
	mu    sync.Mutex
	meta  map[string]models.ArchiveMetadata
	calls int
}

func (s *stubExtractor) Extract(_ context.Context, archivePath, _ string) (models.ArchiveMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if meta, ok := s.meta[filepath.Base(archivePath)]; ok {
		return meta, nil
	}
	return models.OverrideMetadata(), nil
}

func meta(uuid, name string) models.ArchiveMetadata {
	return models.ArchiveMetadata{
		Folder:    models.Plain(name),
		Name:      models.Plain(name),
		UUID:      models.Plain(uuid),
		Version64: models.Plain("36028797018963968"),
	}
}

type testEnv struct {
	root      string
	profiles  models.Profiles
	extractor *stubExtractor
	service   *Service
}

func newTestEnv(t *testing.T, store *history.Store) *testEnv {
	root := t.TempDir()
	e := &testEnv{
		root:     root,
		profiles: models.Profiles{Root: filepath.Join(root, "profiles")},
		extractor: &stubExtractor{meta: map[string]models.ArchiveMetadata{
			"alpha.pak": meta("uuid-alpha", "Alpha"),
			"beta.pak":  meta("uuid-beta", "Beta"),
		}},
	}
	e.service = NewService(e.profiles, e.extractor, filepath.Join(root, "scratch"), store, zap.NewNop())
	return e
}

func (e *testEnv) install(t *testing.T, name string, priority int, archives ...string) models.ModRef {
	t.Helper()
	path := filepath.Join(e.root, "mods", name)
	require.NoError(t, os.MkdirAll(filepath.Join(path, models.PakFilesDir), 0o755))
	for _, a := range archives {
		require.NoError(t, os.WriteFile(filepath.Join(path, models.PakFilesDir, a), []byte("LSPK"), 0o644))
	}
	return models.ModRef{Name: name, State: models.StateExists | models.StateActive, Path: path, Priority: priority}
}

func TestService_ProfileLifecycle(t *testing.T) {
	e := newTestEnv(t, nil)

	created, err := e.service.ProfileCreated("Default")
	require.NoError(t, err)
	assert.True(t, created)
	assert.FileExists(t, filepath.Join(e.profiles.Root, "Default", models.ModsCacheFile))

	created, err = e.service.UIInitialized("Default")
	require.NoError(t, err)
	assert.False(t, created)

	_, err = e.service.UIInitialized("Missing")
	assert.ErrorIs(t, err, models.ErrUnknownProfile)

	_, err = e.service.ProfileCreated("../escape")
	assert.ErrorIs(t, err, models.ErrUnknownProfile)
}

func TestService_ModInstalledAndRemoved(t *testing.T) {
	e := newTestEnv(t, nil)
	_, err := e.service.ProfileCreated("Default")
	require.NoError(t, err)

	alpha := e.install(t, "Alpha", 0, "alpha.pak")
	entries, failures, err := e.service.ModInstalled(context.Background(), "Default", alpha)
	require.NoError(t, err)
	assert.Empty(t, failures)
	require.Len(t, entries, 1)
	assert.Equal(t, "uuid-alpha", entries[0].Metadata.UUID.Value)

	c, err := e.service.Cache("Default")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha"}, c.ModNames())

	// A second install callback is served from the cache.
	_, _, err = e.service.ModInstalled(context.Background(), "Default", alpha)
	require.NoError(t, err)
	assert.Equal(t, 1, e.extractor.calls)

	deleted, err := e.service.ModRemoved("Default", "Alpha")
	require.NoError(t, err)
	assert.Len(t, deleted, 1)

	c, err = e.service.Cache("Default")
	require.NoError(t, err)
	assert.Empty(t, c)

	_, _, err = e.service.ModInstalled(context.Background(), "Default", models.ModRef{})
	assert.ErrorIs(t, err, models.ErrInvalidModRef)
}

func TestService_AboutToRun(t *testing.T) {
	db, err := database.Connect(database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "history.db"),
	})
	require.NoError(t, err)
	store := history.NewStore(db)
	require.NoError(t, store.Migrate(context.Background()))

	e := newTestEnv(t, store)
	_, err = e.service.ProfileCreated("Default")
	require.NoError(t, err)

	mods := models.ModList{
		e.install(t, "Beta", 1, "beta.pak"),
		e.install(t, "Alpha", 0, "alpha.pak"),
	}

	result, err := e.service.AboutToRun(context.Background(), "Default", mods)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Modules)
	assert.Equal(t, filepath.Join(e.profiles.Root, "Default", models.ModSettingsFile), result.Path)
	assert.FileExists(t, result.Path)

	run, err := store.Latest(context.Background(), "Default")
	require.NoError(t, err)
	assert.Equal(t, result.Digest, run.Digest)
	assert.Equal(t, 2, run.Modules)

	entries, err := os.ReadDir(filepath.Join(e.root, "scratch"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestService_AboutToRunConcurrent(t *testing.T) {
	e := newTestEnv(t, nil)
	_, err := e.service.ProfileCreated("Default")
	require.NoError(t, err)
	mods := models.ModList{e.install(t, "Alpha", 0, "alpha.pak")}

	var wg sync.WaitGroup
	digests := make([]string, 8)
	errs := make([]error, 8)
	for i := range digests {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := e.service.AboutToRun(context.Background(), "Default", mods)
			errs[i] = err
			if err == nil {
				digests[i] = result.Digest
			}
		}(i)
	}
	wg.Wait()

	for i := range digests {
		require.NoError(t, errs[i])
		assert.Equal(t, digests[0], digests[i])
	}
	assert.Equal(t, 1, e.extractor.calls)
}

func TestService_Prune(t *testing.T) {
	e := newTestEnv(t, nil)
	_, err := e.service.ProfileCreated("Default")
	require.NoError(t, err)

	alpha := e.install(t, "Alpha", 0, "alpha.pak")
	_, _, err = e.service.ModInstalled(context.Background(), "Default", alpha)
	require.NoError(t, err)

	plan, executed, err := e.service.Prune("Default", nil, reconcile.ReconcileOptions{DryRun: true, Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 0, executed)
	assert.Equal(t, []string{"Alpha"}, plan.Summary.StaleMods)

	c, err := e.service.Cache("Default")
	require.NoError(t, err)
	assert.Len(t, c, 1)

	_, executed, err = e.service.Prune("Default", nil, reconcile.ReconcileOptions{Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 2, executed)

	c, err = e.service.Cache("Default")
	require.NoError(t, err)
	assert.Empty(t, c)
}

func TestService_Reset(t *testing.T) {
	e := newTestEnv(t, nil)
	dir, err := e.profiles.Ensure("Default")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, models.ModsCacheFile), []byte("{broken"), 0o644))

	_, err = e.service.Cache("Default")
	assert.ErrorIs(t, err, cache.ErrCorruptCache)

	require.NoError(t, e.service.Reset("Default"))
	c, err := e.service.Cache("Default")
	require.NoError(t, err)
	assert.Empty(t, c)
}
