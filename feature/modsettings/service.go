package modsettings

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"bg3-modsettings/core/utils"
	"bg3-modsettings/feature/modsettings/cache"
	"bg3-modsettings/feature/modsettings/extract"
	"bg3-modsettings/feature/modsettings/history"
	"bg3-modsettings/feature/modsettings/models"
	"bg3-modsettings/feature/modsettings/reconcile"
	"bg3-modsettings/feature/modsettings/synth"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Service maps the host manager's lifecycle callbacks onto the cache and the synthesizer.
type Service struct {
	profiles   models.Profiles
	extractor  extract.Extractor
	scratchDir string
	history    *history.Store
	logger     *zap.Logger

	sf    singleflight.Group
	locks sync.Map
}

// NewService creates a new modsettings service. store may be nil when history is disabled.
func NewService(profiles models.Profiles, extractor extract.Extractor, scratchDir string, store *history.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		profiles:   profiles,
		extractor:  extractor,
		scratchDir: scratchDir,
		history:    store,
		logger:     logger,
	}
}

// Profiles returns the profile layout the service works on.
func (s *Service) Profiles() models.Profiles {
	return s.profiles
}

// History returns the history store, nil when disabled.
func (s *Service) History() *history.Store {
	return s.history
}

// lock serializes cache writers of one profile.
func (s *Service) lock(profile string) func() {
	v, _ := s.locks.LoadOrStore(profile, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *Service) repo(profile string) (*cache.Repository, string, error) {
	dir, err := s.profiles.Dir(profile)
	if err != nil {
		return nil, "", err
	}
	return cache.ForProfile(dir), dir, nil
}

// ProfileCreated creates the profile directory and its empty cache.
func (s *Service) ProfileCreated(profile string) (bool, error) {
	dir, err := s.profiles.Ensure(profile)
	if err != nil {
		return false, err
	}
	defer s.lock(profile)()

	created, err := cache.ForProfile(dir).Init()
	if err != nil {
		return false, err
	}
	s.logger.Info("Profile initialized", zap.String("profile", profile), zap.Bool("created", created))
	return created, nil
}

// UIInitialized makes sure the current profile has a cache file.
func (s *Service) UIInitialized(profile string) (bool, error) {
	repo, _, err := s.repo(profile)
	if err != nil {
		return false, err
	}
	defer s.lock(profile)()
	return repo.Init()
}

// ModInstalled extracts the archives of a freshly installed mod into the profile cache.
func (s *Service) ModInstalled(ctx context.Context, profile string, mod models.ModRef) ([]cache.Entry, []synth.Failure, error) {
	if err := mod.Validate(); err != nil {
		return nil, nil, err
	}
	repo, _, err := s.repo(profile)
	if err != nil {
		return nil, nil, err
	}
	defer s.lock(profile)()

	scratch, err := s.scratch()
	if err != nil {
		return nil, nil, err
	}
	defer s.cleanup(scratch)

	entries, failures, err := synth.NewResolver(s.extractor, s.logger).ResolveInto(ctx, repo, mod, scratch)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info("Mod cached",
		zap.String("profile", profile),
		zap.String("mod", mod.Name),
		zap.Int("archives", len(entries)),
		zap.Int("failures", len(failures)),
	)
	return entries, failures, nil
}

// ModRemoved drops modName from the profile cache and returns the archives deleted as a result.
func (s *Service) ModRemoved(profile, modName string) ([]string, error) {
	repo, _, err := s.repo(profile)
	if err != nil {
		return nil, err
	}
	defer s.lock(profile)()

	deleted, err := repo.RemoveMod(modName)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Mod removed from cache",
		zap.String("profile", profile),
		zap.String("mod", modName),
		zap.Strings("deleted_archives", deleted),
	)
	return deleted, nil
}

// AboutToRun writes the profile's load order for mods. Identical concurrent requests share one pass.
func (s *Service) AboutToRun(ctx context.Context, profile string, mods models.ModList) (*synth.Result, error) {
	repo, dir, err := s.repo(profile)
	if err != nil {
		return nil, err
	}

	key, err := flightKey(profile, mods)
	if err != nil {
		return nil, err
	}

	v, err, shared := s.sf.Do(key, func() (any, error) {
		defer s.lock(profile)()

		syn := synth.New(synth.Config{
			ScratchDir: s.scratchDir,
			OutputPath: filepath.Join(dir, models.ModSettingsFile),
		}, repo, s.extractor, s.logger.With(zap.String("profile", profile)))
		return syn.Synthesize(ctx, mods)
	})
	if err != nil {
		return nil, err
	}
	result := v.(*synth.Result)
	if shared {
		s.logger.Debug("Coalesced load order request", zap.String("profile", profile))
		return result, nil
	}

	if s.history != nil {
		if _, err := s.history.Record(ctx, profile, result); err != nil {
			s.logger.Warn("Failed to record synthesis run", zap.String("profile", profile), zap.Error(err))
		}
	}
	return result, nil
}

// Cache returns the profile's cache content.
func (s *Service) Cache(profile string) (cache.Cache, error) {
	repo, _, err := s.repo(profile)
	if err != nil {
		return nil, err
	}
	return repo.Load()
}

// Prune plans the removal of references to mods outside live and executes it when opts allow.
func (s *Service) Prune(profile string, live models.ModList, opts reconcile.ReconcileOptions) (*reconcile.ReconcilePlan, int, error) {
	repo, _, err := s.repo(profile)
	if err != nil {
		return nil, 0, err
	}
	defer s.lock(profile)()

	c, err := repo.Load()
	if err != nil {
		return nil, 0, err
	}
	plan := reconcile.Plan(c, live.Names())
	executed, err := reconcile.Apply(repo, plan, opts)
	return plan, executed, err
}

// Reset replaces the profile's cache with an empty one.
func (s *Service) Reset(profile string) error {
	repo, _, err := s.repo(profile)
	if err != nil {
		return err
	}
	defer s.lock(profile)()
	return repo.Reset()
}

func (s *Service) scratch() (string, error) {
	if s.scratchDir != "" {
		if err := os.MkdirAll(utils.LongPath(s.scratchDir), 0o755); err != nil {
			return "", fmt.Errorf("failed to create scratch directory: %w", err)
		}
	}
	dir, err := os.MkdirTemp(s.scratchDir, "install-*")
	if err != nil {
		return "", fmt.Errorf("failed to create scratch directory: %w", err)
	}
	return dir, nil
}

func (s *Service) cleanup(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		s.logger.Warn("Failed to remove scratch directory", zap.String("dir", dir), zap.Error(err))
	}
}

// flightKey identifies a generate request by profile and roster content.
func flightKey(profile string, mods models.ModList) (string, error) {
	data, err := utils.MarshalJSONStable(mods)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return profile + ":" + hex.EncodeToString(sum[:]), nil
}
