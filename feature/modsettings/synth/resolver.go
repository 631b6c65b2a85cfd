package synth

import (
	"context"
	"fmt"
	"path/filepath"

	"bg3-modsettings/feature/modsettings/cache"
	"bg3-modsettings/feature/modsettings/extract"
	"bg3-modsettings/feature/modsettings/models"

	"go.uber.org/zap"
)

// Failure records an archive whose metadata could not be recovered.
type Failure struct {
	Mod     string `json:"mod"`
	Archive string `json:"archive"`
	Error   string `json:"error"`
}

// Resolver fills cache misses by extracting a mod's archives.
type Resolver struct {
	extractor extract.Extractor
	logger    *zap.Logger
}

// NewResolver creates a resolver backed by extractor.
func NewResolver(extractor extract.Extractor, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{extractor: extractor, logger: logger}
}

// Resolve returns the archives of mod. Cached entries are used as is; otherwise every archive in
// the mod's PAK_FILES folder is extracted under scratchDir and upserted into c.
// An error is returned only when ctx is done or the archive folder cannot be listed.
func (r *Resolver) Resolve(ctx context.Context, c cache.Cache, mod models.ModRef, scratchDir string) ([]cache.Entry, []Failure, error) {
	if entries := c.Lookup(mod.Name); len(entries) > 0 {
		return entries, nil, nil
	}

	pakDir := filepath.Join(mod.Path, models.PakFilesDir)
	archives, err := extract.ListArchives(pakDir)
	if err != nil {
		return nil, nil, err
	}

	var failures []Failure
	for _, archive := range archives {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		meta, err := r.extractor.Extract(ctx, filepath.Join(pakDir, archive), filepath.Join(scratchDir, archive))
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, nil, ctxErr
			}
			r.logger.Error("Failed to read archive metadata",
				zap.String("mod", mod.Name),
				zap.String("archive", archive),
				zap.Error(err),
			)
			failures = append(failures, Failure{Mod: mod.Name, Archive: archive, Error: err.Error()})
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		outcome := c.Upsert(archive, meta, mod.Name)
		r.logger.Debug("Cached archive metadata",
			zap.String("mod", mod.Name),
			zap.String("archive", archive),
			zap.String("outcome", string(outcome)),
			zap.Bool("override", meta.IsOverride()),
		)
	}

	return c.Lookup(mod.Name), failures, nil
}

// ResolveInto resolves mod against the repository in one read-modify-write.
func (r *Resolver) ResolveInto(ctx context.Context, repo *cache.Repository, mod models.ModRef, scratchDir string) ([]cache.Entry, []Failure, error) {
	var (
		entries  []cache.Entry
		failures []Failure
	)
	err := repo.Update(func(c cache.Cache) error {
		var err error
		entries, failures, err = r.Resolve(ctx, c, mod, scratchDir)
		return err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve mod %s: %w", mod.Name, err)
	}
	return entries, failures, nil
}
