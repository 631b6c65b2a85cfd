package synth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"bg3-modsettings/core/utils"
	"bg3-modsettings/feature/modsettings/cache"
	"bg3-modsettings/feature/modsettings/extract"
	"bg3-modsettings/feature/modsettings/lsx"
	"bg3-modsettings/feature/modsettings/models"
	"bg3-modsettings/feature/modsettings/reconcile"

	"go.uber.org/zap"
)

// Config holds the paths of one profile's synthesis.
type Config struct {
	// ScratchDir is the parent of per-run extraction directories. Empty means the system temp dir.
	ScratchDir string
	// OutputPath is the modsettings.lsx file to write.
	OutputPath string
}

// Result describes one synthesis pass.
type Result struct {
	// Document is the load order that was written.
	Document *lsx.Document `json:"-"`
	// Path is where the document was written.
	Path string `json:"path"`
	// Digest is the hex SHA-256 of the written bytes.
	Digest string `json:"digest"`
	// Modules is the number of emitted modules, base module excluded.
	Modules int `json:"modules"`
	// Skipped lists roster mods that resolved to no archives.
	Skipped []string `json:"skipped"`
	// Overrides lists archives held back because their metadata is the override record.
	Overrides []string `json:"overrides"`
	// Failures lists archives whose descriptor could not be read.
	Failures []Failure `json:"failures"`
	// Pruned summarizes the reconciliation that opened the pass.
	Pruned reconcile.PlanSummary `json:"pruned"`
	// Duration is the wall time of the pass.
	Duration time.Duration `json:"duration"`
}

// Synthesizer writes load orders for one profile.
type Synthesizer struct {
	repo     *cache.Repository
	resolver *Resolver
	cfg      Config
	logger   *zap.Logger
}

// New creates a synthesizer for the profile whose cache is repo.
func New(cfg Config, repo *cache.Repository, extractor extract.Extractor, logger *zap.Logger) *Synthesizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synthesizer{
		repo:     repo,
		resolver: NewResolver(extractor, logger),
		cfg:      cfg,
		logger:   logger,
	}
}

// Synthesize runs a full pass for the roster mods and writes the resulting document.
func (s *Synthesizer) Synthesize(ctx context.Context, mods models.ModList) (*Result, error) {
	start := time.Now()
	result := &Result{Path: s.cfg.OutputPath}

	plan, err := reconcile.Prune(s.repo, mods.Names())
	if err != nil {
		return nil, err
	}
	result.Pruned = plan.Summary
	if !plan.Empty() {
		s.logger.Info("Pruned stale cache references",
			zap.Int("stale_references", plan.Summary.StaleReferences),
			zap.Int("deleted_archives", plan.Summary.DeletedArchives),
			zap.Strings("stale_mods", plan.Summary.StaleMods),
		)
	}

	if s.cfg.ScratchDir != "" {
		if err := os.MkdirAll(utils.LongPath(s.cfg.ScratchDir), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create scratch directory: %w", err)
		}
	}
	scratch, err := os.MkdirTemp(s.cfg.ScratchDir, "extract-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer s.cleanup(scratch)

	ordered := mods.ByPriority()
	resolved := make(map[string][]cache.Entry, len(ordered))
	err = s.repo.Update(func(c cache.Cache) error {
		for _, mod := range ordered {
			entries, failures, err := s.resolver.Resolve(ctx, c, mod, scratch)
			if err != nil {
				return err
			}
			result.Failures = append(result.Failures, failures...)
			if len(entries) == 0 {
				result.Skipped = append(result.Skipped, mod.Name)
				continue
			}
			resolved[mod.Name] = entries
		}
		return ctx.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve roster: %w", err)
	}

	doc := lsx.NewDocument()
	for _, mod := range ordered {
		if !mod.IsActive() {
			continue
		}
		for _, entry := range resolved[mod.Name] {
			if entry.Metadata.IsOverride() {
				result.Overrides = append(result.Overrides, entry.ArchiveID)
				continue
			}
			if err := doc.AddModule(entry.Metadata); err != nil {
				if errors.Is(err, lsx.ErrMissingUUID) {
					s.logger.Warn("Skipping archive without UUID",
						zap.String("mod", mod.Name),
						zap.String("archive", entry.ArchiveID),
					)
					continue
				}
				return nil, err
			}
		}
	}

	data, err := doc.MarshalIndent()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := utils.WriteFileAtomic(utils.LongPath(s.cfg.OutputPath), data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write load order: %w", err)
	}

	sum := sha256.Sum256(data)
	result.Document = doc
	result.Digest = hex.EncodeToString(sum[:])
	result.Modules = doc.Len() - 1
	result.Duration = time.Since(start)

	s.logger.Info("Load order written",
		zap.String("path", s.cfg.OutputPath),
		zap.Int("modules", result.Modules),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("failures", len(result.Failures)),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}

// Resolver returns the resolver used for cache misses.
func (s *Synthesizer) Resolver() *Resolver {
	return s.resolver
}

func (s *Synthesizer) cleanup(dir string) {
	if err := os.RemoveAll(utils.LongPath(dir)); err != nil {
		s.logger.Warn("Failed to remove scratch directory", zap.String("dir", dir), zap.Error(err))
	}
}
