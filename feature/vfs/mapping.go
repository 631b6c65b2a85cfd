package vfs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"bg3-modsettings/core/utils"
	"bg3-modsettings/feature/modsettings/models"

	"go.uber.org/zap"
)

// Mapping links a source inside a mod or profile to its destination in the game tree.
type Mapping struct {
	Source       string `json:"source"`
	Destination  string `json:"destination"`
	IsDirectory  bool   `json:"is_directory"`
	CreateTarget bool   `json:"create_target"`
	// Mod is the owning mod, empty for the profile mapping.
	Mod string `json:"mod,omitempty"`
}

// Mapper builds mappings against the game's per-user directories.
type Mapper struct {
	paths  models.GamePaths
	logger *zap.Logger
}

// NewMapper creates a mapper for paths.
func NewMapper(paths models.GamePaths, logger *zap.Logger) *Mapper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mapper{paths: paths, logger: logger}
}

// Paths returns the game paths mappings target.
func (m *Mapper) Paths() models.GamePaths {
	return m.paths
}

// Mappings returns the mappings of the enabled roster mods followed by the profile's load order.
func (m *Mapper) Mappings(mods models.ModList, profileDir string) ([]Mapping, error) {
	var out []Mapping
	for _, mod := range mods.ByPriority() {
		if !mod.IsActive() {
			continue
		}

		paks, err := walk(filepath.Join(mod.Path, models.PakFilesDir), m.paths.Mods(), false)
		if err != nil {
			return nil, fmt.Errorf("failed to map %s: %w", mod.Name, err)
		}
		se, err := walk(filepath.Join(mod.Path, models.ScriptExtenderDir), m.paths.ScriptExtender(), true)
		if err != nil {
			return nil, fmt.Errorf("failed to map %s: %w", mod.Name, err)
		}

		for _, mp := range append(paks, se...) {
			mp.Mod = mod.Name
			out = append(out, mp)
		}
	}

	out = append(out, Mapping{
		Source:      filepath.Join(profileDir, models.ModSettingsFile),
		Destination: filepath.Join(m.paths.Documents(), models.ModSettingsFile),
	})

	m.logger.Debug("Computed VFS mappings", zap.Int("count", len(out)))
	return out, nil
}

// EnsureTargets creates the Mods and Script Extender directories mappings are projected into.
func (m *Mapper) EnsureTargets() error {
	for _, dir := range []string{m.paths.ScriptExtender(), m.paths.Mods()} {
		if err := os.MkdirAll(utils.LongPath(dir), 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// walk maps everything below root to the same relative path below dest.
// Directories are included only when withDirs is set. A missing root yields nothing.
func walk(root, dest string, withDirs bool) ([]Mapping, error) {
	var out []Mapping
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if d.IsDir() && !withDirs {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out = append(out, Mapping{
			Source:       path,
			Destination:  filepath.Join(dest, rel),
			IsDirectory:  d.IsDir(),
			CreateTarget: true,
		})
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return out, nil
}
