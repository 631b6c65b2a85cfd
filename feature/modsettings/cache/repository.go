package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"bg3-modsettings/core/utils"
	"bg3-modsettings/feature/modsettings/models"
)

// ErrCorruptCache is returned when the cache file exists but does not hold a JSON object.
var ErrCorruptCache = errors.New("corrupt mods cache")

// Repository owns one profile's cache file.
type Repository struct {
	path string
}

// NewRepository returns a repository for the cache file at path.
func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

// ForProfile returns the repository for the cache inside profileDir.
func ForProfile(profileDir string) *Repository {
	return NewRepository(filepath.Join(profileDir, models.ModsCacheFile))
}

// Path returns the cache file path.
func (r *Repository) Path() string {
	return r.path
}

// Load reads the cache. A missing file yields an empty cache.
func (r *Repository) Load() (Cache, error) {
	data, err := os.ReadFile(utils.LongPath(r.path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Cache{}, nil
		}
		return nil, fmt.Errorf("failed to read mods cache: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return Cache{}, nil
	}

	c := Cache{}
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptCache, r.path, err)
	}
	if c == nil {
		c = Cache{}
	}
	return c, nil
}

// Save writes c in full, dropping archives nobody references.
func (r *Repository) Save(c Cache) error {
	c.compact()
	data, err := utils.MarshalJSONStable(c)
	if err != nil {
		return fmt.Errorf("failed to encode mods cache: %w", err)
	}
	if err := utils.WriteFileAtomic(utils.LongPath(r.path), data, 0o644); err != nil {
		return fmt.Errorf("failed to write mods cache: %w", err)
	}
	return nil
}

// Update loads the cache, applies fn and saves the result. Nothing is written when fn fails.
func (r *Repository) Update(fn func(Cache) error) error {
	c, err := r.Load()
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}
	return r.Save(c)
}

// Lookup returns the archives referenced by modName.
func (r *Repository) Lookup(modName string) ([]Entry, error) {
	c, err := r.Load()
	if err != nil {
		return nil, err
	}
	return c.Lookup(modName), nil
}

// Upsert records archiveID for modName and persists the change.
func (r *Repository) Upsert(archiveID string, meta models.ArchiveMetadata, modName string) (UpsertOutcome, error) {
	var outcome UpsertOutcome
	err := r.Update(func(c Cache) error {
		outcome = c.Upsert(archiveID, meta, modName)
		return nil
	})
	return outcome, err
}

// RemoveMod drops modName from the cache and persists the change.
func (r *Repository) RemoveMod(modName string) ([]string, error) {
	var deleted []string
	err := r.Update(func(c Cache) error {
		deleted = c.RemoveMod(modName)
		return nil
	})
	return deleted, err
}

// Init creates an empty cache file when none exists. It reports whether a file was created.
func (r *Repository) Init() (bool, error) {
	if _, err := os.Stat(utils.LongPath(r.path)); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to stat mods cache: %w", err)
	}
	if err := r.Save(Cache{}); err != nil {
		return false, err
	}
	return true, nil
}

// Reset replaces the cache with an empty one, discarding any content, corrupt or not.
func (r *Repository) Reset() error {
	return r.Save(Cache{})
}
