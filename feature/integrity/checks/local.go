package checks

import (
	"fmt"
	"os"

	"bg3-modsettings/core/utils"
	"bg3-modsettings/feature/modsettings/cache"
	"bg3-modsettings/feature/modsettings/extract"
)

// Check names.
const (
	NameTool    = "tool"
	NameScratch = "scratch"
	NameProfile = "profile"
	NameCache   = "cache"
	NameBucket  = "bucket"
)

// CheckTool verifies that the extraction tool is present.
func CheckTool(path string) Result {
	if path == "" {
		return failed(NameTool, fmt.Errorf("%w: no tool path configured", extract.ErrToolNotFound))
	}
	if !utils.FileExists(utils.LongPath(path)) {
		return failed(NameTool, fmt.Errorf("%w: %s", extract.ErrToolNotFound, path))
	}
	return passed(NameTool, path)
}

// CheckScratch verifies that extraction directories can be created under dir.
func CheckScratch(dir string) Result {
	if dir != "" {
		if err := os.MkdirAll(utils.LongPath(dir), 0o755); err != nil {
			return failed(NameScratch, err)
		}
	}
	probe, err := os.MkdirTemp(dir, "integrity-*")
	if err != nil {
		return failed(NameScratch, err)
	}
	if err := os.Remove(probe); err != nil {
		return failed(NameScratch, err)
	}
	if dir == "" {
		return passed(NameScratch, os.TempDir())
	}
	return passed(NameScratch, dir)
}

// CheckWritable verifies that files can be created in the profile directory.
func CheckWritable(dir string) Result {
	f, err := os.CreateTemp(utils.LongPath(dir), ".integrity-*")
	if err != nil {
		return failed(NameProfile, err)
	}
	name := f.Name()
	_ = f.Close()
	if err := os.Remove(name); err != nil {
		return failed(NameProfile, err)
	}
	return passed(NameProfile, dir)
}

// CheckCache verifies that the profile's cache file parses.
func CheckCache(profileDir string) Result {
	repo := cache.ForProfile(profileDir)
	if !utils.FileExists(utils.LongPath(repo.Path())) {
		return skipped(NameCache, "no cache file yet")
	}
	c, err := repo.Load()
	if err != nil {
		return failed(NameCache, err)
	}
	return passed(NameCache, fmt.Sprintf("%d archives, %d mods", len(c), len(c.ModNames())))
}
