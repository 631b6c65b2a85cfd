package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnknownProfile is returned for profile names that are invalid or have no directory.
var ErrUnknownProfile = errors.New("unknown profile")

// Profiles resolves host profile names to directories under Root.
type Profiles struct {
	Root string
}

// Path returns the directory of name without checking that it exists.
func (p Profiles) Path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return filepath.Join(p.Root, name), nil
}

// Dir returns the directory of an existing profile.
func (p Profiles) Dir(name string) (string, error) {
	dir, err := p.Path(name)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrUnknownProfile, name)
	}
	return dir, nil
}

// Ensure creates the profile directory when missing and returns it.
func (p Profiles) Ensure(name string) (string, error) {
	dir, err := p.Path(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create profile %s: %w", name, err)
	}
	return dir, nil
}

// ModSettings returns the load order path of an existing profile.
func (p Profiles) ModSettings(name string) (string, error) {
	dir, err := p.Dir(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ModSettingsFile), nil
}
