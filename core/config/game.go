package config

import (
	"path/filepath"
	"time"
)

// GameConfig holds the game installation and extraction settings.
type GameConfig struct {
	// ToolPath is the Divine executable used to extract archive descriptors.
	ToolPath string `mapstructure:"tool_path" default:"tools/divine.exe"`
	// GameID is the game profile passed to the tool.
	GameID string `mapstructure:"game_id" default:"bg3"`
	// ScratchDir is where archives are extracted. Empty means the system temp dir.
	ScratchDir string `mapstructure:"scratch_dir" default:""`
	// ProfilesDir holds one directory per host profile.
	ProfilesDir string `mapstructure:"profiles_dir" default:"profiles"`
	// AppDataDir is the game's local app data directory. Empty derives it from LOCALAPPDATA.
	AppDataDir string `mapstructure:"app_data_dir" default:""`
	// OverwriteDir is the host's overwrite folder receiving relocated Script Extender files.
	OverwriteDir string `mapstructure:"overwrite_dir" default:"overwrite"`
	// ExtractTimeoutSeconds bounds one tool invocation. Zero means no bound.
	ExtractTimeoutSeconds int `mapstructure:"extract_timeout_seconds" default:"120"`
}

// ProfileDir returns the directory of the named profile.
func (g GameConfig) ProfileDir(profile string) string {
	return filepath.Join(g.ProfilesDir, profile)
}

// ExtractTimeout returns ExtractTimeoutSeconds as a duration.
func (g GameConfig) ExtractTimeout() time.Duration {
	if g.ExtractTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(g.ExtractTimeoutSeconds) * time.Second
}
