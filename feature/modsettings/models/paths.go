package models

import (
	"os"
	"path/filepath"
)

// Folder names inside a mod and inside the game's per-user directory.
const (
	PakFilesDir        = "PAK_FILES"
	ScriptExtenderDir  = "SE_CONFIG"
	GameModsDir        = "Mods"
	GameScriptExtender = "Script Extender"
	ModSettingsFile    = "modsettings.lsx"
	ModsCacheFile      = "modsCache.json"
)

// GamePaths locates the game's per-user directories.
type GamePaths struct {
	// AppData is ".../Larian Studios/Baldur's Gate 3".
	AppData string
}

// NewGamePaths returns paths rooted at appData. When appData is empty the
// LOCALAPPDATA environment variable is used.
func NewGamePaths(appData string) GamePaths {
	if appData == "" {
		appData = filepath.Join(os.Getenv("LOCALAPPDATA"), "Larian Studios", "Baldur's Gate 3")
	}
	return GamePaths{AppData: appData}
}

// Mods is where archives are projected for the game.
func (p GamePaths) Mods() string {
	return filepath.Join(p.AppData, GameModsDir)
}

// ScriptExtender is the Script Extender's config directory.
func (p GamePaths) ScriptExtender() string {
	return filepath.Join(p.AppData, GameScriptExtender)
}

// Documents is the public player profile directory the game reads modsettings.lsx from.
func (p GamePaths) Documents() string {
	return filepath.Join(p.AppData, "PlayerProfiles", "Public")
}

// ModSettings is the game's load order document path.
func (p GamePaths) ModSettings() string {
	return filepath.Join(p.Documents(), ModSettingsFile)
}
