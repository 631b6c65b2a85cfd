// Package vfs computes the file mappings the host's virtual file system projects into the game.
//
// For every enabled mod, in priority order:
//
//   - each file under PAK_FILES/ maps to <appdata>/Mods/<relative path>,
//   - each directory and file under SE_CONFIG/ maps to <appdata>/Script Extender/<relative path>.
//
// The profile's modsettings.lsx is always mapped last onto the game's public player profile.
package vfs
