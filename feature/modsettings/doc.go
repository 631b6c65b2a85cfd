// Package modsettings connects the host mod manager's lifecycle callbacks to the load order core.
//
// The sub-packages do the work:
//
//   - models: roster entries, archive metadata, profile and game paths.
//   - lsx: the meta.lsx and modsettings.lsx codec.
//   - extract: the Divine tool wrapper.
//   - cache: the per-profile modsCache.json repository.
//   - reconcile: pruning of references to mods that left the roster.
//   - synth: the load order synthesizer.
//   - history: the optional record of synthesis runs.
//
// # Callbacks
//
//   - profile created / UI initialized: the profile cache is created when missing.
//   - mod installed: the mod's archives are extracted and cached.
//   - mod removed: the mod is dropped from the cache.
//   - about to run: modsettings.lsx is written for the roster.
//
// # HTTP Endpoints
//
//   - POST /modsettings/:profile/init
//   - POST /modsettings/:profile/installed
//   - POST /modsettings/:profile/removed
//   - POST /modsettings/:profile/generate
//   - POST /modsettings/:profile/prune (supports ?dry_run=true and ?confirm=true)
//   - GET /modsettings/:profile/cache
//
// Writers of one profile's cache are serialized. Identical concurrent generate requests share a
// single pass.
package modsettings
