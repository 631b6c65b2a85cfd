// Package synth builds a profile's modsettings.lsx from the host roster and the metadata cache.
//
// A pass runs in six steps:
//
//  1. The cache is pruned against the roster (see package reconcile).
//  2. Every roster mod, enabled or not, is resolved in priority order. Cache misses are
//     filled by extracting the archives found under the mod's PAK_FILES folder.
//  3. A document holding only the base module is started.
//  4. Enabled mods append their resolved archives, skipping override records.
//  5. The document is written atomically to the profile.
//  6. The scratch directory is removed. Cleanup errors are logged only.
//
// A descriptor that cannot be parsed is reported in Result.Failures and its archive is left out
// of both the document and the cache, so the next pass retries it.
package synth
