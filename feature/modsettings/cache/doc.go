// Package cache persists archive metadata per profile.
//
// The cache is a single JSON object (modsCache.json in the profile directory) mapping archive
// filenames to models.ArchiveMetadata. Every mutating Repository call loads the file, applies one
// change and writes the whole file back through a temp file and rename, so a crash never leaves a
// truncated cache behind.
//
// Only one process is expected to use a profile at a time; Repository does no cross-process locking.
//
// # Invariants
//
//   - An archive with no referencing mods is never written.
//   - A missing file reads as an empty cache.
//   - A file that is not valid JSON is reported as ErrCorruptCache and left untouched.
package cache
