package cache

import (
	"maps"
	"slices"

	"bg3-modsettings/feature/modsettings/models"
)

// Cache maps archive filenames to their metadata.
type Cache map[string]models.ArchiveMetadata

// Entry is one archive of a Lookup result.
type Entry struct {
	ArchiveID string                 `json:"archive_id"`
	Metadata  models.ArchiveMetadata `json:"metadata"`
}

// UpsertOutcome describes what Upsert changed.
type UpsertOutcome string

const (
	// OutcomeInserted means the archive was new.
	OutcomeInserted UpsertOutcome = "inserted"
	// OutcomeReferenced means the mod was added to an existing archive's references.
	OutcomeReferenced UpsertOutcome = "referenced"
	// OutcomeVersionUpdated means the stored version fields were replaced.
	OutcomeVersionUpdated UpsertOutcome = "version_updated"
	// OutcomeUnchanged means nothing changed.
	OutcomeUnchanged UpsertOutcome = "unchanged"
)

// Lookup returns every archive referenced by modName, sorted by archive id.
func (c Cache) Lookup(modName string) []Entry {
	var entries []Entry
	for _, id := range c.ArchiveIDs() {
		meta := c[id]
		if meta.HasMod(modName) {
			entries = append(entries, Entry{ArchiveID: id, Metadata: meta.Clone()})
		}
	}
	return entries
}

// Upsert records that modName packages archiveID with the given metadata.
// New archives are inserted with modName as their only reference. Existing archives gain modName
// if it is missing, and take meta's version fields when they differ; other fields are kept.
func (c Cache) Upsert(archiveID string, meta models.ArchiveMetadata, modName string) UpsertOutcome {
	existing, ok := c[archiveID]
	if !ok {
		rec := meta.Clone()
		rec.ModNames = []string{modName}
		c[archiveID] = rec
		return OutcomeInserted
	}

	outcome := OutcomeUnchanged
	if existing.AddMod(modName) {
		outcome = OutcomeReferenced
	}
	if !existing.SameVersion(meta) {
		existing = existing.WithVersionOf(meta)
		outcome = OutcomeVersionUpdated
	}
	c[archiveID] = existing
	return outcome
}

// RemoveMod drops modName from every archive and deletes archives left unreferenced.
// It returns the ids of the deleted archives.
func (c Cache) RemoveMod(modName string) []string {
	var deleted []string
	for _, id := range c.ArchiveIDs() {
		meta := c[id]
		if !meta.RemoveMod(modName) {
			continue
		}
		if meta.Referenced() {
			c[id] = meta
			continue
		}
		delete(c, id)
		deleted = append(deleted, id)
	}
	return deleted
}

// ArchiveIDs returns the archive ids in sorted order.
func (c Cache) ArchiveIDs() []string {
	return slices.Sorted(maps.Keys(c))
}

// ModNames returns every mod name referenced by the cache, sorted.
func (c Cache) ModNames() []string {
	seen := make(map[string]struct{})
	for _, meta := range c {
		for _, name := range meta.ModNames {
			seen[name] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// compact deletes unreferenced archives.
func (c Cache) compact() {
	for id, meta := range c {
		if !meta.Referenced() {
			delete(c, id)
		}
	}
}
