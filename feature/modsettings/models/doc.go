// Package models defines the records shared by the mod settings packages.
//
// # Records
//
//   - TypedValue: a descriptor attribute value together with its serialization type tag.
//   - ArchiveMetadata: the identity of one .pak archive plus the mods currently packaging it.
//   - ModRef / ModList: the host manager's mod roster as seen at the moment of a callback.
//   - GamePaths: the game's per-user directories that mappings and relocation target.
//
// The override sentinel (OverrideMetadata) stands for an archive whose descriptor could not be
// extracted. It is cached like any other record but never written to the load order.
package models
