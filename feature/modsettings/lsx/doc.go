// Package lsx reads and writes the game's LSX documents.
//
// LSX is the game's XML dialect: a <save> root with a <version> header and <region> elements holding
// trees of <node id="..."> elements whose values live in <attribute id value type> children.
//
// Two documents matter here:
//
//   - meta.lsx, embedded in every mod archive. ParseMeta extracts the ModuleInfo attributes that
//     identify the archive.
//   - modsettings.lsx, the load order. Document models it as an ordered list of module UUIDs plus a
//     parallel list of module descriptions, always starting with the base game module.
package lsx
