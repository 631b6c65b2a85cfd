// Package scriptextender moves Script Extender output back into the host's overwrite folder.
//
// While the game runs, the Script Extender writes its configuration under the game's app
// data directory. After the game exits, Relocate moves that content into
// <overwrite>/SE_CONFIG so the host tracks it like any other mod file:
//
//   - a sub-directory keeps its name and inner structure,
//   - a loose file lands in a folder named after the directory that held it,
//   - emptied source directories are removed.
//
// A missing source directory is not an error.
package scriptextender
