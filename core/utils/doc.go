// Package utils provides small file-system helpers shared by the bg3-modsettings packages:
// atomic file replacement and Windows long-path escaping.
package utils
