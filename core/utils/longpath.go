package utils

import (
	"path/filepath"
	"runtime"
	"strings"
)

// maxShortPath is the longest path Windows accepts without the extended-length prefix.
const maxShortPath = 255

const extendedPrefix = `\\?\`

// LongPath escapes path with the Windows extended-length prefix when it would otherwise exceed
// the legacy MAX_PATH limit. On other platforms the path is returned unchanged.
func LongPath(path string) string {
	return longPathFor(runtime.GOOS, path)
}

func longPathFor(goos, path string) string {
	if goos != "windows" || len(path) <= maxShortPath || strings.HasPrefix(path, extendedPrefix) {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return extendedPrefix + abs
}
