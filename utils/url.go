package utils

import (
	"path/filepath"
	"strings"
)

// IsPlaylistFile reports whether name has an .m3u or .m3u8 extension.
func IsPlaylistFile(name string) bool {
	nameClean := strings.TrimSpace(strings.ToLower(name))

	return strings.HasSuffix(nameClean, ".m3u") || strings.HasSuffix(nameClean, ".m3u8")
}

// SplitExt splits a file name at its last dot. The extension keeps no dot;
// a name without a dot has an empty extension.
func SplitExt(name string) (base, ext string) {
	name = filepath.Base(name)
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return name, ""
	}
	return name[:idx], name[idx+1:]
}
