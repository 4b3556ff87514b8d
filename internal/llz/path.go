package llz

import (
	"path/filepath"
	"strings"
)

// OutputPath picks the LLZ file name for a run over gridPath.
//
// With no explicit name the last four characters of gridPath (normally a
// ".pfm" style extension) are replaced by Extension. An explicit name is
// used as given, with Extension appended when it does not already end in it.
func OutputPath(gridPath, explicit string) string {
	if explicit != "" {
		if strings.HasSuffix(explicit, Extension) {
			return explicit
		}
		return explicit + Extension
	}

	name := []rune(gridPath)
	if len(name) < 4 {
		return gridPath + Extension
	}
	return string(name[:len(name)-4]) + Extension
}

// SourceDescription is the [SOURCE] text for files derived from gridPath.
func SourceDescription(gridPath string) string {
	return "Derived from " + filepath.Base(gridPath)
}
