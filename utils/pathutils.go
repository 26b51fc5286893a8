package utils

import (
	"path/filepath"
	"strings"
)

// SanitizeFileName turns an identifier received from a catalog into a single
// safe path component. Separators, traversal segments and volume names are
// flattened so the result can never leave the directory it is joined to.
func SanitizeFileName(name string) string {
	p := filepath.ToSlash(filepath.Clean(name))

	if vol := filepath.VolumeName(p); vol != "" {
		p = strings.TrimPrefix(p, vol)
	}

	parts := strings.Split(p, "/")
	kept := parts[:0]
	for _, part := range parts {
		if part == "" || part == "." || part == ".." {
			continue
		}
		kept = append(kept, strings.ReplaceAll(part, ":", "_"))
	}

	if len(kept) == 0 {
		return "_"
	}
	return strings.Join(kept, "_")
}
