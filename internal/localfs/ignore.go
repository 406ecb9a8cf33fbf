package localfs

import (
	"path/filepath"
	"strings"
)

// ignored reports whether any path segment matches one of the ignore
// patterns. Matching per segment keeps everything under an ignored
// directory out of the index.
func ignored(path string, patterns []string) bool {
	parts := strings.Split(filepath.ToSlash(path), "/")

	for _, part := range parts {
		for _, pattern := range patterns {
			matched, err := filepath.Match(pattern, part)
			if err == nil && matched {
				return true
			}
		}
	}

	return false
}
