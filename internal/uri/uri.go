// Package uri provides file URI generation for discovered paths.
package uri

import (
	"net/url"
	"path/filepath"
	"strings"
)

// FileURI generates a file URI for an absolute path.
// Uses the triple slash form: file:///absolute/path/to/file
func FileURI(absPath string) string {
	slashed := filepath.ToSlash(absPath)

	slashed = strings.TrimPrefix(slashed, "/")

	parts := strings.Split(slashed, "/")
	for i, part := range parts {
		// Windows volume names keep their colon unescaped
		if i == 0 && len(part) == 2 && part[1] == ':' {
			continue
		}
		parts[i] = url.PathEscape(part)
	}

	return "file:///" + strings.Join(parts, "/")
}
