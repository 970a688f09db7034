// internal/history/format.go
package history

import (
	"path/filepath"
	"strings"

	weberrors "github.com/moreffnest/weblist-parsers/internal/errors"
)

// Format is the layout of a watch-history export
type Format int

const (
	// FormatHTML is the "watch-history.html" page of a Takeout export.
	FormatHTML Format = iota
	// FormatJSON is a JSON array of watch events, canonical or Takeout-shaped.
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatHTML:
		return "html"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// FormatFromExtension picks the format from a file name's extension
func FormatFromExtension(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".html", ".htm":
		return FormatHTML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return 0, weberrors.InvalidFileExtension(ext)
	}
}

// ParseFormat reads a format name such as "html" or "json"
func ParseFormat(name string) (Format, error) {
	return FormatFromExtension("." + strings.TrimPrefix(strings.TrimSpace(name), "."))
}
