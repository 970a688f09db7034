// internal/utils/utils.go
package utils

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// TimestampLayout renders timestamps as dd-MM-yyyy_HH-mm-ss.
const TimestampLayout = "02-01-2006_15-04-05"

// GenerateTimestampedFileName builds "<prefix><timestamp>.<ext>" for default output names.
// Two calls within the same second produce the same name.
func GenerateTimestampedFileName(prefix string, at time.Time, ext string) string {
	return fmt.Sprintf("%s%s.%s", prefix, at.Format(TimestampLayout), strings.TrimPrefix(ext, "."))
}

// ResolveURL resolves ref against base the way a browser resolves an href.
// An empty ref resolves to "", and an unparseable ref is returned unchanged.
func ResolveURL(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if base == nil {
		return ref
	}
	u, err := base.Parse(ref)
	if err != nil {
		return ref
	}
	return u.String()
}

// StripQuery removes the query string and fragment from a link.
func StripQuery(link string) string {
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		return link[:i]
	}
	return link
}

// CleanText trims and collapses runs of whitespace into single spaces.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// DetectEncoding extracts the charset from a Content-Type header, defaulting to utf-8.
func DetectEncoding(contentType string, body []byte) string {
	if contentType != "" {
		parts := strings.Split(strings.ToLower(contentType), "charset=")
		if len(parts) > 1 {
			charset := strings.TrimSpace(parts[1])
			charset = strings.Split(charset, ";")[0]
			return strings.Trim(charset, `"'`)
		}
	}

	// Check for BOM
	if len(body) >= 3 {
		if body[0] == 0xEF && body[1] == 0xBB && body[2] == 0xBF {
			return "utf-8"
		}
	}

	return "utf-8"
}
