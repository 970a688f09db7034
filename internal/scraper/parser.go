// internal/scraper/parser.go
package scraper

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/encoding/htmlindex"
)

// ParseMarkup parses an HTML stream in the given character encoding.
// An empty encoding or any UTF-8 label parses the bytes as-is.
func ParseMarkup(r io.Reader, encoding string) (*goquery.Document, error) {
	decoded, err := decodeReader(r, encoding)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(decoded)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return r, nil
	}

	enc, err := htmlindex.Get(encoding)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", encoding, err)
	}
	return enc.NewDecoder().Reader(r), nil
}
