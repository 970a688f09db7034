// internal/scraper/parser_test.go
package scraper

import (
	"strings"
	"testing"

	"golang.org/x/text/encoding/htmlindex"
)

func TestParseMarkup(t *testing.T) {
	enc, err := htmlindex.Get("koi8-r")
	if err != nil {
		t.Fatalf("encoding lookup: %v", err)
	}
	encoded, err := enc.NewEncoder().String("<title>Ой!</title>")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		encoding string
		want     string
	}{
		{"utf-8", "<title>Ой!</title>", "utf-8", "Ой!"},
		{"no encoding", "<title>Oops!</title>", "", "Oops!"},
		{"koi8-r", encoded, "KOI8-R", "Ой!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseMarkup(strings.NewReader(tt.input), tt.encoding)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := doc.Find("title").Text(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseMarkup_UnknownEncoding(t *testing.T) {
	if _, err := ParseMarkup(strings.NewReader("<p>x</p>"), "no-such-charset"); err == nil {
		t.Error("expected an error for an unknown encoding")
	}
}
