// internal/output/json.go
package output

import (
	"os"

	"github.com/moreffnest/weblist-parsers/pkg/types"
)

// JSONWriter writes entries as an indented JSON array
type JSONWriter struct {
	filename string
	file     *os.File
}

// NewJSONWriter creates a new JSON writer
func NewJSONWriter(filename string) (*JSONWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}

	return &JSONWriter{
		filename: filename,
		file:     file,
	}, nil
}

// WriteEntries writes entries to the JSON file
func (w *JSONWriter) WriteEntries(entries []types.Entry) error {
	if entries == nil {
		entries = []types.Entry{}
	}
	return encodeJSON(w.file, entries)
}

// Close closes the JSON writer
func (w *JSONWriter) Close() error {
	if w.file != nil {
		err := w.file.Close()
		w.file = nil
		return err
	}
	return nil
}
