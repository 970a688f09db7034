// internal/output/csv.go
package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/moreffnest/weblist-parsers/pkg/types"
)

// CSVWriter writes entries as title,link rows under a header
type CSVWriter struct {
	filename string
	file     *os.File
	writer   *csv.Writer
	header   bool
}

// NewCSVWriter creates a new CSV writer
func NewCSVWriter(filename string) (*CSVWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}

	return &CSVWriter{
		filename: filename,
		file:     file,
		writer:   csv.NewWriter(file),
	}, nil
}

// WriteEntries writes entries to the CSV file
func (w *CSVWriter) WriteEntries(entries []types.Entry) error {
	if !w.header {
		if err := w.writer.Write([]string{"title", "link"}); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		w.header = true
	}

	for _, e := range entries {
		if err := w.writer.Write([]string{e.Title, e.Link}); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	w.writer.Flush()
	return w.writer.Error()
}

// Close closes the CSV writer
func (w *CSVWriter) Close() error {
	if w.writer != nil {
		w.writer.Flush()
		w.writer = nil
	}
	if w.file != nil {
		err := w.file.Close()
		w.file = nil
		return err
	}
	return nil
}
