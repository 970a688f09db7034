// internal/output/yaml.go
package output

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/moreffnest/weblist-parsers/pkg/types"
)

// YAMLWriter writes entries as a YAML sequence
type YAMLWriter struct {
	file    *os.File
	encoder *yaml.Encoder
}

// NewYAMLWriter creates a new YAML writer
func NewYAMLWriter(filename string) (*YAMLWriter, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)

	return &YAMLWriter{file: file, encoder: encoder}, nil
}

// WriteEntries writes entries as one YAML document
func (w *YAMLWriter) WriteEntries(entries []types.Entry) error {
	if entries == nil {
		entries = []types.Entry{}
	}
	if err := w.encoder.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}

// Close flushes the encoder and closes the file
func (w *YAMLWriter) Close() error {
	if w.encoder != nil {
		if err := w.encoder.Close(); err != nil {
			w.file.Close()
			return err
		}
		w.encoder = nil
	}
	if w.file != nil {
		err := w.file.Close()
		w.file = nil
		return err
	}
	return nil
}
