// internal/output/manager.go
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/moreffnest/weblist-parsers/internal/config"
	"github.com/moreffnest/weblist-parsers/internal/utils"
	"github.com/moreffnest/weblist-parsers/pkg/types"
)

// NewWriter returns the writer for cfg.Format. File formats need cfg.File.
func NewWriter(cfg Config) (Writer, error) {
	if !config.IsDatabaseFormat(cfg.Format) && cfg.File == "" {
		return nil, fmt.Errorf("output file is required for %s output", cfg.Format)
	}

	switch cfg.Format {
	case config.FormatJSON, "":
		return NewJSONWriter(cfg.File)
	case config.FormatCSV:
		return NewCSVWriter(cfg.File)
	case config.FormatYAML:
		return NewYAMLWriter(cfg.File)
	case config.FormatExcel:
		return NewExcelWriter(cfg.File)
	case config.FormatSQLite:
		path := cfg.DSN
		if path == "" {
			path = cfg.File
		}
		return NewSQLiteWriter(path, cfg.Table)
	case config.FormatPostgreSQL:
		return NewPostgreSQLWriter(cfg.DSN, cfg.Table, cfg.BatchSize)
	case config.FormatMySQL:
		return NewMySQLWriter(cfg.DSN, cfg.Table, cfg.BatchSize)
	case config.FormatMongoDB:
		collection := cfg.Collection
		if collection == "" {
			collection = cfg.Table
		}
		return NewMongoDBWriter(cfg.DSN, cfg.Database, collection, cfg.BatchSize)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", cfg.Format)
	}
}

// Manager writes entry sets according to the output configuration
type Manager struct {
	config Config
	dir    string
}

// NewManager creates a new output manager
func NewManager(cfg *config.OutputConfig) (*Manager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("output configuration is required")
	}
	return &Manager{config: ConfigFrom(cfg), dir: cfg.Dir}, nil
}

// Target returns where the next Write goes: a file path for file formats and
// SQLite (a timestamped default when none is configured), or the format name
// for server databases.
func (m *Manager) Target() string {
	switch {
	case m.serverDatabase():
		return m.config.Format
	case m.config.Format == config.FormatSQLite && m.config.DSN != "":
		return m.config.DSN
	case m.config.File != "":
		return m.config.File
	}
	name := utils.GenerateTimestampedFileName(EntriesFilePrefix, now(), FileExtension(m.config.Format))
	return filepath.Join(m.dir, name)
}

func (m *Manager) serverDatabase() bool {
	return config.IsDatabaseFormat(m.config.Format) && m.config.Format != config.FormatSQLite
}

// Write stores the set ordered by link and returns the target written
func (m *Manager) Write(set types.EntrySet) (string, error) {
	cfg := m.config
	target := m.Target()
	if !m.serverDatabase() {
		cfg.File = target
	}

	writer, err := NewWriter(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to get writer: %w", err)
	}

	if err := writer.WriteEntries(set.Slice()); err != nil {
		writer.Close()
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}
	return target, nil
}

// IsStreamFormat reports whether format can be rendered to a stream with Render
func IsStreamFormat(format string) bool {
	switch format {
	case config.FormatJSON, config.FormatCSV, config.FormatYAML, config.FormatExcel:
		return true
	}
	return false
}

// Render writes set to w in a file format and returns the format's MIME type
func Render(w io.Writer, set types.EntrySet, format string) (string, error) {
	if !IsStreamFormat(format) {
		return "", fmt.Errorf("unsupported stream format: %s", format)
	}

	dir, err := os.MkdirTemp("", "weblist-render-")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary directory: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, EntriesFilePrefix+FileExtension(format))
	writer, err := NewWriter(Config{Format: format, File: path})
	if err != nil {
		return "", err
	}
	if err := writer.WriteEntries(set.Slice()); err != nil {
		writer.Close()
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open rendered file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(w, file); err != nil {
		return "", fmt.Errorf("failed to copy rendered output: %w", err)
	}
	return MIMEType(format), nil
}
