// internal/output/sqlite.go
package output

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

var sqliteDialect = dialect{
	name:        "SQLite",
	quote:       func(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` },
	placeholder: questionPlaceholder,
	createTable: `CREATE TABLE IF NOT EXISTS %s (
		link TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	insertHead: "INSERT OR IGNORE INTO %s",
}

// SQLiteWriter writes entries to a SQLite database file
type SQLiteWriter struct {
	*sqlWriter
}

// NewSQLiteWriter opens (or creates) the database at path
func NewSQLiteWriter(path, table string) (*SQLiteWriter, error) {
	if path == "" {
		return nil, fmt.Errorf("SQLite database path is required")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	w, err := newSQLWriter(db, sqliteDialect, table, 0)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteWriter{w}, nil
}
