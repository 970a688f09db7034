// internal/output/types.go
package output

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/moreffnest/weblist-parsers/internal/config"
	"github.com/moreffnest/weblist-parsers/pkg/types"
)

// Writer exports entries to a file or database
type Writer interface {
	WriteEntries(entries []types.Entry) error
	Close() error
}

// Config selects and configures a writer
type Config struct {
	Format     string
	File       string
	DSN        string
	Table      string
	Database   string
	Collection string
	BatchSize  int
}

// ConfigFrom builds a writer configuration from the application output settings
func ConfigFrom(cfg *config.OutputConfig) Config {
	out := Config{Format: cfg.Format, File: cfg.File}
	if db := cfg.Database; db != nil {
		out.DSN = db.DSN
		out.Table = db.Table
		out.Database = db.Database
		out.Collection = db.Collection
	}
	return out
}

const (
	defaultTable     = "titles"
	defaultBatchSize = 500
)

// FileExtension returns the extension used for a file format
func FileExtension(format string) string {
	switch format {
	case config.FormatJSON:
		return ".json"
	case config.FormatCSV:
		return ".csv"
	case config.FormatYAML:
		return ".yaml"
	case config.FormatExcel:
		return ".xlsx"
	case config.FormatSQLite:
		return ".db"
	default:
		return ".txt"
	}
}

// MIMEType returns the content type for a file format
func MIMEType(format string) string {
	switch format {
	case config.FormatJSON:
		return "application/json"
	case config.FormatCSV:
		return "text/csv"
	case config.FormatYAML:
		return "application/yaml"
	case config.FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

var sqlIdentifierRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Words that cannot name the entries table in any supported dialect
var reservedWords = map[string]bool{
	"ALL": true, "AND": true, "AS": true, "ASC": true, "BY": true, "CASE": true, "CHECK": true,
	"COLUMN": true, "CONSTRAINT": true, "CREATE": true, "DEFAULT": true, "DELETE": true,
	"DESC": true, "DISTINCT": true, "DROP": true, "ELSE": true, "FROM": true, "GROUP": true,
	"HAVING": true, "IN": true, "INDEX": true, "INSERT": true, "INTO": true, "IS": true,
	"JOIN": true, "KEY": true, "LIMIT": true, "NOT": true, "NULL": true, "ON": true, "OR": true,
	"ORDER": true, "PRIMARY": true, "REFERENCES": true, "SELECT": true, "SET": true,
	"TABLE": true, "THEN": true, "TO": true, "UNION": true, "UNIQUE": true, "UPDATE": true,
	"USER": true, "USING": true, "VALUES": true, "WHEN": true, "WHERE": true, "WITH": true,
}

// MaxIdentifierLength is the PostgreSQL limit, the strictest of the supported databases
const MaxIdentifierLength = 63

// ValidateSQLIdentifier checks that a table name is safe to interpolate into SQL
func ValidateSQLIdentifier(identifier string) error {
	if identifier == "" {
		return fmt.Errorf("identifier cannot be empty")
	}
	if len(identifier) > MaxIdentifierLength {
		return fmt.Errorf("identifier too long (max %d characters): %s", MaxIdentifierLength, identifier)
	}
	if !sqlIdentifierRegex.MatchString(identifier) {
		return fmt.Errorf("invalid identifier format: %s", identifier)
	}
	if reservedWords[strings.ToUpper(identifier)] {
		return fmt.Errorf("identifier is a reserved SQL keyword: %s", identifier)
	}
	return nil
}
