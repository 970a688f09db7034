// internal/output/postgresql.go
package output

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/lib/pq" // PostgreSQL driver
)

var postgresDialect = dialect{
	name:        "PostgreSQL",
	quote:       pq.QuoteIdentifier,
	placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	createTable: `CREATE TABLE IF NOT EXISTS %s (
		link TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	insertHead: "INSERT INTO %s",
	insertTail: " ON CONFLICT (link) DO NOTHING",
}

// PostgreSQLWriter writes entries to a PostgreSQL table
type PostgreSQLWriter struct {
	*sqlWriter
}

// NewPostgreSQLWriter connects using a lib/pq connection string
func NewPostgreSQLWriter(connectionString, table string, batchSize int) (*PostgreSQLWriter, error) {
	if connectionString == "" {
		return nil, fmt.Errorf("PostgreSQL connection string is required")
	}

	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	w, err := newSQLWriter(db, postgresDialect, table, batchSize)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &PostgreSQLWriter{w}, nil
}
