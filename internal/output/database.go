// internal/output/database.go
package output

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/moreffnest/weblist-parsers/pkg/types"
)

// dialect holds the SQL that differs between the supported databases
type dialect struct {
	name        string
	quote       func(identifier string) string
	placeholder func(n int) string
	createTable string // %s is the quoted table name
	insertHead  string // %s is the quoted table name
	insertTail  string
}

// sqlWriter stores entries in a table keyed by link. Existing links are kept,
// matching the first-wins rule of entry sets.
type sqlWriter struct {
	db        *sql.DB
	dialect   dialect
	table     string
	batchSize int
}

func newSQLWriter(db *sql.DB, d dialect, table string, batchSize int) (*sqlWriter, error) {
	if table == "" {
		table = defaultTable
	}
	if err := ValidateSQLIdentifier(table); err != nil {
		return nil, fmt.Errorf("invalid %s table name: %w", d.name, err)
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	w := &sqlWriter{db: db, dialect: d, table: table, batchSize: batchSize}
	if _, err := db.Exec(fmt.Sprintf(d.createTable, d.quote(table))); err != nil {
		return nil, fmt.Errorf("failed to create %s table %s: %w", d.name, table, err)
	}
	return w, nil
}

// WriteEntries inserts entries in batches inside one transaction
func (w *sqlWriter) WriteEntries(entries []types.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for i := 0; i < len(entries); i += w.batchSize {
		end := i + w.batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := w.insertBatch(tx, entries[i:end]); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert batch %d-%d: %w", i, end-1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit entries: %w", err)
	}
	return nil
}

func (w *sqlWriter) insertBatch(tx *sql.Tx, batch []types.Entry) error {
	rows := make([]string, len(batch))
	args := make([]interface{}, 0, len(batch)*2)
	for i, e := range batch {
		rows[i] = "(" + w.dialect.placeholder(2*i+1) + ", " + w.dialect.placeholder(2*i+2) + ")"
		args = append(args, e.Link, e.Title)
	}

	query := fmt.Sprintf(w.dialect.insertHead, w.dialect.quote(w.table)) +
		" (link, title) VALUES " + strings.Join(rows, ", ") + w.dialect.insertTail
	_, err := tx.Exec(query, args...)
	return err
}

// ReadEntries returns every stored entry
func (w *sqlWriter) ReadEntries() (types.EntrySet, error) {
	rows, err := w.db.Query(fmt.Sprintf("SELECT title, link FROM %s", w.dialect.quote(w.table)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := types.NewEntrySet()
	for rows.Next() {
		var e types.Entry
		if err := rows.Scan(&e.Title, &e.Link); err != nil {
			return nil, err
		}
		set.Add(e)
	}
	return set, rows.Err()
}

// Close closes the database connection
func (w *sqlWriter) Close() error {
	if w.db != nil {
		err := w.db.Close()
		w.db = nil
		return err
	}
	return nil
}

func questionPlaceholder(int) string { return "?" }
