// internal/output/mysql.go
package output

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

var mysqlDialect = dialect{
	name:        "MySQL",
	quote:       func(id string) string { return "`" + strings.ReplaceAll(id, "`", "``") + "`" },
	placeholder: questionPlaceholder,
	// 768 utf8mb4 characters is the InnoDB index key limit
	createTable: "CREATE TABLE IF NOT EXISTS %s (" +
		"link VARCHAR(768) NOT NULL PRIMARY KEY, " +
		"title TEXT NOT NULL, " +
		"created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP" +
		") DEFAULT CHARSET=utf8mb4",
	insertHead: "INSERT IGNORE INTO %s",
}

// MySQLWriter writes entries to a MySQL table
type MySQLWriter struct {
	*sqlWriter
}

// NewMySQLWriter connects using a go-sql-driver DSN such as
// "user:pass@tcp(localhost:3306)/weblist"
func NewMySQLWriter(dsn, table string, batchSize int) (*MySQLWriter, error) {
	cfg, err := mysqlConfig(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	w, err := newSQLWriter(db, mysqlDialect, table, batchSize)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &MySQLWriter{w}, nil
}

// mysqlConfig parses the DSN and forces a utf8mb4 connection
func mysqlConfig(dsn string) (*mysql.Config, error) {
	if dsn == "" {
		return nil, fmt.Errorf("MySQL DSN is required")
	}
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid MySQL DSN: %w", err)
	}
	if cfg.Params == nil {
		cfg.Params = make(map[string]string)
	}
	cfg.Params["charset"] = "utf8mb4"
	cfg.ParseTime = true
	return cfg, nil
}
