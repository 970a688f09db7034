// internal/config/types.go

// Package config provides the configuration for list parsing runs: how pages are
// fetched, how far pagination may go, where results are written and how the API
// server listens.
package config

import (
	"time"
)

// Config represents the main configuration structure.
type Config struct {
	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level" json:"log_level"`

	// Client configures the HTTP document fetcher
	Client ClientConfig `yaml:"client" json:"client"`

	// Browser switches fetching to a headless browser when enabled
	Browser BrowserConfig `yaml:"browser" json:"browser"`

	// Crawl bounds pagination and parallelism
	Crawl CrawlConfig `yaml:"crawl" json:"crawl"`

	// Output configuration
	Output OutputConfig `yaml:"output" json:"output"`

	// Server configuration for the HTTP API
	Server ServerConfig `yaml:"server" json:"server"`
}

// ClientConfig defines the HTTP fetcher settings.
type ClientConfig struct {
	Timeout       time.Duration     `yaml:"timeout" json:"timeout"`
	UserAgent     string            `yaml:"user_agent,omitempty" json:"user_agent,omitempty"`
	Headers       map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
	MaxBodyBytes  int64             `yaml:"max_body_bytes" json:"max_body_bytes"` // 0 = unlimited
	RetryAttempts int               `yaml:"retry_attempts" json:"retry_attempts"`
	RetryDelay    time.Duration     `yaml:"retry_delay" json:"retry_delay"`
}

// BrowserConfig defines headless browser fetching.
type BrowserConfig struct {
	Enabled        bool          `yaml:"enabled" json:"enabled"`
	Headless       *bool         `yaml:"headless" json:"headless"`
	Timeout        time.Duration `yaml:"timeout" json:"timeout"`
	WaitDelay      time.Duration `yaml:"wait_delay,omitempty" json:"wait_delay,omitempty"`
	WaitForElement string        `yaml:"wait_for_element,omitempty" json:"wait_for_element,omitempty"`
	UserAgent      string        `yaml:"user_agent,omitempty" json:"user_agent,omitempty"`
}

// CrawlConfig bounds a pagination run.
type CrawlConfig struct {
	// MaxPages stops a list after this many pages; 0 means no limit
	MaxPages int `yaml:"max_pages" json:"max_pages"`

	// Concurrency is the number of lists parsed at once when several URLs are given
	Concurrency int `yaml:"concurrency" json:"concurrency"`
}

// OutputConfig defines where results are written.
type OutputConfig struct {
	// Format is one of json, csv, yaml, excel, sqlite, postgresql, mysql, mongodb
	Format string `yaml:"format" json:"format"`

	// File is the output path for file formats; empty means a timestamped default name
	File string `yaml:"file,omitempty" json:"file,omitempty"`

	// Dir is prepended to generated default file names
	Dir string `yaml:"dir,omitempty" json:"dir,omitempty"`

	// Database settings for database formats
	Database *DatabaseConfig `yaml:"database,omitempty" json:"database,omitempty"`
}

// DatabaseConfig defines database output.
type DatabaseConfig struct {
	DSN        string `yaml:"dsn" json:"dsn"`
	Table      string `yaml:"table,omitempty" json:"table,omitempty"`
	Database   string `yaml:"database,omitempty" json:"database,omitempty"`
	Collection string `yaml:"collection,omitempty" json:"collection,omitempty"`
}

// ServerConfig defines the HTTP API listener.
type ServerConfig struct {
	Address      string        `yaml:"address" json:"address"`
	MetricsPath  string        `yaml:"metrics_path" json:"metrics_path"`
	ReadTimeout  time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" json:"write_timeout"`
	MaxUpload    int64         `yaml:"max_upload_bytes" json:"max_upload_bytes"`
}

// Output formats understood by the output package.
const (
	FormatJSON       = "json"
	FormatCSV        = "csv"
	FormatYAML       = "yaml"
	FormatExcel      = "excel"
	FormatSQLite     = "sqlite"
	FormatPostgreSQL = "postgresql"
	FormatMySQL      = "mysql"
	FormatMongoDB    = "mongodb"
)

// ValidOutputFormats returns all supported output formats
func ValidOutputFormats() []string {
	return []string{
		FormatJSON, FormatCSV, FormatYAML, FormatExcel,
		FormatSQLite, FormatPostgreSQL, FormatMySQL, FormatMongoDB,
	}
}

// IsDatabaseFormat reports whether the format writes to a database
func IsDatabaseFormat(format string) bool {
	switch format {
	case FormatSQLite, FormatPostgreSQL, FormatMySQL, FormatMongoDB:
		return true
	}
	return false
}
