// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadFromBytes(t *testing.T) {
	configYAML := `
log_level: debug
client:
  timeout: 5s
  user_agent: "weblist-test"
crawl:
  max_pages: 10
output:
  format: csv
  file: titles.csv
`

	config, err := LoadFromBytes([]byte(configYAML))
	if err != nil {
		t.Fatalf("LoadFromBytes failed: %v", err)
	}

	if config.Client.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", config.Client.Timeout)
	}
	if config.Crawl.MaxPages != 10 {
		t.Errorf("expected max_pages 10, got %d", config.Crawl.MaxPages)
	}
	if config.Output.Format != FormatCSV {
		t.Errorf("expected csv format, got %q", config.Output.Format)
	}
	// defaults still applied
	if config.Server.Address != ":8080" {
		t.Errorf("expected default server address, got %q", config.Server.Address)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weblist.yaml")
	if err := os.WriteFile(path, []byte("output:\n  format: yaml\n"), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	config, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if config.Output.Format != FormatYAML {
		t.Errorf("expected yaml format, got %q", config.Output.Format)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestEnvironmentExpansion(t *testing.T) {
	t.Setenv("WEBLIST_TEST_DSN", "postgres://u:p@localhost/db")

	configYAML := `
output:
  format: postgresql
  database:
    dsn: ${WEBLIST_TEST_DSN}
    table: ${WEBLIST_TEST_TABLE:-my_titles}
`
	config, err := LoadFromBytes([]byte(configYAML))
	if err != nil {
		t.Fatalf("LoadFromBytes failed: %v", err)
	}
	if config.Output.Database.DSN != "postgres://u:p@localhost/db" {
		t.Errorf("unexpected dsn %q", config.Output.Database.DSN)
	}
	if config.Output.Database.Table != "my_titles" {
		t.Errorf("expected default table from expansion, got %q", config.Output.Database.Table)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"bad format", "output:\n  format: xml\n", "output.format"},
		{"db without dsn", "output:\n  format: sqlite\n", "output.database"},
		{"bad table", "output:\n  format: mysql\n  database:\n    dsn: x\n    table: \"a;drop\"\n", "output.database.table"},
		{"negative pages", "crawl:\n  max_pages: -1\n", "crawl.max_pages"},
		{"bad log level", "log_level: loud\n", "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default configuration should be valid: %v", err)
	}
}

func TestBrowserHeadlessDefault(t *testing.T) {
	config := Default()
	if config.Browser.Headless == nil || !*config.Browser.Headless {
		t.Errorf("expected headless browser by default, got %v", config.Browser.Headless)
	}

	config, err := LoadFromBytes([]byte("browser:\n  enabled: true\n  headless: false\n"))
	if err != nil {
		t.Fatalf("LoadFromBytes failed: %v", err)
	}
	if config.Browser.Headless == nil || *config.Browser.Headless {
		t.Error("expected an explicit headless: false to be kept")
	}
}

func TestSaveAndLoadFromReader(t *testing.T) {
	config := Default()
	config.Output.Format = FormatYAML
	config.Crawl.MaxPages = 7

	var buf strings.Builder
	if err := SaveToWriter(config, &buf); err != nil {
		t.Fatalf("SaveToWriter failed: %v", err)
	}
	if !strings.Contains(buf.String(), "format: yaml") {
		t.Errorf("expected output format in YAML, got:\n%s", buf.String())
	}

	loaded, err := LoadFromReader(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if loaded.Output.Format != FormatYAML || loaded.Crawl.MaxPages != 7 || loaded.Client.Timeout != config.Client.Timeout {
		t.Errorf("round trip mismatch: %+v", loaded)
	}

	if _, err := LoadFromReader(nil); err == nil {
		t.Error("expected error for nil reader")
	}
	if err := SaveToWriter(nil, &buf); err == nil {
		t.Error("expected error for nil configuration")
	}
}
