// internal/output/writers_test.go
package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/moreffnest/weblist-parsers/pkg/types"
)

var sampleEntries = []types.Entry{
	{Title: "Alien", Link: "https://letterboxd.com/film/alien/"},
	{Title: "Heat, 1995", Link: "https://letterboxd.com/film/heat-1995/"},
}

func TestCSVWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.csv")
	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}
	if err := w.WriteEntries(sampleEntries[:1]); err != nil {
		t.Fatalf("WriteEntries: %v", err)
	}
	if err := w.WriteEntries(sampleEntries[1:]); err != nil {
		t.Fatalf("WriteEntries: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header and 2 rows, got %v", records)
	}
	if records[0][0] != "title" || records[2][0] != "Heat, 1995" {
		t.Errorf("unexpected rows %v", records)
	}
}

func TestYAMLWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.yaml")
	w, err := NewYAMLWriter(path)
	if err != nil {
		t.Fatalf("NewYAMLWriter: %v", err)
	}
	if err := w.WriteEntries(sampleEntries); err != nil {
		t.Fatalf("WriteEntries: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got []types.Entry
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode YAML: %v", err)
	}
	if len(got) != 2 || got[1] != sampleEntries[1] {
		t.Errorf("unexpected YAML entries %v", got)
	}
}

func TestJSONWriter_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.json")
	w, err := NewJSONWriter(path)
	if err != nil {
		t.Fatalf("NewJSONWriter: %v", err)
	}
	if err := w.WriteEntries(nil); err != nil {
		t.Fatalf("WriteEntries: %v", err)
	}
	w.Close()

	data, _ := os.ReadFile(path)
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("expected empty array, got %q", data)
	}
}

func TestExcelWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.xlsx")
	w, err := NewExcelWriter(path)
	if err != nil {
		t.Fatalf("NewExcelWriter: %v", err)
	}
	if err := w.WriteEntries(sampleEntries); err != nil {
		t.Fatalf("WriteEntries: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(ExcelSheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %v", rows)
	}
	if rows[0][0] != "Title" || rows[1][1] != sampleEntries[0].Link {
		t.Errorf("unexpected rows %v", rows)
	}

	linked, target, err := f.GetCellHyperLink(ExcelSheetName, "B2")
	if err != nil || !linked || target != sampleEntries[0].Link {
		t.Errorf("expected hyperlink on B2, got %v %q %v", linked, target, err)
	}
}

func TestSQLiteWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.db")
	w, err := NewSQLiteWriter(path, "watchlist")
	if err != nil {
		t.Fatalf("NewSQLiteWriter: %v", err)
	}
	defer w.Close()

	if err := w.WriteEntries(sampleEntries); err != nil {
		t.Fatalf("WriteEntries: %v", err)
	}
	renamed := types.Entry{Title: "Alien (1979)", Link: sampleEntries[0].Link}
	if err := w.WriteEntries([]types.Entry{renamed}); err != nil {
		t.Fatalf("second WriteEntries: %v", err)
	}

	stored, err := w.ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries: %v", err)
	}
	if !stored.Equal(types.NewEntrySet(sampleEntries...)) {
		t.Errorf("unexpected stored entries %v", stored.Slice())
	}
	if stored[sampleEntries[0].Link].Title != "Alien" {
		t.Errorf("existing link must keep its title, got %q", stored[sampleEntries[0].Link].Title)
	}
}

func TestSQLiteWriter_InvalidTable(t *testing.T) {
	_, err := NewSQLiteWriter(filepath.Join(t.TempDir(), "x.db"), "drop table")
	if err == nil {
		t.Fatal("expected an error for an unsafe table name")
	}
}

func TestValidateSQLIdentifier(t *testing.T) {
	tests := []struct {
		name        string
		identifier  string
		expectError bool
	}{
		{"valid identifier", "my_titles", false},
		{"valid with numbers", "titles2024", false},
		{"starts with underscore", "_private", false},
		{"empty string", "", true},
		{"starts with number", "123titles", true},
		{"contains space", "my titles", true},
		{"contains hyphen", "my-titles", true},
		{"reserved word", "select", true},
		{"reserved word case", "TABLE", true},
		{"too long", "a" + strings.Repeat("b", 63), true},
		{"max length", "a" + strings.Repeat("b", 62), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSQLIdentifier(tt.identifier)
			if tt.expectError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestMySQLConfig(t *testing.T) {
	cfg, err := mysqlConfig("user:secret@tcp(db:3306)/weblist")
	if err != nil {
		t.Fatalf("mysqlConfig: %v", err)
	}
	if cfg.DBName != "weblist" || cfg.Addr != "db:3306" || cfg.Params["charset"] != "utf8mb4" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if _, err := mysqlConfig(""); err == nil {
		t.Error("expected an error for an empty DSN")
	}
}

func TestPostgresDialectQuoting(t *testing.T) {
	if got := postgresDialect.quote(`ti"tles`); got != `"ti""tles"` {
		t.Errorf("unexpected quoting %s", got)
	}
	if got := postgresDialect.placeholder(3); got != "$3" {
		t.Errorf("unexpected placeholder %s", got)
	}
}
