// internal/output/store.go
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/moreffnest/weblist-parsers/internal/utils"
	"github.com/moreffnest/weblist-parsers/pkg/types"
)

// Default file name prefixes, followed by a dd-MM-yyyy_HH-mm-ss timestamp
const (
	EntriesFilePrefix     = "my_titles_"
	WatchEventsFilePrefix = "yt_videos_"
)

var now = time.Now

// DefaultEntriesFileName returns the name used when entries are saved without one
func DefaultEntriesFileName() string {
	return utils.GenerateTimestampedFileName(EntriesFilePrefix, now(), "json")
}

// DefaultWatchEventsFileName returns the name used when watch events are saved without one
func DefaultWatchEventsFileName() string {
	return utils.GenerateTimestampedFileName(WatchEventsFilePrefix, now(), "json")
}

// LoadEntries reads a JSON array of entries. Alternate field spellings are
// normalized to title and link.
func LoadEntries(r io.Reader) (types.EntrySet, error) {
	var entries []types.Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode entries: %w", err)
	}
	return types.NewEntrySet(entries...), nil
}

// LoadEntriesFile reads entries from a JSON file
func LoadEntriesFile(path string) (types.EntrySet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open entries file: %w", err)
	}
	defer f.Close()

	set, err := LoadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// SaveEntries writes the set as an indented JSON array ordered by link and
// returns the path written. An empty filename gets the default timestamped name.
func SaveEntries(set types.EntrySet, filename string) (string, error) {
	if filename == "" {
		filename = DefaultEntriesFileName()
	}
	return filename, writeJSONFile(filename, set.Slice())
}

// EncodeEntries writes the set as an indented JSON array ordered by link
func EncodeEntries(w io.Writer, set types.EntrySet) error {
	return encodeJSON(w, set.Slice())
}

// LoadWatchEvents reads a JSON array of watch events
func LoadWatchEvents(r io.Reader) (types.WatchEventSet, error) {
	var events []types.WatchEvent
	if err := json.NewDecoder(r).Decode(&events); err != nil {
		return nil, fmt.Errorf("failed to decode watch events: %w", err)
	}
	return types.NewWatchEventSet(events...), nil
}

// LoadWatchEventsFile reads watch events from a JSON file
func LoadWatchEventsFile(path string) (types.WatchEventSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open watch events file: %w", err)
	}
	defer f.Close()

	set, err := LoadWatchEvents(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// SaveWatchEvents writes the set as an indented JSON array ordered by link and
// returns the path written. An empty filename gets the default timestamped name.
func SaveWatchEvents(set types.WatchEventSet, filename string) (string, error) {
	if filename == "" {
		filename = DefaultWatchEventsFileName()
	}
	return filename, writeJSONFile(filename, set.Slice())
}

// EncodeWatchEvents writes the set as an indented JSON array ordered by link
func EncodeWatchEvents(w io.Writer, set types.WatchEventSet) error {
	return encodeJSON(w, set.Slice())
}

func writeJSONFile(path string, v interface{}) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := encodeJSON(f, v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func encodeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
