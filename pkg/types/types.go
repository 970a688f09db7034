// pkg/types/types.go
package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ListType identifies the site a listing URL belongs to
type ListType string

const (
	ListIMDB        ListType = "IMDB"
	ListKinopoisk   ListType = "KINOPOISK"
	ListMyAnimeList ListType = "MYANIMELIST"
	ListLetterboxd  ListType = "LETTERBOXD"
	ListShikimori   ListType = "SHIKIMORI"
	ListTrakt       ListType = "TRAKT"
	ListGoodreads   ListType = "GOODREADS"
	// ListYouTube is only produced by watch-history exports and has no web listing.
	ListYouTube ListType = "YOUTUBE"
)

// ValidListTypes returns all known list type values
func ValidListTypes() []ListType {
	return []ListType{
		ListIMDB, ListKinopoisk, ListMyAnimeList, ListLetterboxd,
		ListShikimori, ListTrakt, ListGoodreads, ListYouTube,
	}
}

// IsValid checks if the list type is a known value
func (lt ListType) IsValid() bool {
	for _, valid := range ValidListTypes() {
		if lt == valid {
			return true
		}
	}
	return false
}

// String returns the list type name
func (lt ListType) String() string {
	return string(lt)
}

// ParseListType matches a bare domain label such as "imdb" against the known list types
func ParseListType(label string) (ListType, error) {
	lt := ListType(strings.ToUpper(strings.TrimSpace(label)))
	if !lt.IsValid() {
		return "", fmt.Errorf("unknown list type: %q", label)
	}
	return lt, nil
}

// Entry is a single title extracted from a listing. Link is the identity key;
// Title is display data only.
type Entry struct {
	Title string `json:"title" yaml:"title" bson:"title"`
	Link  string `json:"link" yaml:"link" bson:"link"`
}

// Key returns the identity key of the entry
func (e Entry) Key() string {
	return e.Link
}

// Same reports whether two entries denote the same entity
func (e Entry) Same(other Entry) bool {
	return e.Link == other.Link
}

func (e Entry) String() string {
	return fmt.Sprintf("Entry{title=%q, link=%q}", e.Title, e.Link)
}

// Alternate field spellings accepted for entries, in order of preference.
// The anime_/manga_ variants come from MyAnimeList list exports.
var (
	entryTitleFields = []string{"title", "anime_title", "manga_title"}
	entryLinkFields  = []string{"link", "anime_url", "manga_url"}
)

// UnmarshalJSON decodes an entry from a loosely-typed record, normalizing
// the alternate field names to the canonical ones. Unknown fields are ignored.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	title, err := pickField(raw, entryTitleFields)
	if err != nil {
		return err
	}
	link, err := pickField(raw, entryLinkFields)
	if err != nil {
		return err
	}

	e.Title = title
	e.Link = link
	return nil
}

// pickField returns the first present field from names as a string
func pickField(raw map[string]json.RawMessage, names []string) (string, error) {
	for _, name := range names {
		value, ok := raw[name]
		if !ok {
			continue
		}
		var v interface{}
		if err := json.Unmarshal(value, &v); err != nil {
			return "", fmt.Errorf("field %s: %w", name, err)
		}
		switch val := v.(type) {
		case nil:
			return "", nil
		case string:
			return val, nil
		case float64, bool:
			return fmt.Sprint(val), nil
		default:
			return "", fmt.Errorf("field %s: unexpected JSON type %T", name, v)
		}
	}
	return "", nil
}

// WatchEvent is a single record from a personal video watch history.
// Link is the identity key.
type WatchEvent struct {
	Title       string `json:"title" yaml:"title" bson:"title"`
	ChannelName string `json:"channelName" yaml:"channelName" bson:"channel_name"`
	Link        string `json:"link" yaml:"link" bson:"link"`
}

// Key returns the identity key of the watch event
func (w WatchEvent) Key() string {
	return w.Link
}

// ToEntry projects the watch event into an entry titled "<title> (<channel>)"
func (w WatchEvent) ToEntry() Entry {
	return Entry{
		Title: w.Title + " (" + w.ChannelName + ")",
		Link:  w.Link,
	}
}
