// pkg/api/api_test.go
package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/moreffnest/weblist-parsers/internal/config"
	"github.com/moreffnest/weblist-parsers/pkg/types"
)

type pageFetcher map[string]string

func (p pageFetcher) Fetch(_ context.Context, pageURL string) (*goquery.Document, error) {
	html, ok := p[pageURL]
	if !ok {
		return nil, fmt.Errorf("no fixture for %s", pageURL)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	doc.Url, _ = url.Parse(pageURL)
	return doc, nil
}

var fixtures = pageFetcher{
	"https://www.imdb.com/list/ls1/": `<html><body>
		<h3 class="lister-item-header"><a href="/title/tt1/?ref_=x">Alien</a></h3>
		<a class="next-page" href="/list/ls1/?page=2">Next</a>
	</body></html>`,
	"https://www.imdb.com/list/ls1/?page=2": `<html><body>
		<h3 class="lister-item-header"><a href="/title/tt2/">Aliens</a></h3>
	</body></html>`,
	"https://shikimori.one/user/list/anime": `<html><body>
		<a class="tooltipped" href="/animes/z1-cowboy-bebop"><span class="name-en">Cowboy Bebop</span></a>
	</body></html>`,
}

func newTestClient(t *testing.T, cfg *Config) *Client {
	t.Helper()
	client, err := NewClient(cfg, WithFetcher(fixtures))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestClient_ParseList(t *testing.T) {
	client := newTestClient(t, nil)

	result, err := client.ParseList(context.Background(), "https://www.imdb.com/list/ls1/")
	if err != nil {
		t.Fatalf("ParseList failed: %v", err)
	}
	if result.Type != types.ListIMDB {
		t.Errorf("expected IMDB, got %s", result.Type)
	}
	want := types.NewEntrySet(
		types.Entry{Title: "Alien", Link: "https://www.imdb.com/title/tt1/"},
		types.Entry{Title: "Aliens", Link: "https://www.imdb.com/title/tt2/"},
	)
	if !result.Entries.Equal(want) {
		t.Errorf("expected %v, got %v", want.Slice(), result.Entries.Slice())
	}

	resp := NewListResponse(result)
	if resp.Count != 2 || resp.Pages != 2 || len(resp.Entries) != 2 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestClient_ParseListUnsupportedSite(t *testing.T) {
	client := newTestClient(t, nil)

	_, err := client.ParseList(context.Background(), "https://example.com/list")
	if !errors.Is(err, ErrInvalidListType) {
		t.Errorf("expected ErrInvalidListType, got %v", err)
	}
}

func TestClient_ParseLists(t *testing.T) {
	client := newTestClient(t, nil)

	set, err := client.ParseLists(context.Background(), []string{
		"https://www.imdb.com/list/ls1/",
		"https://shikimori.one/user/list/anime",
	})
	if err != nil {
		t.Fatalf("ParseLists failed: %v", err)
	}
	if set.Len() != 3 {
		t.Errorf("expected 3 entries, got %d: %v", set.Len(), set.Slice())
	}
	if !set.Contains("https://shikimori.one/animes/z1-cowboy-bebop") {
		t.Errorf("expected shikimori entry in %v", set.Slice())
	}
}

func TestClient_ParseHistoryReader(t *testing.T) {
	client := newTestClient(t, nil)

	events, err := client.ParseHistoryReader(strings.NewReader(
		`[{"title":"Intro","channelName":"Chan","link":"https://www.youtube.com/watch?v=1"}]`), "json")
	if err != nil {
		t.Fatalf("ParseHistoryReader failed: %v", err)
	}
	if events.Len() != 1 {
		t.Fatalf("expected 1 event, got %d", events.Len())
	}

	entries := ToEntries(events)
	if !entries.Contains("https://www.youtube.com/watch?v=1") {
		t.Errorf("expected converted entry, got %v", entries.Slice())
	}

	if _, err := client.ParseHistoryReader(strings.NewReader("x"), "xml"); !errors.Is(err, ErrInvalidFileExtension) {
		t.Errorf("expected ErrInvalidFileExtension, got %v", err)
	}
}

func TestClient_Export(t *testing.T) {
	dir := t.TempDir()
	set := types.NewEntrySet(types.Entry{Title: "Alien", Link: "https://www.imdb.com/title/tt1/"})

	cfg := config.Default()
	cfg.Output.File = filepath.Join(dir, "titles.json")
	target, err := newTestClient(t, cfg).Export(set)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if target != cfg.Output.File {
		t.Errorf("expected %s, got %s", cfg.Output.File, target)
	}
	loaded, err := LoadEntries(target)
	if err != nil {
		t.Fatalf("LoadEntries failed: %v", err)
	}
	if !loaded.Equal(set) {
		t.Errorf("expected %v, got %v", set.Slice(), loaded.Slice())
	}

	csvCfg := config.Default()
	csvCfg.Output.Format = config.FormatCSV
	csvCfg.Output.File = filepath.Join(dir, "titles.csv")
	target, err = newTestClient(t, csvCfg).Export(set)
	if err != nil {
		t.Fatalf("CSV export failed: %v", err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if !strings.Contains(string(data), "https://www.imdb.com/title/tt1/") {
		t.Errorf("expected link in CSV, got %q", data)
	}
}

func TestNewClient_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Format = "xml"

	if _, err := NewClient(cfg); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestMergeEntries(t *testing.T) {
	a := types.NewEntrySet(types.Entry{Title: "First", Link: "https://x/1"})
	b := types.NewEntrySet(
		types.Entry{Title: "Second", Link: "https://x/1"},
		types.Entry{Title: "Other", Link: "https://x/2"},
	)

	merged := MergeEntries(a, b)
	if merged.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", merged.Len())
	}
	if merged["https://x/1"].Title != "First" {
		t.Errorf("expected first title to win, got %q", merged["https://x/1"].Title)
	}
}

func TestSources(t *testing.T) {
	if len(Sources()) != 7 {
		t.Errorf("expected 7 sources, got %v", Sources())
	}
	lt, err := ListTypeOf("https://letterboxd.com/user/list/x/")
	if err != nil || lt != types.ListLetterboxd {
		t.Errorf("expected LETTERBOXD, got %v, %v", lt, err)
	}
}
