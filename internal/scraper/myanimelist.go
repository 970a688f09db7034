// internal/scraper/myanimelist.go
package scraper

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	weberrors "github.com/moreffnest/weblist-parsers/internal/errors"
	"github.com/moreffnest/weblist-parsers/pkg/types"
)

// MyAnimeListBaseURL is prefixed to the relative links in list data
const MyAnimeListBaseURL = "https://myanimelist.net"

// MyAnimeListSource reads anime and manga lists from the JSON blob MyAnimeList
// embeds in the list table. The whole list is on one page.
type MyAnimeListSource struct {
	noStartRewrite
	noNext
}

func (MyAnimeListSource) Type() types.ListType { return types.ListMyAnimeList }

func (MyAnimeListSource) Records(doc *goquery.Document) ([]types.Entry, error) {
	table := doc.Find("table[data-items]").First()
	if table.Length() == 0 {
		return nil, weberrors.InvalidListPage(nil, "%s: list data not found (table[data-items])", types.ListMyAnimeList)
	}
	blob, _ := table.Attr("data-items")

	var entries []types.Entry
	if err := json.Unmarshal([]byte(blob), &entries); err != nil {
		return nil, weberrors.InvalidListPage(err, "%s: malformed list data", types.ListMyAnimeList)
	}

	for i := range entries {
		entries[i].Title = strings.TrimSpace(entries[i].Title)
		if strings.HasPrefix(entries[i].Link, "/") {
			entries[i].Link = MyAnimeListBaseURL + entries[i].Link
		}
	}
	return entries, nil
}
