// internal/scraper/trakt.go
package scraper

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/moreffnest/weblist-parsers/pkg/types"
)

// TraktSource reads Trakt lists and watchlists
type TraktSource struct {
	noStartRewrite
}

func (TraktSource) Type() types.ListType { return types.ListTrakt }

func (TraktSource) Policy() TerminationPolicy { return PolicyDisabledMarker }

func (TraktSource) Records(doc *goquery.Document) ([]types.Entry, error) {
	var (
		entries []types.Entry
		err     error
	)
	doc.Find(".titles").EachWithBreak(func(_ int, titles *goquery.Selection) bool {
		var a, heading *goquery.Selection
		if a, err = requireFirst(types.ListTrakt, titles, "a", "title anchor"); err != nil {
			return false
		}
		if heading, err = requireFirst(types.ListTrakt, a, "h3", "title heading"); err != nil {
			return false
		}
		entries = append(entries, types.Entry{
			Title: text(heading),
			Link:  absAttr(doc, a, "href"),
		})
		return true
	})
	return entries, err
}

func (TraktSource) Next(doc *goquery.Document) NextControl {
	next := doc.Find(".next").First()
	if next.Length() == 0 {
		return NextControl{}
	}
	control := NextControl{Present: true, Disabled: next.HasClass("disabled")}
	if a := next.Find("a").First(); a.Length() > 0 {
		control.URL = absAttr(doc, a, "href")
	}
	return control
}
