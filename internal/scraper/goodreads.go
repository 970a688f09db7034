// internal/scraper/goodreads.go
package scraper

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/moreffnest/weblist-parsers/pkg/types"
)

// GoodreadsSource reads Goodreads shelves
type GoodreadsSource struct {
	noStartRewrite
}

func (GoodreadsSource) Type() types.ListType { return types.ListGoodreads }

func (GoodreadsSource) Policy() TerminationPolicy { return PolicyDisabledMarker }

func (GoodreadsSource) Records(doc *goquery.Document) ([]types.Entry, error) {
	var (
		entries []types.Entry
		err     error
	)
	doc.Find(".bookTitle").EachWithBreak(func(_ int, book *goquery.Selection) bool {
		var span *goquery.Selection
		if span, err = requireFirst(types.ListGoodreads, book, "span", "title span"); err != nil {
			return false
		}
		entries = append(entries, types.Entry{
			Title: text(span),
			Link:  absAttr(doc, book, "href"),
		})
		return true
	})
	return entries, err
}

func (GoodreadsSource) Next(doc *goquery.Document) NextControl {
	next := doc.Find(".next_page").First()
	if next.Length() == 0 {
		return NextControl{}
	}
	return NextControl{
		Present:  true,
		Disabled: next.HasClass("disabled"),
		URL:      absAttr(doc, next, "href"),
	}
}
