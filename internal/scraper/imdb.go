// internal/scraper/imdb.go
package scraper

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/moreffnest/weblist-parsers/internal/utils"
	"github.com/moreffnest/weblist-parsers/pkg/types"
)

// IMDBSource reads IMDb user lists
type IMDBSource struct {
	noStartRewrite
}

func (IMDBSource) Type() types.ListType { return types.ListIMDB }

func (IMDBSource) Policy() TerminationPolicy { return PolicyAbsentControl }

func (s IMDBSource) Records(doc *goquery.Document) ([]types.Entry, error) {
	var (
		entries []types.Entry
		err     error
	)
	doc.Find(".lister-item-header").EachWithBreak(func(_ int, header *goquery.Selection) bool {
		var a *goquery.Selection
		if a, err = requireFirst(types.ListIMDB, header, "a", "title anchor"); err != nil {
			return false
		}
		entries = append(entries, types.Entry{
			Title: text(a),
			Link:  utils.StripQuery(absAttr(doc, a, "href")),
		})
		return true
	})
	return entries, err
}

func (IMDBSource) Next(doc *goquery.Document) NextControl {
	next := doc.Find(".next-page").First()
	if next.Length() == 0 {
		return NextControl{}
	}
	return NextControl{
		Present:  true,
		Disabled: next.HasClass("disabled"),
		URL:      absAttr(doc, next, "href"),
	}
}
