// internal/scraper/shikimori.go
package scraper

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/moreffnest/weblist-parsers/pkg/types"
)

// ShikimoriSource reads Shikimori anime lists, which render on a single page
type ShikimoriSource struct {
	noStartRewrite
	noNext
}

func (ShikimoriSource) Type() types.ListType { return types.ListShikimori }

func (ShikimoriSource) Records(doc *goquery.Document) ([]types.Entry, error) {
	var (
		entries []types.Entry
		err     error
	)
	doc.Find(".tooltipped").EachWithBreak(func(_ int, item *goquery.Selection) bool {
		var name *goquery.Selection
		if name, err = requireFirst(types.ListShikimori, item, ".name-en", "english name"); err != nil {
			return false
		}
		entries = append(entries, types.Entry{
			Title: text(name),
			Link:  absAttr(doc, item, "href"),
		})
		return true
	})
	return entries, err
}
