// internal/scraper/letterboxd.go
package scraper

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/moreffnest/weblist-parsers/internal/utils"
	"github.com/moreffnest/weblist-parsers/pkg/types"
)

// LetterboxdSource reads Letterboxd lists and watchlists
type LetterboxdSource struct {
	noStartRewrite
}

func (LetterboxdSource) Type() types.ListType { return types.ListLetterboxd }

func (LetterboxdSource) Policy() TerminationPolicy { return PolicyEmptyNext }

func (LetterboxdSource) Records(doc *goquery.Document) ([]types.Entry, error) {
	var (
		entries []types.Entry
		err     error
	)
	doc.Find(".linked-film-poster").EachWithBreak(func(_ int, poster *goquery.Selection) bool {
		var img *goquery.Selection
		if img, err = requireFirst(types.ListLetterboxd, poster, "img", "poster image"); err != nil {
			return false
		}
		alt, _ := img.Attr("alt")
		entries = append(entries, types.Entry{
			Title: utils.CleanText(alt),
			Link:  absAttr(doc, poster, "data-target-link"),
		})
		return true
	})
	return entries, err
}

func (LetterboxdSource) Next(doc *goquery.Document) NextControl {
	next := doc.Find(".next").First()
	if next.Length() == 0 {
		return NextControl{}
	}
	return NextControl{Present: true, URL: absAttr(doc, next, "href")}
}
