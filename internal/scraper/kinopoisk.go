// internal/scraper/kinopoisk.go
package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/moreffnest/weblist-parsers/pkg/types"
)

const kinopoiskPerPage = "/perpage/200"

// Titles of the page Kinopoisk serves instead of a list when it wants a captcha solved
var kinopoiskCaptchaTitles = []string{"Ой!", "Oops!"}

// KinopoiskSource reads Kinopoisk user lists, 200 titles per page
type KinopoiskSource struct{}

func (KinopoiskSource) Type() types.ListType { return types.ListKinopoisk }

func (KinopoiskSource) Policy() TerminationPolicy { return PolicyAbsentControl }

// StartURL drops the fragment and asks for the largest page size
func (KinopoiskSource) StartURL(rawURL string) string {
	u := strings.TrimSpace(rawURL)
	if i := strings.Index(u, "#"); i >= 0 {
		u = u[:i]
	}
	if strings.Contains(u, "/perpage/") {
		return u
	}
	return strings.TrimSuffix(u, "/") + kinopoiskPerPage
}

func (KinopoiskSource) IsInterstitial(doc *goquery.Document) bool {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	for _, t := range kinopoiskCaptchaTitles {
		if title == t {
			return true
		}
	}
	return doc.Url != nil && strings.Contains(doc.Url.Path, "/showcaptcha")
}

func (KinopoiskSource) Records(doc *goquery.Document) ([]types.Entry, error) {
	var (
		entries []types.Entry
		err     error
	)
	doc.Find(".nameRus").EachWithBreak(func(_ int, name *goquery.Selection) bool {
		var a *goquery.Selection
		if a, err = requireFirst(types.ListKinopoisk, name, "a", "title anchor"); err != nil {
			return false
		}
		entries = append(entries, types.Entry{
			Title: text(a),
			Link:  absAttr(doc, a, "href"),
		})
		return true
	})
	return entries, err
}

func (KinopoiskSource) Next(doc *goquery.Document) NextControl {
	var next NextControl
	doc.Find(".navigator").First().Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if strings.TrimSpace(a.Text()) != "»" {
			return true
		}
		next = NextControl{Present: true, URL: absAttr(doc, a, "href")}
		return false
	})
	return next
}
