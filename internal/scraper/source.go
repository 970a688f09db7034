// internal/scraper/source.go
package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	weberrors "github.com/moreffnest/weblist-parsers/internal/errors"
	"github.com/moreffnest/weblist-parsers/internal/utils"
	"github.com/moreffnest/weblist-parsers/pkg/types"
)

// Source extracts entries and the next-page control from one site's list pages
type Source interface {
	// Type returns the list type this source handles
	Type() types.ListType

	// Policy returns how the next-page control ends pagination
	Policy() TerminationPolicy

	// StartURL rewrites the user-supplied URL into the first page to fetch
	StartURL(rawURL string) string

	// Records extracts the entries on a page. Links are absolute.
	Records(doc *goquery.Document) ([]types.Entry, error)

	// Next locates the next-page control on a page
	Next(doc *goquery.Document) NextControl
}

// InterstitialDetector is implemented by sources whose site may serve a
// challenge page in place of a list page.
type InterstitialDetector interface {
	IsInterstitial(doc *goquery.Document) bool
}

// NextControl describes a page's "next page" element
type NextControl struct {
	Present  bool
	Disabled bool
	URL      string
}

// absAttr returns the attribute resolved against the document URL
func absAttr(doc *goquery.Document, s *goquery.Selection, name string) string {
	value, _ := s.Attr(name)
	return utils.ResolveURL(doc.Url, value)
}

// text returns the selection's text with whitespace collapsed
func text(s *goquery.Selection) string {
	return utils.CleanText(s.Text())
}

// requireFirst returns the first match of selector under s, or a page error naming what is missing
func requireFirst(lt types.ListType, s *goquery.Selection, selector, what string) (*goquery.Selection, error) {
	found := s.Find(selector).First()
	if found.Length() == 0 {
		return nil, weberrors.InvalidListPage(nil, "%s: %s not found (selector %q)", lt, what, selector)
	}
	return found, nil
}

// noStartRewrite is embedded by sources that fetch the URL they are given
type noStartRewrite struct{}

func (noStartRewrite) StartURL(rawURL string) string {
	return strings.TrimSpace(rawURL)
}

// noNext is embedded by single-page sources
type noNext struct{}

func (noNext) Next(*goquery.Document) NextControl {
	return NextControl{}
}

func (noNext) Policy() TerminationPolicy {
	return PolicySinglePage
}
