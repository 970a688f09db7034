// internal/scraper/registry.go
package scraper

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	weberrors "github.com/moreffnest/weblist-parsers/internal/errors"
	"github.com/moreffnest/weblist-parsers/pkg/types"
)

var sources = map[types.ListType]Source{
	types.ListIMDB:        IMDBSource{},
	types.ListKinopoisk:   KinopoiskSource{},
	types.ListMyAnimeList: MyAnimeListSource{},
	types.ListLetterboxd:  LetterboxdSource{},
	types.ListShikimori:   ShikimoriSource{},
	types.ListTrakt:       TraktSource{},
	types.ListGoodreads:   GoodreadsSource{},
}

// ListTypeOf derives the list type from the registrable domain of rawURL,
// e.g. "https://www.imdb.com/list/ls1" is IMDB.
func ListTypeOf(rawURL string) (types.ListType, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", weberrors.InvalidListPage(err, "malformed url %q", rawURL)
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", weberrors.InvalidListPage(nil, "url %q has no host", rawURL)
	}
	if net.ParseIP(host) != nil {
		return "", weberrors.InvalidListPage(nil, "url %q has an IP address host, not a domain", rawURL)
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return "", weberrors.InvalidListPage(err, "cannot determine registrable domain of %q", host)
	}
	suffix, _ := publicsuffix.PublicSuffix(domain)
	label := strings.TrimSuffix(strings.TrimSuffix(domain, suffix), ".")

	lt, err := types.ParseListType(label)
	if err != nil {
		return "", weberrors.InvalidListType("unsupported site %q", domain)
	}
	return lt, nil
}

// Resolve returns the source that handles rawURL
func Resolve(rawURL string) (Source, error) {
	lt, err := ListTypeOf(rawURL)
	if err != nil {
		return nil, err
	}
	return SourceFor(lt)
}

// SourceFor returns the source for a list type. YOUTUBE has none: watch history
// is read from exports, not scraped.
func SourceFor(lt types.ListType) (Source, error) {
	src, ok := sources[lt]
	if !ok {
		return nil, weberrors.InvalidListType("no list source for %s", lt)
	}
	return src, nil
}

// Sources returns the supported list types in declaration order
func Sources() []types.ListType {
	var out []types.ListType
	for _, lt := range types.ValidListTypes() {
		if _, ok := sources[lt]; ok {
			out = append(out, lt)
		}
	}
	return out
}
