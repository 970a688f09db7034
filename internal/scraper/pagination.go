// internal/scraper/pagination.go
package scraper

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"

	weberrors "github.com/moreffnest/weblist-parsers/internal/errors"
	"github.com/moreffnest/weblist-parsers/internal/utils"
	"github.com/moreffnest/weblist-parsers/pkg/types"
)

// State is a step of the pagination state machine
type State int

const (
	StateFetching State = iota
	StateExtracting
	StateHasNext
	StateTerminal
)

func (s State) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateExtracting:
		return "extracting"
	case StateHasNext:
		return "has_next"
	case StateTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Observer receives pagination events. monitoring.Metrics implements it.
type Observer interface {
	PageFetched(listType string, duration time.Duration)
	FetchFailed(listType string)
	EntriesExtracted(listType string, count int)
	Terminated(listType string, reason string)
}

// Result is the outcome of one pagination run
type Result struct {
	Type    types.ListType
	Entries types.EntrySet
	Pages   int
	Reason  Reason
}

// Driver walks a list page by page, accumulating entries until the source's
// termination policy says stop.
type Driver struct {
	fetcher  Fetcher
	logger   utils.Logger
	observer Observer
	maxPages int
	checkURL func(string) error
}

// Option configures a Driver
type Option func(*Driver)

// WithLogger sets the logger
func WithLogger(logger utils.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithObserver sets the event observer
func WithObserver(observer Observer) Option {
	return func(d *Driver) {
		d.observer = observer
	}
}

// WithMaxPages stops every run after n pages; 0 disables the limit
func WithMaxPages(n int) Option {
	return func(d *Driver) {
		d.maxPages = n
	}
}

// WithURLCheck rejects a page before it is fetched when check returns an error.
// It applies to the start URL and to every next-page URL taken from markup.
func WithURLCheck(check func(pageURL string) error) Option {
	return func(d *Driver) {
		d.checkURL = check
	}
}

// NewDriver creates a pagination driver fetching pages with fetcher
func NewDriver(fetcher Fetcher, opts ...Option) *Driver {
	d := &Driver{
		fetcher: fetcher,
		logger:  utils.NopLogger{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run paginates src from startURL. Entries are merged by link after every page,
// so when an error is returned the Result still holds everything gathered so far.
func (d *Driver) Run(ctx context.Context, src Source, startURL string) (*Result, error) {
	lt := src.Type()
	log := d.logger.WithField("source", lt.String())
	policy := src.Policy()
	detector, _ := src.(InterstitialDetector)

	result := &Result{Type: lt, Entries: types.NewEntrySet()}
	visited := make(map[string]bool)

	var (
		doc     *goquery.Document
		pageURL = src.StartURL(startURL)
		state   = StateFetching
	)

	for state != StateTerminal {
		switch state {
		case StateFetching:
			if err := ctx.Err(); err != nil {
				return d.fail(result, weberrors.InvalidListPage(err, "%s: interrupted before %s", lt, pageURL))
			}

			if d.checkURL != nil {
				if err := d.checkURL(pageURL); err != nil {
					return d.fail(result, weberrors.InvalidListPage(err, "%s: refused to fetch %s", lt, pageURL))
				}
			}

			visited[pageURL] = true
			start := time.Now()
			fetched, err := d.fetcher.Fetch(ctx, pageURL)
			if err != nil {
				if d.observer != nil {
					d.observer.FetchFailed(lt.String())
				}
				return d.fail(result, weberrors.InvalidListPage(err, "%s: failed to fetch %s", lt, pageURL))
			}
			if d.observer != nil {
				d.observer.PageFetched(lt.String(), time.Since(start))
			}
			doc = fetched
			result.Pages++

			if detector != nil && detector.IsInterstitial(doc) {
				log.Warnf("interstitial page served at %s, keeping %d entries", pageURL, result.Entries.Len())
				result.Reason = ReasonInterstitial
				state = StateTerminal
				continue
			}
			state = StateExtracting

		case StateExtracting:
			records, err := src.Records(doc)
			if err != nil {
				return d.fail(result, err)
			}
			added := result.Entries.Union(types.NewEntrySet(records...))
			if d.observer != nil {
				d.observer.EntriesExtracted(lt.String(), added)
			}
			log.Debugf("page %d (%s): %d records, %d new, %d total",
				result.Pages, pageURL, len(records), added, result.Entries.Len())
			state = StateHasNext

		case StateHasNext:
			control := src.Next(doc)
			reason, done := policy.Terminal(control)
			if !done {
				next := control.URL
				switch {
				case visited[next]:
					reason, done = ReasonRevisit, true
					log.Warnf("next page %s was already fetched, stopping", next)
				case d.maxPages > 0 && result.Pages >= d.maxPages:
					reason, done = ReasonMaxPages, true
				default:
					pageURL = next
				}
			}
			if done {
				result.Reason = reason
				state = StateTerminal
			} else {
				state = StateFetching
			}
		}
	}

	if d.observer != nil {
		d.observer.Terminated(lt.String(), string(result.Reason))
	}
	log.Infof("finished after %d pages (%s): %d entries", result.Pages, result.Reason, result.Entries.Len())

	return result, nil
}

func (d *Driver) fail(result *Result, err error) (*Result, error) {
	result.Reason = ReasonError
	if d.observer != nil {
		d.observer.Terminated(result.Type.String(), string(ReasonError))
	}
	d.logger.WithField("source", result.Type.String()).
		Errorf("stopped after %d pages with %d entries: %v", result.Pages, result.Entries.Len(), err)
	return result, err
}
