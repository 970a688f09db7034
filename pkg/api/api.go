// pkg/api/api.go

// Package api is the library entry point: parse list pages and watch-history
// exports into entry sets and persist them, without importing internal packages.
package api

import (
	"context"
	"io"

	"github.com/PuerkitoBio/goquery"

	"github.com/moreffnest/weblist-parsers/internal/browser"
	"github.com/moreffnest/weblist-parsers/internal/config"
	"github.com/moreffnest/weblist-parsers/internal/history"
	"github.com/moreffnest/weblist-parsers/internal/output"
	"github.com/moreffnest/weblist-parsers/internal/scraper"
	"github.com/moreffnest/weblist-parsers/internal/utils"
	"github.com/moreffnest/weblist-parsers/pkg/types"
)

// Fetcher turns a URL into a document whose Url is the page address
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*goquery.Document, error)
}

// Observer receives pagination and history events, e.g. monitoring.Metrics
type Observer interface {
	scraper.Observer
	history.Observer
}

// Client parses lists and history exports with one configuration
type Client struct {
	config   *Config
	logger   utils.Logger
	observer Observer
	fetcher  Fetcher
	checkURL func(string) error
	pool     *browser.Pool
	driver   *scraper.Driver
	history  *history.Parser
}

// Option configures a Client
type Option func(*Client)

// WithLogger sets the logger
func WithLogger(logger utils.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver reports pagination and history events to observer
func WithObserver(observer Observer) Option {
	return func(c *Client) {
		c.observer = observer
	}
}

// WithFetcher replaces the configured HTTP or browser fetcher
func WithFetcher(fetcher Fetcher) Option {
	return func(c *Client) {
		c.fetcher = fetcher
	}
}

// WithURLCheck validates every page URL, including next pages found in
// markup, before it is fetched
func WithURLCheck(check func(pageURL string) error) Option {
	return func(c *Client) {
		c.checkURL = check
	}
}

// NewClient creates a client. A nil config uses config.Default().
func NewClient(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{config: cfg, logger: utils.NopLogger{}}
	for _, opt := range opts {
		opt(c)
	}

	if c.fetcher == nil {
		if cfg.Browser.Enabled {
			c.pool = browser.NewPool(browser.FromConfig(cfg.Browser), cfg.Crawl.Concurrency, c.logger)
			c.fetcher = c.pool
		} else {
			c.fetcher = scraper.NewHTTPClient(scraper.ClientConfig{
				Timeout:       cfg.Client.Timeout,
				UserAgent:     cfg.Client.UserAgent,
				Headers:       cfg.Client.Headers,
				MaxBodyBytes:  cfg.Client.MaxBodyBytes,
				RetryAttempts: cfg.Client.RetryAttempts,
				RetryDelay:    cfg.Client.RetryDelay,
			})
		}
	}

	driverOpts := []scraper.Option{
		scraper.WithLogger(c.logger),
		scraper.WithMaxPages(cfg.Crawl.MaxPages),
	}
	if c.checkURL != nil {
		driverOpts = append(driverOpts, scraper.WithURLCheck(c.checkURL))
	}
	historyOpts := []history.Option{history.WithLogger(c.logger)}
	if c.observer != nil {
		driverOpts = append(driverOpts, scraper.WithObserver(c.observer))
		historyOpts = append(historyOpts, history.WithObserver(c.observer))
	}
	c.driver = scraper.NewDriver(c.fetcher, driverOpts...)
	c.history = history.NewParser(historyOpts...)

	return c, nil
}

// Config returns the client's configuration
func (c *Client) Config() *Config {
	return c.config
}

// ParseList paginates the list at rawURL. On a failure after the first page
// the result holds the entries gathered so far.
func (c *Client) ParseList(ctx context.Context, rawURL string) (*Result, error) {
	return c.driver.Parse(ctx, rawURL)
}

// ParseLists parses independent lists concurrently and merges their entries
func (c *Client) ParseLists(ctx context.Context, urls []string) (EntrySet, error) {
	return c.driver.ParseAll(ctx, urls, c.config.Crawl.Concurrency)
}

// ParseHistory reads a watch-history export, choosing the format by extension
func (c *Client) ParseHistory(path string) (WatchEventSet, error) {
	return c.history.ParseFile(path)
}

// ParseHistoryReader reads a watch-history export in the named format ("html" or "json")
func (c *Client) ParseHistoryReader(r io.Reader, format string) (WatchEventSet, error) {
	f, err := history.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return c.history.Parse(r, f)
}

// Export writes entries with the configured output format and returns the target
func (c *Client) Export(set EntrySet) (string, error) {
	if c.config.Output.Format == config.FormatJSON && c.config.Output.Dir == "" {
		return output.SaveEntries(set, c.config.Output.File)
	}
	m, err := output.NewManager(&c.config.Output)
	if err != nil {
		return "", err
	}
	return m.Write(set)
}

// RenderEntries writes set to w in a file format (json, csv, yaml or excel) and
// returns its MIME type
func RenderEntries(w io.Writer, set EntrySet, format string) (string, error) {
	return output.Render(w, set, format)
}

// FileExtension returns the file extension, dot included, for an output format
func FileExtension(format string) string {
	return output.FileExtension(format)
}

// IsStreamFormat reports whether RenderEntries supports format
func IsStreamFormat(format string) bool {
	return output.IsStreamFormat(format)
}

// Close releases browser instances started by the client
func (c *Client) Close() error {
	if c.pool != nil {
		return c.pool.Close()
	}
	return nil
}

// ListTypeOf reports which site a list URL belongs to
func ListTypeOf(rawURL string) (ListType, error) {
	return scraper.ListTypeOf(rawURL)
}

// Sources returns the list types that can be parsed from a URL
func Sources() []ListType {
	return scraper.Sources()
}

// ToEntries converts watch events to entries, one per video link
func ToEntries(events WatchEventSet) EntrySet {
	return history.ToEntries(events)
}

// MergeEntries unions sets in order; the first title seen for a link is kept
func MergeEntries(sets ...EntrySet) EntrySet {
	merged := types.NewEntrySet()
	for _, s := range sets {
		merged.Union(s)
	}
	return merged
}

// LoadEntries reads a JSON entry file
func LoadEntries(path string) (EntrySet, error) {
	return output.LoadEntriesFile(path)
}

// SaveEntries writes a JSON entry file; an empty filename picks a timestamped one.
// It returns the file name written.
func SaveEntries(set EntrySet, filename string) (string, error) {
	return output.SaveEntries(set, filename)
}

// LoadWatchEvents reads a JSON watch-event file
func LoadWatchEvents(path string) (WatchEventSet, error) {
	return output.LoadWatchEventsFile(path)
}

// SaveWatchEvents writes a JSON watch-event file; an empty filename picks a timestamped one
func SaveWatchEvents(set WatchEventSet, filename string) (string, error) {
	return output.SaveWatchEvents(set, filename)
}
