// internal/browser/chromedp.go
package browser

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"github.com/moreffnest/weblist-parsers/internal/utils"
)

// ChromeClient renders pages with a headless Chrome through chromedp
type ChromeClient struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	config        *Config
	logger        utils.Logger

	mu    sync.Mutex
	stats Stats
}

// NewChromeClient starts a browser with the given configuration
func NewChromeClient(cfg *Config, logger utils.Logger) (*ChromeClient, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = utils.NopLogger{}
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocatorOptions(cfg)...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	client := &ChromeClient{
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		config:        cfg,
		logger:        logger.WithField("component", "browser"),
	}

	// The first Run launches the browser process
	if err := chromedp.Run(browserCtx, chromedp.EmulateViewport(int64(cfg.ViewportWidth), int64(cfg.ViewportHeight))); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return client, nil
}

func allocatorOptions(cfg *Config) []chromedp.ExecAllocatorOption {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.DisableGPU,
		chromedp.NoSandbox, // Required for Docker environments
	}
	if cfg.Headless {
		opts = append(opts, chromedp.Headless)
	}
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}
	if cfg.DisableImages {
		opts = append(opts, chromedp.Flag("blink-settings", "imagesEnabled=false"))
	}
	return opts
}

// navigationTasks loads pageURL and captures the final location and markup
func navigationTasks(cfg *Config, pageURL string, location, html *string) chromedp.Tasks {
	tasks := chromedp.Tasks{
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
	}
	if cfg.WaitForElement != "" {
		tasks = append(tasks, chromedp.WaitVisible(cfg.WaitForElement))
	}
	if cfg.WaitDelay > 0 {
		tasks = append(tasks, chromedp.Sleep(cfg.WaitDelay))
	}
	return append(tasks,
		chromedp.Location(location),
		chromedp.OuterHTML("html", html),
	)
}

// Fetch opens pageURL in a new tab and returns the rendered document
func (c *ChromeClient) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	tabCtx, tabCancel := chromedp.NewContext(c.browserCtx)
	defer tabCancel()
	if c.config.Timeout > 0 {
		tabCtx, tabCancel = context.WithTimeout(tabCtx, c.config.Timeout)
		defer tabCancel()
	}
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	start := time.Now()
	var location, html string
	err := chromedp.Run(tabCtx, navigationTasks(c.config, pageURL, &location, &html))
	if err != nil {
		c.record(0, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("navigation to %s failed: %w", pageURL, err)
	}
	c.record(time.Since(start), nil)
	c.logger.Debugf("rendered %s in %s", pageURL, time.Since(start))

	if location == "" {
		location = pageURL
	}
	return documentFrom(html, location)
}

// documentFrom parses rendered markup and binds it to the page URL
func documentFrom(html, location string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rendered HTML: %w", err)
	}
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("invalid page location %q: %w", location, err)
	}
	doc.Url = u
	return doc, nil
}

func (c *ChromeClient) record(loadTime time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.stats.Errors++
		return
	}
	c.stats.PagesLoaded++
	if c.stats.PagesLoaded == 1 {
		c.stats.AverageLoadTime = loadTime
	} else {
		c.stats.AverageLoadTime = (c.stats.AverageLoadTime + loadTime) / 2
	}
}

// Stats returns a snapshot of the client's statistics
func (c *ChromeClient) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Close shuts the browser down
func (c *ChromeClient) Close() error {
	if c.browserCancel != nil {
		c.browserCancel()
	}
	if c.allocCancel != nil {
		c.allocCancel()
	}
	return nil
}
