// internal/browser/types.go
package browser

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/moreffnest/weblist-parsers/internal/config"
)

// Config defines headless browser fetching
type Config struct {
	Headless       bool
	Timeout        time.Duration
	ViewportWidth  int
	ViewportHeight int
	WaitForElement string
	WaitDelay      time.Duration
	UserAgent      string
	DisableImages  bool
}

// DefaultConfig returns the default browser configuration
func DefaultConfig() *Config {
	return &Config{
		Headless:       true,
		Timeout:        60 * time.Second,
		ViewportWidth:  1920,
		ViewportHeight: 1080,
		DisableImages:  true,
	}
}

// FromConfig builds a browser configuration from the application settings
func FromConfig(cfg config.BrowserConfig) *Config {
	c := DefaultConfig()
	if cfg.Headless != nil {
		c.Headless = *cfg.Headless
	}
	if cfg.Timeout > 0 {
		c.Timeout = cfg.Timeout
	}
	c.WaitForElement = cfg.WaitForElement
	c.WaitDelay = cfg.WaitDelay
	c.UserAgent = cfg.UserAgent
	return c
}

// Client renders pages in a browser and returns the resulting document
type Client interface {
	Fetch(ctx context.Context, pageURL string) (*goquery.Document, error)
	Close() error
}

// Stats contains browser fetching statistics
type Stats struct {
	PagesLoaded     int           `json:"pages_loaded"`
	AverageLoadTime time.Duration `json:"average_load_time"`
	Errors          int           `json:"errors"`
}
