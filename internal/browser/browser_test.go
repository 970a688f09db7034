// internal/browser/browser_test.go
package browser

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/moreffnest/weblist-parsers/internal/config"
	"github.com/moreffnest/weblist-parsers/internal/utils"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Headless {
		t.Error("Expected headless mode by default")
	}
	if cfg.ViewportWidth != 1920 || cfg.ViewportHeight != 1080 {
		t.Errorf("Expected viewport 1920x1080, got %dx%d", cfg.ViewportWidth, cfg.ViewportHeight)
	}
	if !cfg.DisableImages {
		t.Error("Expected images to be disabled by default")
	}
}

func TestFromConfig(t *testing.T) {
	headed := false
	cfg := FromConfig(config.BrowserConfig{
		Enabled:        true,
		Headless:       &headed,
		Timeout:        5 * time.Second,
		WaitDelay:      time.Second,
		WaitForElement: ".content",
		UserAgent:      "test-agent",
	})

	if cfg.Headless {
		t.Error("Expected headless to follow the application config")
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", cfg.Timeout)
	}
	if cfg.WaitForElement != ".content" || cfg.WaitDelay != time.Second || cfg.UserAgent != "test-agent" {
		t.Errorf("Unexpected config: %+v", cfg)
	}

	if got := FromConfig(config.BrowserConfig{}).Timeout; got != DefaultConfig().Timeout {
		t.Errorf("Expected default timeout when unset, got %v", got)
	}
}

func TestFromConfigHeadlessByDefault(t *testing.T) {
	if !FromConfig(config.Default().Browser).Headless {
		t.Error("Expected headless mode when the config does not set it")
	}
	if !FromConfig(config.BrowserConfig{Enabled: true}).Headless {
		t.Error("Expected headless mode for an enabled browser without a headless key")
	}

	loaded, err := config.LoadFromBytes([]byte("browser:\n  enabled: true\n"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if !FromConfig(loaded.Browser).Headless {
		t.Error("Expected headless mode for a config file without a headless key")
	}

	opts := allocatorOptions(FromConfig(config.Default().Browser))
	if len(opts) != len(allocatorOptions(&Config{DisableImages: true}))+1 {
		t.Error("Expected the headless allocator option to be present")
	}
}

func TestAllocatorOptions(t *testing.T) {
	base := len(allocatorOptions(&Config{}))
	full := len(allocatorOptions(&Config{Headless: true, UserAgent: "ua", DisableImages: true}))
	if full != base+3 {
		t.Errorf("Expected 3 extra options, got %d", full-base)
	}
}

func TestNavigationTasks(t *testing.T) {
	var location, html string

	tasks := navigationTasks(&Config{}, "https://example.com", &location, &html)
	if len(tasks) != 4 {
		t.Errorf("Expected 4 tasks, got %d", len(tasks))
	}

	tasks = navigationTasks(&Config{WaitForElement: ".list", WaitDelay: time.Second}, "https://example.com", &location, &html)
	if len(tasks) != 6 {
		t.Errorf("Expected 6 tasks with wait options, got %d", len(tasks))
	}
}

func TestDocumentFrom(t *testing.T) {
	doc, err := documentFrom(`<html><body><a class="x" href="/title/1">One</a></body></html>`, "https://example.com/list?page=2")
	if err != nil {
		t.Fatalf("documentFrom failed: %v", err)
	}
	if doc.Url == nil || doc.Url.String() != "https://example.com/list?page=2" {
		t.Errorf("Expected document URL to be set, got %v", doc.Url)
	}
	if got := doc.Find(".x").Text(); got != "One" {
		t.Errorf("Expected link text One, got %q", got)
	}

	if _, err := documentFrom("<html></html>", "://bad"); err == nil {
		t.Error("Expected error for invalid location")
	}
}

type fakeClient struct {
	closed atomic.Bool
}

func (f *fakeClient) Fetch(_ context.Context, pageURL string) (*goquery.Document, error) {
	return documentFrom("<html><body>"+pageURL+"</body></html>", pageURL)
}

func (f *fakeClient) Close() error {
	f.closed.Store(true)
	return nil
}

func TestPool_ReusesClients(t *testing.T) {
	var started int32
	pool := newPool(2, func() (Client, error) {
		atomic.AddInt32(&started, 1)
		return &fakeClient{}, nil
	})
	defer pool.Close()

	for i := 0; i < 5; i++ {
		doc, err := pool.Fetch(context.Background(), "https://example.com/a")
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if !strings.Contains(doc.Text(), "example.com/a") {
			t.Errorf("Unexpected document text %q", doc.Text())
		}
	}

	if n := atomic.LoadInt32(&started); n != 1 {
		t.Errorf("Expected a single client for sequential fetches, got %d", n)
	}
	if pool.Size() != 1 {
		t.Errorf("Expected 1 idle client, got %d", pool.Size())
	}
}

func TestPool_WaitsAtLimit(t *testing.T) {
	pool := newPool(1, func() (Client, error) { return &fakeClient{}, nil })
	defer pool.Close()

	c, err := pool.Get(context.Background())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := pool.Get(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline error while the only client is busy, got %v", err)
	}

	if err := pool.Put(c); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, err := pool.Get(context.Background()); err != nil {
		t.Errorf("Expected returned client to be reusable, got %v", err)
	}
	if pool.TotalSize() != 1 {
		t.Errorf("Expected 1 started client, got %d", pool.TotalSize())
	}
}

func TestPool_StartFailure(t *testing.T) {
	pool := newPool(1, func() (Client, error) { return nil, errors.New("no chrome") })
	defer pool.Close()

	if _, err := pool.Fetch(context.Background(), "https://example.com"); err == nil {
		t.Fatal("Expected start error")
	}
	if pool.TotalSize() != 0 {
		t.Errorf("Expected failed start to release its slot, got %d", pool.TotalSize())
	}
}

func TestPool_Close(t *testing.T) {
	client := &fakeClient{}
	pool := newPool(1, func() (Client, error) { return client, nil })

	c, err := pool.Get(context.Background())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if err := pool.Put(c); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	pool.Close()

	if !client.closed.Load() {
		t.Error("Expected idle client to be closed")
	}
	if _, err := pool.Get(context.Background()); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Expected ErrPoolClosed, got %v", err)
	}
	if err := pool.Put(&fakeClient{}); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Expected ErrPoolClosed from Put, got %v", err)
	}
}

func TestChromeClient_Fetch(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping browser test in short mode")
	}
	found := false
	for _, name := range []string{"google-chrome", "chromium", "chromium-browser", "headless-shell"} {
		if _, err := exec.LookPath(name); err == nil {
			found = true
			break
		}
	}
	if !found {
		t.Skip("Skipping browser test: Chrome not installed")
	}

	cfg := DefaultConfig()
	cfg.Timeout = 20 * time.Second
	client, err := NewChromeClient(cfg, utils.NopLogger{})
	if err != nil {
		t.Skipf("Skipping browser test: %v", err)
	}
	defer client.Close()

	doc, err := client.Fetch(context.Background(), "data:text/html,<p class='x'>rendered</p>")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if got := doc.Find(".x").Text(); got != "rendered" {
		t.Errorf("Expected rendered text, got %q", got)
	}
	if client.Stats().PagesLoaded != 1 {
		t.Errorf("Expected 1 page loaded, got %d", client.Stats().PagesLoaded)
	}
}
