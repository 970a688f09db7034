// internal/scraper/client.go
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/moreffnest/weblist-parsers/internal/utils"
)

// Fetcher turns a URL into a queryable document. The returned document's Url
// field is set to the final page URL so relative links can be resolved.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*goquery.Document, error)
}

// FetcherFunc adapts a function to the Fetcher interface
type FetcherFunc func(ctx context.Context, pageURL string) (*goquery.Document, error)

// Fetch calls f(ctx, pageURL)
func (f FetcherFunc) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	return f(ctx, pageURL)
}

// ClientConfig defines configuration options for the HTTP client
type ClientConfig struct {
	Timeout       time.Duration
	UserAgent     string
	Headers       map[string]string
	MaxBodyBytes  int64 // 0 reads the whole body
	RetryAttempts int
	RetryDelay    time.Duration
}

// DefaultUserAgent is sent when no user agent is configured
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// HTTPClient fetches pages over plain HTTP
type HTTPClient struct {
	httpClient    *http.Client
	userAgent     string
	headers       map[string]string
	maxBodyBytes  int64
	retryAttempts int
	retryDelay    time.Duration
}

// NewHTTPClient creates a new HTTP client with the specified configuration
func NewHTTPClient(config ClientConfig) *HTTPClient {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	httpClient := &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &HTTPClient{
		httpClient:    httpClient,
		userAgent:     config.UserAgent,
		headers:       config.Headers,
		maxBodyBytes:  config.MaxBodyBytes,
		retryAttempts: config.RetryAttempts,
		retryDelay:    config.RetryDelay,
	}
}

// Fetch performs a GET request and parses the response as HTML.
// Server errors and 429 responses are retried up to the configured attempts.
func (c *HTTPClient) Fetch(ctx context.Context, targetURL string) (*goquery.Document, error) {
	if _, err := url.Parse(targetURL); err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	var lastErr error

	for attempt := 0; attempt <= c.retryAttempts; attempt++ {
		if attempt > 0 {
			if err := c.waitForRetry(ctx, attempt-1); err != nil {
				return nil, err
			}
		}

		doc, retry, err := c.fetchOnce(ctx, targetURL)
		if err == nil {
			return doc, nil
		}
		lastErr = fmt.Errorf("attempt %d/%d: %w", attempt+1, c.retryAttempts+1, err)
		if !retry {
			break
		}
	}

	return nil, lastErr
}

// fetchOnce performs one request. The bool result reports whether a failure is worth retrying.
func (c *HTTPClient) fetchOnce(ctx context.Context, targetURL string) (*goquery.Document, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	c.setRequestHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, shouldRetryStatusCode(resp.StatusCode), &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        targetURL,
		}
	}

	var body io.Reader = resp.Body
	if c.maxBodyBytes > 0 {
		body = io.LimitReader(resp.Body, c.maxBodyBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, true, fmt.Errorf("failed to read body: %w", err)
	}

	encoding := utils.DetectEncoding(resp.Header.Get("Content-Type"), data)
	doc, err := ParseMarkup(bytes.NewReader(data), encoding)
	if err != nil {
		// an unknown charset label should not make the page unreadable
		doc, err = ParseMarkup(bytes.NewReader(data), "")
		if err != nil {
			return nil, false, err
		}
	}
	doc.Url = resp.Request.URL

	return doc, false, nil
}

// setRequestHeaders configures request headers
func (c *HTTPClient) setRequestHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
}

// waitForRetry implements exponential backoff with jitter
func (c *HTTPClient) waitForRetry(ctx context.Context, attempt int) error {
	backoffDelay := c.retryDelay * time.Duration(1<<uint(attempt))
	jitter := time.Duration(rand.Int63n(int64(backoffDelay/2) + 1))
	totalDelay := backoffDelay + jitter

	if totalDelay > 30*time.Second {
		totalDelay = 30 * time.Second
	}

	timer := time.NewTimer(totalDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// shouldRetryStatusCode determines if a status code warrants a retry
func shouldRetryStatusCode(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// HTTPError represents a non-2xx response
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %s (URL: %s)", e.Status, e.URL)
}
