// internal/scraper/client_test.go
package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/text/encoding/htmlindex"
)

func TestNewHTTPClient_Defaults(t *testing.T) {
	client := NewHTTPClient(ClientConfig{})
	if client.httpClient.Timeout != 30*time.Second {
		t.Errorf("Expected default timeout 30s, got %v", client.httpClient.Timeout)
	}
	if client.userAgent != DefaultUserAgent {
		t.Errorf("Expected default user agent, got %q", client.userAgent)
	}
	if client.retryDelay != time.Second {
		t.Errorf("Expected default retry delay 1s, got %v", client.retryDelay)
	}
}

func TestHTTPClient_Fetch(t *testing.T) {
	var gotAgent, gotHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		gotHeader = r.Header.Get("Accept-Language")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><a class="x" href="/next">Next</a></body></html>`))
	}))
	defer server.Close()

	client := NewHTTPClient(ClientConfig{
		UserAgent: "TestAgent/1.0",
		Headers:   map[string]string{"Accept-Language": "ru-RU"},
	})
	doc, err := client.Fetch(context.Background(), server.URL+"/list")
	if err != nil {
		t.Fatalf("Expected successful request, got error: %v", err)
	}

	if gotAgent != "TestAgent/1.0" || gotHeader != "ru-RU" {
		t.Errorf("unexpected request headers: %q %q", gotAgent, gotHeader)
	}
	if doc.Url == nil || doc.Url.String() != server.URL+"/list" {
		t.Fatalf("document url not set: %v", doc.Url)
	}
	if got := absAttr(doc, doc.Find(".x"), "href"); got != server.URL+"/next" {
		t.Errorf("expected relative href to resolve, got %q", got)
	}
}

func TestHTTPClient_FetchRetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer server.Close()

	client := NewHTTPClient(ClientConfig{RetryAttempts: 3, RetryDelay: time.Millisecond})
	if _, err := client.Fetch(context.Background(), server.URL); err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("Expected 3 attempts, got %d", calls)
	}
}

func TestHTTPClient_FetchDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewHTTPClient(ClientConfig{RetryAttempts: 3, RetryDelay: time.Millisecond})
	_, err := client.Fetch(context.Background(), server.URL)

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusNotFound {
		t.Fatalf("Expected HTTP 404 error, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("Expected a single attempt, got %d", calls)
	}
}

func TestHTTPClient_FetchDecodesCharset(t *testing.T) {
	enc, err := htmlindex.Get("windows-1251")
	if err != nil {
		t.Fatalf("encoding lookup: %v", err)
	}
	body, err := enc.NewEncoder().String(`<html><body><div class="nameRus"><a href="/film/1/">Брат</a></div></body></html>`)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=windows-1251")
		w.Write([]byte(body))
	}))
	defer server.Close()

	doc, err := NewHTTPClient(ClientConfig{}).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := doc.Find(".nameRus a").Text(); got != "Брат" {
		t.Errorf("expected decoded title, got %q", got)
	}
}

func TestShouldRetryStatusCode(t *testing.T) {
	for code, want := range map[int]bool{
		http.StatusTooManyRequests:     true,
		http.StatusBadGateway:          true,
		http.StatusGatewayTimeout:      true,
		http.StatusNotFound:            false,
		http.StatusForbidden:           false,
		http.StatusInternalServerError: true,
	} {
		if got := shouldRetryStatusCode(code); got != want {
			t.Errorf("shouldRetryStatusCode(%d) = %v, want %v", code, got, want)
		}
	}
}
