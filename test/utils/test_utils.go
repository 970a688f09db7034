// test/utils/test_utils.go
package utils

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// FixtureServer serves fixed HTML pages by path and counts requests
type FixtureServer struct {
	*httptest.Server

	mu    sync.Mutex
	pages map[string]string
	hits  map[string]int
}

// NewFixtureServer creates a server answering each path in pages with its HTML.
// Pages may reference other pages with the placeholder {{base}}, which is
// replaced by the server URL. Unknown paths return 404.
func NewFixtureServer(pages map[string]string) *FixtureServer {
	fs := &FixtureServer{
		pages: make(map[string]string, len(pages)),
		hits:  make(map[string]int),
	}
	for path, html := range pages {
		fs.pages[path] = html
	}

	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Path
		if r.URL.RawQuery != "" {
			key += "?" + r.URL.RawQuery
		}

		fs.mu.Lock()
		fs.hits[key]++
		html, ok := fs.pages[key]
		if !ok {
			html, ok = fs.pages[r.URL.Path]
		}
		fs.mu.Unlock()

		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, strings.ReplaceAll(html, "{{base}}", fs.URL))
	}))

	return fs
}

// Page returns the absolute URL of path on the server
func (fs *FixtureServer) Page(path string) string {
	return fs.URL + path
}

// Hits returns how many times path was requested
func (fs *FixtureServer) Hits(path string) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.hits[path]
}

// TotalHits returns the number of requests served
func (fs *FixtureServer) TotalHits() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	total := 0
	for _, n := range fs.hits {
		total += n
	}
	return total
}

// CreateErrorServer creates a server that returns HTTP errors
func CreateErrorServer(statusCode int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusCode)
		fmt.Fprintf(w, "HTTP Error %d", statusCode)
	}))
}
