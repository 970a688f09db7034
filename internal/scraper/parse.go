// internal/scraper/parse.go
package scraper

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/moreffnest/weblist-parsers/pkg/types"
)

// Parse resolves the source for rawURL and paginates it to the end
func (d *Driver) Parse(ctx context.Context, rawURL string) (*Result, error) {
	src, err := Resolve(rawURL)
	if err != nil {
		return nil, err
	}
	return d.Run(ctx, src, rawURL)
}

// ParseAll parses independent lists with at most concurrency lists in flight
// and merges their entries. The first failure cancels the remaining lists; the
// merged set still holds everything gathered before it.
func (d *Driver) ParseAll(ctx context.Context, urls []string, concurrency int) (types.EntrySet, error) {
	if concurrency <= 0 {
		concurrency = 1
	}

	var (
		mu     sync.Mutex
		merged = types.NewEntrySet()
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, rawURL := range urls {
		g.Go(func() error {
			result, err := d.Parse(ctx, rawURL)
			if result != nil {
				mu.Lock()
				merged.Union(result.Entries)
				mu.Unlock()
			}
			return err
		})
	}

	err := g.Wait()
	return merged, err
}
