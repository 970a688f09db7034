// internal/browser/pool.go
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/moreffnest/weblist-parsers/internal/utils"
)

// ErrPoolClosed is returned by a pool after Close
var ErrPoolClosed = errors.New("browser pool is closed")

// Pool shares a bounded number of browser clients between concurrent fetches.
// Clients are started lazily.
type Pool struct {
	newClient func() (Client, error)
	clients   chan Client
	maxSize   int

	mu          sync.Mutex
	currentSize int
	closed      bool
}

// NewPool creates a pool of up to maxSize Chrome clients
func NewPool(cfg *Config, maxSize int, logger utils.Logger) *Pool {
	return newPool(maxSize, func() (Client, error) {
		return NewChromeClient(cfg, logger)
	})
}

func newPool(maxSize int, newClient func() (Client, error)) *Pool {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &Pool{
		newClient: newClient,
		clients:   make(chan Client, maxSize),
		maxSize:   maxSize,
	}
}

// Get retrieves an idle client, starts a new one under the limit, or waits
func (p *Pool) Get(ctx context.Context) (Client, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	select {
	case c := <-p.clients:
		p.mu.Unlock()
		return c, nil
	default:
	}
	if p.currentSize < p.maxSize {
		p.currentSize++
		p.mu.Unlock()
		c, err := p.newClient()
		if err != nil {
			p.mu.Lock()
			p.currentSize--
			p.mu.Unlock()
			return nil, err
		}
		return c, nil
	}
	p.mu.Unlock()

	select {
	case c, ok := <-p.clients:
		if !ok {
			return nil, ErrPoolClosed
		}
		return c, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Put returns a client to the pool
func (p *Pool) Put(c Client) error {
	if c == nil {
		return fmt.Errorf("cannot put nil client in pool")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		c.Close()
		return ErrPoolClosed
	}
	p.clients <- c
	return nil
}

// Fetch renders pageURL with a pooled client
func (p *Pool) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	c, err := p.Get(ctx)
	if err != nil {
		return nil, err
	}
	defer p.Put(c)
	return c.Fetch(ctx, pageURL)
}

// Size returns the number of idle clients
func (p *Pool) Size() int {
	return len(p.clients)
}

// TotalSize returns the number of clients started
func (p *Pool) TotalSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentSize
}

// Close shuts down every idle client. Clients still in use are closed when returned.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	close(p.clients)
	for c := range p.clients {
		c.Close()
	}
	p.currentSize = 0
	return nil
}
