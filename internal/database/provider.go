package database

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ztacole/BacaDong/internal/config"
	"github.com/ztacole/BacaDong/internal/logging"
)

// ErrProviderClosed is returned by Provider.Database after Close.
var ErrProviderClosed = errors.New("database provider closed")

// Provider owns the process-wide catalog connection pool. The pool is opened
// on first use; concurrent first callers block on the same open and all see
// the same handle or the same error.
type Provider struct {
	cfg    config.Database
	open   func(config.Database) (*Database, error)
	once   sync.Once
	mu     sync.Mutex
	db     *Database
	err    error
	closed bool
}

// NewProvider returns a provider that opens cfg lazily.
func NewProvider(cfg config.Database) *Provider {
	return &Provider{cfg: cfg, open: NewDatabase}
}

// Database returns the shared handle, opening it on the first call. A failed
// open is not retried: every later call returns the same wrapped error.
func (p *Provider) Database() (*Database, error) {
	p.once.Do(func() {
		p.mu.Lock()
		closed := p.closed
		p.mu.Unlock()
		if closed {
			return
		}

		db, err := p.open(p.cfg)
		p.mu.Lock()
		defer p.mu.Unlock()
		if err != nil {
			logging.Error().Err(err).Str("driver", p.cfg.Driver).Msg("Database connection failed")
			p.err = fmt.Errorf("catalog database unavailable: %w", err)
			return
		}
		if p.closed {
			db.Close()
			return
		}
		p.db = db
	})

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrProviderClosed
	}
	return p.db, p.err
}

// Close closes the pool if it was opened. Safe to call more than once.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	if p.db == nil {
		return nil
	}
	return p.db.Close()
}
