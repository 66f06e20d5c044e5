package dictionary

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cached memoizes results of an underlying Lookup in a bounded LRU.
// Failed lookups are not cached.
type Cached struct {
	next  Lookup
	cache *lru.Cache[string, []Entry]
}

func NewCached(next Lookup, size int) (*Cached, error) {
	c, err := lru.New[string, []Entry](size)
	if err != nil {
		return nil, fmt.Errorf("dictionary cache: %w", err)
	}
	return &Cached{next: next, cache: c}, nil
}

func (c *Cached) Lookup(form string) ([]Entry, error) {
	if es, ok := c.cache.Get(form); ok {
		return append([]Entry(nil), es...), nil
	}
	es, err := c.next.Lookup(form)
	if err != nil {
		return nil, err
	}
	c.cache.Add(form, append([]Entry(nil), es...))
	return es, nil
}

// Purge drops all cached results.
func (c *Cached) Purge() { c.cache.Purge() }
