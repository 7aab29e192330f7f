package query

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/brunopinheiroeu/artori-sub001/internal/pkg/logger"
)

// entry is one cached result. seq counts started fetches for the key; a
// fetch that settles after a newer one started discards its write, so the
// displayed value always reflects the most recently started request that
// settled in order.
type entry struct {
	key       Key
	value     any
	hasValue  bool
	fetchedAt time.Time
	stale     bool
	seq       uint64
}

// Cache is the process-wide query cache. It is injectable rather than a
// package singleton so tests can run against isolated instances. Safe for
// concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	logger  zerolog.Logger
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		logger:  logger.WithComponent("query"),
	}
}

// Invalidate marks every entry under prefix as stale and returns how many
// were touched. Stale entries refetch on next access; nothing is evicted.
func (c *Cache) Invalidate(prefix Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	touched := 0
	for _, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			e.stale = true
			touched++
		}
	}
	c.logger.Debug().Str("prefix", prefix.String()).Int("entries", touched).Msg("Invalidated cache entries")
	return touched
}

// Clear drops every entry. Used on logout.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}

// Len returns the number of entries currently held.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) ensure(key Key) *entry {
	id := key.String()
	e, ok := c.entries[id]
	if !ok {
		e = &entry{key: key}
		c.entries[id] = e
	}
	return e
}
