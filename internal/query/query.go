package query

import (
	"context"
	"errors"
	"time"
)

// ErrDisabled is returned by Get when the query's enabled gate is closed;
// no network call is made and no error state is cached.
var ErrDisabled = errors.New("query disabled")

// DefaultRetries is the extra attempts granted to reads after the first
// failure. Writes never retry.
const DefaultRetries = 2

// NoRetry disables the read retry budget for a query.
const NoRetry = -1

// FetchFunc loads a fresh value from the backend.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Query is one cached read operation: a key, a fetcher, a staleness window
// and an optional enabled gate.
type Query[T any] struct {
	Cache     *Cache
	Key       Key
	Fetch     FetchFunc[T]
	StaleTime time.Duration
	// Retries is the extra attempts after a failed fetch; 0 means
	// DefaultRetries, NoRetry means none.
	Retries int
	// Enabled gates execution. A nil gate is open. A closed gate makes Get
	// return ErrDisabled without touching the network.
	Enabled func() bool
}

// Get returns the cached value while it is fresh, and refetches when the
// entry is absent, stale-marked, or past its staleness window. Concurrent
// refetches of the same key are resolved by fetch sequence: a superseded
// fetch returns its result to its own caller but never overwrites the
// cache.
func (q *Query[T]) Get(ctx context.Context) (T, error) {
	var zero T
	if q.Enabled != nil && !q.Enabled() {
		return zero, ErrDisabled
	}

	c := q.Cache
	c.mu.Lock()
	e := c.ensure(q.Key)
	if e.hasValue && !e.stale && time.Since(e.fetchedAt) < q.StaleTime {
		value := e.value.(T)
		c.mu.Unlock()
		return value, nil
	}
	e.seq++
	mySeq := e.seq
	c.mu.Unlock()

	value, err := q.fetchWithRetry(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		return zero, err
	}
	if e.seq == mySeq {
		e.value = value
		e.hasValue = true
		e.fetchedAt = time.Now()
		e.stale = false
	}
	return value, nil
}

// Refresh bypasses the staleness window and fetches now. Pollers use this.
func (q *Query[T]) Refresh(ctx context.Context) (T, error) {
	q.Cache.Invalidate(q.Key)
	return q.Get(ctx)
}

// Peek returns the cached value without fetching, and whether one exists.
// The value may be stale.
func (q *Query[T]) Peek() (T, bool) {
	var zero T
	c := q.Cache
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[q.Key.String()]
	if !ok || !e.hasValue {
		return zero, false
	}
	return e.value.(T), true
}

func (q *Query[T]) fetchWithRetry(ctx context.Context) (T, error) {
	retries := q.Retries
	switch {
	case retries == 0:
		retries = DefaultRetries
	case retries < 0:
		retries = 0
	}

	var value T
	var err error
	for attempt := 0; attempt <= retries; attempt++ {
		if ctx.Err() != nil {
			return value, ctx.Err()
		}
		value, err = q.Fetch(ctx)
		if err == nil {
			return value, nil
		}
	}
	return value, err
}
