package query

import (
	"context"
	"time"
)

// DefaultPollInterval is the fixed cadence of the system-health poll.
const DefaultPollInterval = 30 * time.Second

// Poller re-runs a query on a fixed interval, bypassing its staleness
// window, for as long as its context lives. Mirrors a mounted view that
// polls; cancelling the context is the unmount.
type Poller[T any] struct {
	Query    *Query[T]
	Interval time.Duration
	// OnResult receives every settled result, errors included.
	OnResult func(value T, err error)
}

// Start launches the polling goroutine and returns a stop function. The
// first fetch fires immediately. Stopping twice is safe.
func (p *Poller[T]) Start(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		p.tick(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.tick(ctx)
			}
		}
	}()

	return cancel
}

func (p *Poller[T]) tick(ctx context.Context) {
	value, err := p.Query.Refresh(ctx)
	if ctx.Err() != nil {
		return
	}
	if p.OnResult != nil {
		p.OnResult(value, err)
	}
}
