package query

import "context"

// MutateFunc performs one write against the backend.
type MutateFunc[A, T any] func(ctx context.Context, arg A) (T, error)

// Mutation is one write operation plus its cache consequences. Writes are
// write-through: nothing is stored locally until the server confirms, and
// failures are never retried.
type Mutation[A, T any] struct {
	Cache *Cache
	Fn    MutateFunc[A, T]
	// Invalidates lists the key prefixes made stale by a successful write:
	// the resource's own entries, any public mirror of it, and any
	// aggregate view counting over it.
	Invalidates []Key
	// Notifier receives a user-visible message when the write fails.
	Notifier Notifier
	// OnSuccess runs after invalidation, e.g. to persist a side effect.
	OnSuccess func(T)
}

// Do runs the write. On success every listed prefix is invalidated so
// dependent reads refetch; on failure the notifier carries the propagated
// message and the error is returned unchanged.
func (m *Mutation[A, T]) Do(ctx context.Context, arg A) (T, error) {
	result, err := m.Fn(ctx, arg)
	if err != nil {
		if m.Notifier != nil {
			m.Notifier.Notify(LevelError, err.Error())
		}
		var zero T
		return zero, err
	}

	for _, prefix := range m.Invalidates {
		m.Cache.Invalidate(prefix)
	}
	if m.OnSuccess != nil {
		m.OnSuccess(result)
	}
	return result, nil
}
