package query

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingQuery(cache *Cache, key Key, staleTime time.Duration) (*Query[int], *int) {
	calls := 0
	q := &Query[int]{
		Cache:     cache,
		Key:       key,
		StaleTime: staleTime,
		Retries:   NoRetry,
		Fetch: func(ctx context.Context) (int, error) {
			calls++
			return calls, nil
		},
	}
	return q, &calls
}

func TestGetServesFreshFromCache(t *testing.T) {
	cache := NewCache()
	q, calls := countingQuery(cache, Key{"exams"}, time.Minute)
	ctx := context.Background()

	v1, err := q.Get(ctx)
	require.NoError(t, err)
	v2, err := q.Get(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, v1)
	assert.Equal(t, 1, v2)
	assert.Equal(t, 1, *calls)
}

func TestGetRefetchesPastStaleness(t *testing.T) {
	cache := NewCache()
	q, calls := countingQuery(cache, Key{"health"}, time.Millisecond)
	ctx := context.Background()

	_, err := q.Get(ctx)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	v, err := q.Get(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, v)
	assert.Equal(t, 2, *calls)
}

func TestInvalidatePrefix(t *testing.T) {
	cache := NewCache()
	ctx := context.Background()

	list, listCalls := countingQuery(cache, Key{"admin", "users", "page=1"}, time.Hour)
	detail, detailCalls := countingQuery(cache, Key{"admin", "users", "page=2"}, time.Hour)
	other, otherCalls := countingQuery(cache, Key{"exams"}, time.Hour)

	for _, q := range []*Query[int]{list, detail, other} {
		_, err := q.Get(ctx)
		require.NoError(t, err)
	}

	touched := cache.Invalidate(Key{"admin", "users"})
	assert.Equal(t, 2, touched)

	_, _ = list.Get(ctx)
	_, _ = detail.Get(ctx)
	_, _ = other.Get(ctx)

	assert.Equal(t, 2, *listCalls)
	assert.Equal(t, 2, *detailCalls)
	assert.Equal(t, 1, *otherCalls)
}

func TestRetryBudgetOnReads(t *testing.T) {
	cache := NewCache()
	calls := 0
	q := &Query[string]{
		Cache:     cache,
		Key:       Key{"flaky"},
		StaleTime: time.Minute,
		Fetch: func(ctx context.Context) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("transient")
			}
			return "ok", nil
		},
	}

	v, err := q.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 3, calls)
}

func TestRetryBudgetExhausted(t *testing.T) {
	cache := NewCache()
	calls := 0
	q := &Query[string]{
		Cache:     cache,
		Key:       Key{"down"},
		StaleTime: time.Minute,
		Fetch: func(ctx context.Context) (string, error) {
			calls++
			return "", errors.New("still down")
		},
	}

	_, err := q.Get(context.Background())
	assert.EqualError(t, err, "still down")
	assert.Equal(t, 1+DefaultRetries, calls)
}

func TestNoRetry(t *testing.T) {
	cache := NewCache()
	calls := 0
	q := &Query[string]{
		Cache:     cache,
		Key:       Key{"health"},
		StaleTime: time.Minute,
		Retries:   NoRetry,
		Fetch: func(ctx context.Context) (string, error) {
			calls++
			return "", errors.New("down")
		},
	}

	_, err := q.Get(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDisabledQuery(t *testing.T) {
	cache := NewCache()
	called := false
	q := &Query[int]{
		Cache:     cache,
		Key:       Key{"auth", "me"},
		StaleTime: time.Minute,
		Enabled:   func() bool { return false },
		Fetch: func(ctx context.Context) (int, error) {
			called = true
			return 0, nil
		},
	}

	_, err := q.Get(context.Background())
	assert.ErrorIs(t, err, ErrDisabled)
	assert.False(t, called)
	assert.Equal(t, 0, cache.Len())
}

func TestPeek(t *testing.T) {
	cache := NewCache()
	q, _ := countingQuery(cache, Key{"exams"}, time.Minute)

	_, ok := q.Peek()
	assert.False(t, ok)

	_, err := q.Get(context.Background())
	require.NoError(t, err)

	v, ok := q.Peek()
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

// A fetch that settles after a newer fetch started must not overwrite the
// newer result.
func TestSupersededFetchDoesNotOverwrite(t *testing.T) {
	cache := NewCache()
	release := make(chan struct{})
	started := make(chan struct{})
	calls := 0
	var mu sync.Mutex

	q := &Query[string]{
		Cache:     cache,
		Key:       Key{"exams"},
		StaleTime: time.Hour,
		Retries:   NoRetry,
		Fetch: func(ctx context.Context) (string, error) {
			mu.Lock()
			calls++
			mine := calls
			mu.Unlock()
			if mine == 1 {
				close(started)
				<-release
				return "slow-old", nil
			}
			return "fast-new", nil
		},
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := q.Get(context.Background())
		assert.NoError(t, err)
		// The slow caller still receives its own result.
		assert.Equal(t, "slow-old", v)
	}()

	<-started
	// Force a second fetch for the same key while the first is in flight.
	cache.Invalidate(Key{"exams"})
	v, err := q.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fast-new", v)

	close(release)
	wg.Wait()

	cached, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, "fast-new", cached)
}

func TestMutationInvalidatesOnSuccess(t *testing.T) {
	cache := NewCache()
	ctx := context.Background()

	listQ, listCalls := countingQuery(cache, Key{"admin", "exams", "page=1"}, time.Hour)
	statsQ, statsCalls := countingQuery(cache, Key{"admin", "stats"}, time.Hour)
	_, _ = listQ.Get(ctx)
	_, _ = statsQ.Get(ctx)

	m := &Mutation[string, string]{
		Cache:       cache,
		Invalidates: []Key{{"admin", "exams"}, {"admin", "stats"}},
		Fn: func(ctx context.Context, arg string) (string, error) {
			return arg + "-created", nil
		},
	}
	out, err := m.Do(ctx, "sat")
	require.NoError(t, err)
	assert.Equal(t, "sat-created", out)

	_, _ = listQ.Get(ctx)
	_, _ = statsQ.Get(ctx)
	assert.Equal(t, 2, *listCalls)
	assert.Equal(t, 2, *statsCalls)
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(level Level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, string(level)+": "+message)
}

func TestMutationFailureNotifiesAndSkipsInvalidation(t *testing.T) {
	cache := NewCache()
	ctx := context.Background()

	listQ, listCalls := countingQuery(cache, Key{"admin", "users", "p1"}, time.Hour)
	_, _ = listQ.Get(ctx)

	notifier := &recordingNotifier{}
	m := &Mutation[string, string]{
		Cache:       cache,
		Notifier:    notifier,
		Invalidates: []Key{{"admin", "users"}},
		Fn: func(ctx context.Context, arg string) (string, error) {
			return "", errors.New("email already registered")
		},
	}

	_, err := m.Do(ctx, "dup")
	assert.EqualError(t, err, "email already registered")
	assert.Equal(t, []string{"error: email already registered"}, notifier.messages)

	// Failed writes leave the cache untouched.
	_, _ = listQ.Get(ctx)
	assert.Equal(t, 1, *listCalls)
}

func TestPollerBypassesStalenessAndStops(t *testing.T) {
	cache := NewCache()
	var mu sync.Mutex
	fetches := 0
	q := &Query[int]{
		Cache:     cache,
		Key:       Key{"health"},
		StaleTime: time.Hour,
		Retries:   NoRetry,
		Fetch: func(ctx context.Context) (int, error) {
			mu.Lock()
			defer mu.Unlock()
			fetches++
			return fetches, nil
		},
	}

	results := 0
	p := &Poller[int]{
		Query:    q,
		Interval: 5 * time.Millisecond,
		OnResult: func(int, error) {
			mu.Lock()
			results++
			mu.Unlock()
		},
	}

	stop := p.Start(context.Background())
	time.Sleep(40 * time.Millisecond)
	stop()
	stop() // stopping twice is safe

	mu.Lock()
	seenResults, seenFetches := results, fetches
	mu.Unlock()
	// The hour-long staleness window would allow a single fetch; the poller
	// must have refetched anyway.
	assert.GreaterOrEqual(t, seenResults, 3)
	assert.GreaterOrEqual(t, seenFetches, 3)

	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	after := results
	mu.Unlock()
	assert.LessOrEqual(t, after, seenResults+1)
}
