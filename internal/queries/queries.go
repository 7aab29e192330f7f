// Package queries binds every API operation to the query cache: one read
// binding per endpoint with its cache key and staleness window, one
// mutation per write with its invalidation set.
package queries

import (
	"time"

	"github.com/brunopinheiroeu/artori-sub001/internal/api"
	"github.com/brunopinheiroeu/artori-sub001/internal/pkg/logger"
	"github.com/brunopinheiroeu/artori-sub001/internal/query"
	"github.com/brunopinheiroeu/artori-sub001/internal/session"
)

// Key roots, one per resource family. Params become trailing components, so
// invalidating a root covers every page and filter combination under it.
var (
	keyAuthMe         = query.Key{"auth", "me"}
	keyExams          = query.Key{"exams"}
	keyQuestions      = query.Key{"questions"}
	keyHealth         = query.Key{"health"}
	keyAdminStats     = query.Key{"admin", "stats"}
	keyAdminActivity  = query.Key{"admin", "activity"}
	keyAdminHealth    = query.Key{"admin", "health"}
	keyAdminUsers     = query.Key{"admin", "users"}
	keyAdminExams     = query.Key{"admin", "exams"}
	keyAdminQuestions = query.Key{"admin", "questions"}
	keyAdminAnalytics = query.Key{"admin", "analytics"}
	keyAdminSettings  = query.Key{"admin", "settings"}
	keyAdminProfile   = query.Key{"admin", "profile"}
	keyAdminPrefs     = query.Key{"admin", "preferences"}
)

// Staleness windows. Catalog data barely moves; admin dashboards want to be
// close to live.
const (
	staleCatalog   = 10 * time.Minute
	staleQuestions = 5 * time.Minute
	staleUser      = 5 * time.Minute
	staleAdminList = 30 * time.Second
	staleStats     = 60 * time.Second
	staleHealth    = 15 * time.Second
	staleSettings  = 10 * time.Minute
	staleAnalytics = 5 * time.Minute
)

// Queries wires the typed API client to a cache instance. One value is
// shared per process; tests build isolated ones.
type Queries struct {
	api      *api.Client
	cache    *query.Cache
	store    *session.Store
	notifier query.Notifier
}

// Option configures a Queries value.
type Option func(*Queries)

// WithNotifier routes mutation failures somewhere user-visible.
func WithNotifier(n query.Notifier) Option {
	return func(q *Queries) { q.notifier = n }
}

// WithSessionStore lets the auth bootstrap gate on the persisted token.
func WithSessionStore(store *session.Store) Option {
	return func(q *Queries) { q.store = store }
}

// New builds the binding layer.
func New(apiClient *api.Client, cache *query.Cache, opts ...Option) *Queries {
	q := &Queries{
		api:      apiClient,
		cache:    cache,
		notifier: query.LogNotifier{Logger: logger.WithComponent("queries")},
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Cache exposes the underlying cache, mainly for tests and for Logout.
func (q *Queries) Cache() *query.Cache {
	return q.cache
}

// tokenUsable gates the auth bootstrap: with a session store attached the
// persisted token decides; otherwise the in-memory one does. No token, no
// network call.
func (q *Queries) tokenUsable() bool {
	if q.store != nil {
		return q.store.TokenUsable()
	}
	return q.api.Authenticated()
}
