// Package query is an in-process read cache with prefix invalidation,
// per-entry staleness windows and write-through mutations. It is the
// synchronization point between the typed API client and everything that
// renders its data.
package query

import (
	"net/url"
	"strings"
)

// Key identifies one cache entry: a resource path plus any identifying
// parameters, e.g. ["admin","users","page=2&page_size=10"]. Invalidation
// targets key prefixes, so every page of a list and every derived view
// under the same resource family falls together.
type Key []string

// With returns a new key with extra trailing components. The receiver is
// not modified.
func (k Key) With(parts ...string) Key {
	out := make(Key, 0, len(k)+len(parts))
	out = append(out, k...)
	return append(out, parts...)
}

// WithParams appends a deterministic encoding of params. url.Values.Encode
// sorts by key, so equal params always produce equal cache keys.
func (k Key) WithParams(params url.Values) Key {
	if len(params) == 0 {
		return k
	}
	return k.With(params.Encode())
}

// String renders the key for map storage and logging.
func (k Key) String() string {
	return strings.Join(k, "/")
}

// HasPrefix reports whether k falls under prefix.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i, part := range prefix {
		if k[i] != part {
			return false
		}
	}
	return true
}
