package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyWithDoesNotMutateReceiver(t *testing.T) {
	base := Key{"admin"}
	users := base.With("users")
	exams := base.With("exams")

	assert.Equal(t, Key{"admin"}, base)
	assert.Equal(t, Key{"admin", "users"}, users)
	assert.Equal(t, Key{"admin", "exams"}, exams)
}

func TestKeyWithParamsIsDeterministic(t *testing.T) {
	a := url.Values{}
	a.Set("page", "2")
	a.Set("search", "sat")

	b := url.Values{}
	b.Set("search", "sat")
	b.Set("page", "2")

	k := Key{"admin", "users"}
	assert.Equal(t, k.WithParams(a).String(), k.WithParams(b).String())

	// Empty params add nothing.
	assert.Equal(t, k, k.WithParams(url.Values{}))
}

func TestKeyHasPrefix(t *testing.T) {
	k := Key{"admin", "users", "page=2"}
	assert.True(t, k.HasPrefix(Key{"admin"}))
	assert.True(t, k.HasPrefix(Key{"admin", "users"}))
	assert.True(t, k.HasPrefix(k))
	assert.False(t, k.HasPrefix(Key{"admin", "exams"}))
	assert.False(t, k.HasPrefix(Key{"admin", "users", "page=2", "x"}))
	assert.False(t, Key{"exams"}.HasPrefix(Key{"admin"}))
}
