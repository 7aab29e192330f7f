package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaults(t *testing.T) {
	s := New(0)
	assert.Equal(t, DefaultPage, s.Page())
	assert.Equal(t, DefaultPageSize, s.PageSize())
	assert.Equal(t, 0, s.Skip())
}

func TestSkipInvariant(t *testing.T) {
	cases := []struct {
		page int
		size int
	}{
		{1, 1},
		{1, 10},
		{2, 1},
		{2, 10},
		{7, 25},
		{100, 100},
	}
	for _, tc := range cases {
		s := New(tc.size)
		s.SetPage(tc.page)
		assert.Equalf(t, (tc.page-1)*tc.size, s.Skip(), "page=%d size=%d", tc.page, tc.size)
	}
}

func TestSetPageSizeResetsPage(t *testing.T) {
	s := New(10)
	s.SetPage(7)
	assert.Equal(t, 7, s.Page())

	s.SetPageSize(25)
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, 25, s.PageSize())

	// Already on page 1: still page 1.
	s.SetPageSize(50)
	assert.Equal(t, 1, s.Page())
}

func TestSetPageLeavesSizeAlone(t *testing.T) {
	s := New(25)
	s.SetPage(4)
	assert.Equal(t, 25, s.PageSize())
	assert.Equal(t, 4, s.Page())
}

func TestResetKeepsPageSize(t *testing.T) {
	s := New(50)
	s.SetPage(9)
	s.Reset()
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, 50, s.PageSize())
}

func TestClamping(t *testing.T) {
	s := New(1000)
	assert.Equal(t, MaxPageSize, s.PageSize())

	s.SetPage(-3)
	assert.Equal(t, 1, s.Page())

	s.SetPageSize(-1)
	assert.Equal(t, DefaultPageSize, s.PageSize())
}

func TestParams(t *testing.T) {
	s := New(20)
	s.SetPage(3)
	params := s.Params()
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 20, params.PageSize)
}
