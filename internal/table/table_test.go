package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type row struct {
	ID    string
	Name  string
	Score int
}

func columns() []Column[row] {
	return []Column[row]{
		{Key: "id", Label: "ID", Value: func(r row) any { return r.ID }},
		{Key: "name", Label: "NAME", Value: func(r row) any { return r.Name }, Sortable: true},
		{Key: "score", Label: "SCORE", Value: func(r row) any { return r.Score }, Sortable: true},
	}
}

func sampleRows() []row {
	return []row{
		{"r1", "Delta", 40},
		{"r2", "alpha", 10},
		{"r3", "Charlie", 30},
		{"r4", "bravo", 30},
	}
}

func ids(rows []row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestLocalSearchNoMatch(t *testing.T) {
	m := New(ModeLocal, columns(), 10)
	m.SetRows(sampleRows())
	m.SetSearch("zzz-not-present")

	assert.Empty(t, m.VisibleRows())
	assert.Equal(t, int64(0), m.TotalRows())
}

func TestLocalSearchCaseInsensitive(t *testing.T) {
	m := New(ModeLocal, columns(), 10)
	m.SetRows(sampleRows())

	m.SetSearch("ALPHA")
	assert.Equal(t, []string{"r2"}, ids(m.VisibleRows()))

	// Matches against any column's string form, numbers included.
	m.SetSearch("40")
	assert.Equal(t, []string{"r1"}, ids(m.VisibleRows()))
}

func TestSearchResetsPage(t *testing.T) {
	m := New(ModeLocal, columns(), 2)
	m.SetRows(sampleRows())
	m.Pager().SetPage(2)

	m.SetSearch("a")
	assert.Equal(t, 1, m.Pager().Page())
}

func TestToggleSortDirections(t *testing.T) {
	m := New(ModeLocal, columns(), 10)
	m.SetRows(sampleRows())

	m.ToggleSort("score")
	assert.Equal(t, []string{"r2", "r3", "r4", "r1"}, ids(m.VisibleRows()))

	// Same column again reverses direction.
	m.ToggleSort("score")
	assert.Equal(t, []string{"r1", "r3", "r4", "r2"}, ids(m.VisibleRows()))

	// A new column resets to ascending.
	m.ToggleSort("name")
	key, asc := m.SortState()
	assert.Equal(t, "name", key)
	assert.True(t, asc)
}

func TestSortStableForEqualKeys(t *testing.T) {
	m := New(ModeLocal, columns(), 10)
	m.SetRows(sampleRows())

	m.ToggleSort("score")
	// r3 and r4 tie on 30 and must keep their original relative order.
	assert.Equal(t, []string{"r2", "r3", "r4", "r1"}, ids(m.VisibleRows()))

	m.ToggleSort("score")
	m.ToggleSort("score")
	// Back to ascending: same result as the first toggle.
	assert.Equal(t, []string{"r2", "r3", "r4", "r1"}, ids(m.VisibleRows()))
}

func TestSortIgnoresUnsortableAndUnknownColumns(t *testing.T) {
	m := New(ModeLocal, columns(), 10)
	m.SetRows(sampleRows())

	m.ToggleSort("id") // not sortable
	key, _ := m.SortState()
	assert.Equal(t, "", key)

	m.ToggleSort("nope")
	key, _ = m.SortState()
	assert.Equal(t, "", key)

	assert.Equal(t, []string{"r1", "r2", "r3", "r4"}, ids(m.VisibleRows()))
}

func TestLocalPagination(t *testing.T) {
	m := New(ModeLocal, columns(), 3)
	m.SetRows(sampleRows())

	assert.Equal(t, []string{"r1", "r2", "r3"}, ids(m.VisibleRows()))

	m.Pager().SetPage(2)
	assert.Equal(t, []string{"r4"}, ids(m.VisibleRows()))

	m.Pager().SetPage(3)
	assert.Empty(t, m.VisibleRows())
}

func TestServerModeRendersVerbatim(t *testing.T) {
	m := New(ModeServer, columns(), 2)
	rows := sampleRows()
	m.SetRows(rows)
	m.SetServerTotal(42)

	// No slicing, no sorting, no filtering; state only feeds Params.
	m.SetSearch("alpha")
	m.ToggleSort("name")
	m.ToggleSort("name")
	assert.Equal(t, ids(rows), ids(m.VisibleRows()))
	assert.Equal(t, int64(42), m.TotalRows())

	params := m.Params()
	assert.Equal(t, "alpha", params.Search)
	assert.Equal(t, "name", params.SortBy)
	assert.Equal(t, "desc", params.SortDir)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 2, params.PageSize)
}

func TestRender(t *testing.T) {
	m := New(ModeLocal, columns(), 10)
	m.SetRows(sampleRows())

	var buf bytes.Buffer
	assert.NoError(t, m.Render(&buf))

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 5)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, out, "Charlie")
}

func TestRowActions(t *testing.T) {
	m := New(ModeLocal, columns(), 10)
	var viewed, deleted string
	m.SetActions(Actions[row]{
		View:   func(r row) { viewed = r.ID },
		Delete: func(r row) { deleted = r.ID },
	})

	m.View(row{ID: "r9"})
	m.Edit(row{ID: "r8"}) // no callback: no-op
	m.Delete(row{ID: "r7"})

	assert.Equal(t, "r9", viewed)
	assert.Equal(t, "r7", deleted)
}
