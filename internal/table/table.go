// Package table is a generic sortable, filterable, paginated view over a
// slice of typed records. Local mode filters, sorts and pages the rows it
// holds; server mode assumes the backend already did all three and only
// renders what it is handed.
package table

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/brunopinheiroeu/artori-sub001/internal/app/models/dto"
	"github.com/brunopinheiroeu/artori-sub001/internal/pagination"
)

// Mode selects where filtering, sorting and paging happen.
type Mode int

const (
	// ModeLocal applies search, sort and pagination to the full dataset
	// held by the model.
	ModeLocal Mode = iota
	// ModeServer renders rows verbatim; state only feeds Params().
	ModeServer
)

// Column describes one column of the table. Value extracts the raw cell
// value (used for searching and sorting); Render, when set, overrides the
// displayed text.
type Column[T any] struct {
	Key      string
	Label    string
	Value    func(T) any
	Render   func(T) string
	Sortable bool
}

// Actions are optional per-row callbacks supplied by the caller. The table
// itself performs no mutation.
type Actions[T any] struct {
	View   func(T)
	Edit   func(T)
	Delete func(T)
}

// Model is the table state machine.
type Model[T any] struct {
	mode    Mode
	columns []Column[T]
	rows    []T
	actions Actions[T]

	search  string
	sortKey string
	sortAsc bool

	pager       *pagination.State
	serverTotal int64
}

// New builds a table in the given mode.
func New[T any](mode Mode, columns []Column[T], pageSize int) *Model[T] {
	return &Model[T]{
		mode:    mode,
		columns: columns,
		pager:   pagination.New(pageSize),
	}
}

// SetRows replaces the dataset. In server mode this is the already
// filtered/sorted/paged slice for the current page.
func (m *Model[T]) SetRows(rows []T) {
	m.rows = rows
}

// SetActions attaches the row callbacks.
func (m *Model[T]) SetActions(actions Actions[T]) {
	m.actions = actions
}

// SetServerTotal records the backend-reported total row count for server
// mode.
func (m *Model[T]) SetServerTotal(total int64) {
	m.serverTotal = total
}

// Pager exposes the pagination state.
func (m *Model[T]) Pager() *pagination.State {
	return m.pager
}

// SetSearch updates the filter term and snaps back to page 1; the old page
// has no meaning against a new result set.
func (m *Model[T]) SetSearch(term string) {
	m.search = term
	m.pager.Reset()
}

// Search returns the current filter term.
func (m *Model[T]) Search() string {
	return m.search
}

// ToggleSort sorts by the named column: a new column starts ascending,
// re-selecting the active column reverses direction. Unknown and
// non-sortable keys are ignored.
func (m *Model[T]) ToggleSort(key string) {
	col, ok := m.column(key)
	if !ok || !col.Sortable {
		return
	}
	if m.sortKey == key {
		m.sortAsc = !m.sortAsc
		return
	}
	m.sortKey = key
	m.sortAsc = true
}

// SortState returns the active sort column ("" when unsorted) and
// direction.
func (m *Model[T]) SortState() (key string, asc bool) {
	return m.sortKey, m.sortAsc
}

func (m *Model[T]) column(key string) (Column[T], bool) {
	for _, col := range m.columns {
		if col.Key == key {
			return col, true
		}
	}
	var zero Column[T]
	return zero, false
}

// Params renders the current state as server-side list parameters. Server
// mode feeds these to the list endpoint instead of touching the rows.
func (m *Model[T]) Params() dto.ListParams {
	params := m.pager.Params()
	params.Search = m.search
	if m.sortKey != "" {
		params.SortBy = m.sortKey
		if m.sortAsc {
			params.SortDir = "asc"
		} else {
			params.SortDir = "desc"
		}
	}
	return params
}

// TotalRows is the row count after filtering: the matched count in local
// mode, the backend-reported total in server mode.
func (m *Model[T]) TotalRows() int64 {
	if m.mode == ModeServer {
		return m.serverTotal
	}
	return int64(len(m.filtered()))
}

// VisibleRows returns the rows of the current page. Server mode returns
// the held rows verbatim.
func (m *Model[T]) VisibleRows() []T {
	if m.mode == ModeServer {
		return m.rows
	}

	rows := m.sorted(m.filtered())
	start := m.pager.Skip()
	if start >= len(rows) {
		return nil
	}
	end := start + m.pager.PageSize()
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// filtered keeps rows where any column's string form contains the search
// term, case-insensitively.
func (m *Model[T]) filtered() []T {
	if m.search == "" {
		return m.rows
	}
	term := strings.ToLower(m.search)
	var out []T
	for _, row := range m.rows {
		for _, col := range m.columns {
			if strings.Contains(strings.ToLower(m.cellText(col, row)), term) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// sorted orders rows by the active sort column. The sort is stable, so
// equal keys keep their original relative order and two toggles restore
// the input order.
func (m *Model[T]) sorted(rows []T) []T {
	if m.sortKey == "" {
		return rows
	}
	col, ok := m.column(m.sortKey)
	if !ok {
		return rows
	}

	out := make([]T, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		cmp := compare(col.Value(out[i]), col.Value(out[j]))
		if m.sortAsc {
			return cmp < 0
		}
		return cmp > 0
	})
	return out
}

// compare orders raw cell values: numbers numerically, times
// chronologically, everything else by string form.
func compare(a, b any) int {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	if at, aok := a.(time.Time); aok {
		if bt, bok := b.(time.Time); bok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func (m *Model[T]) cellText(col Column[T], row T) string {
	if col.Render != nil {
		return col.Render(row)
	}
	if col.Value == nil {
		return ""
	}
	return fmt.Sprint(col.Value(row))
}

// Render writes the current page as an aligned text table.
func (m *Model[T]) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	labels := make([]string, len(m.columns))
	for i, col := range m.columns {
		labels[i] = col.Label
	}
	fmt.Fprintln(tw, strings.Join(labels, "\t"))

	for _, row := range m.VisibleRows() {
		cells := make([]string, len(m.columns))
		for i, col := range m.columns {
			cells[i] = m.cellText(col, row)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// View invokes the caller-supplied view action, if any.
func (m *Model[T]) View(row T) {
	if m.actions.View != nil {
		m.actions.View(row)
	}
}

// Edit invokes the caller-supplied edit action, if any.
func (m *Model[T]) Edit(row T) {
	if m.actions.Edit != nil {
		m.actions.Edit(row)
	}
}

// Delete invokes the caller-supplied delete action, if any.
func (m *Model[T]) Delete(row T) {
	if m.actions.Delete != nil {
		m.actions.Delete(row)
	}
}
