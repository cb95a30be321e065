package grid

import (
	"maps"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Options configure a new Engine.
type Options struct {
	// InitialSort seeds the sort state. Nil leaves the view unsorted.
	InitialSort *SortSpec
	// Mode defaults to Multi.
	Mode SelectionMode
	// Locale drives string collation. The zero tag uses English.
	Locale language.Tag
}

// Engine holds filter, sort and selection state over a dataset and derives
// the rows a renderer displays.
type Engine struct {
	data     []Record
	filters  map[string]string
	sort     SortSpec
	mode     SelectionMode
	selected map[RowID]struct{}

	collator *collate.Collator
	folder   cases.Caser

	view    []Record
	valid   bool
	version uint64
}

// New creates an engine over data. The slice is referenced, not copied, and
// must not be modified by the caller while the engine uses it.
func New(data []Record, opts Options) *Engine {
	locale := opts.Locale
	if locale == language.Und {
		locale = language.English
	}
	e := &Engine{
		data:     data,
		filters:  make(map[string]string),
		mode:     opts.Mode,
		selected: make(map[RowID]struct{}),
		collator: collate.New(locale),
		folder:   cases.Fold(),
	}
	if opts.InitialSort != nil {
		e.sort = *opts.InitialSort
	}
	return e
}

// SetDataset replaces the dataset. Selection is kept as is.
func (e *Engine) SetDataset(data []Record) {
	e.data = data
	e.invalidate()
}

// Dataset returns the dataset the engine currently reads from.
func (e *Engine) Dataset() []Record {
	return e.data
}

// SetFilter replaces the query for field. An empty query clears it.
func (e *Engine) SetFilter(field, query string) {
	if query == "" {
		if _, ok := e.filters[field]; !ok {
			return
		}
		delete(e.filters, field)
	} else {
		if e.filters[field] == query {
			return
		}
		e.filters[field] = query
	}
	e.invalidate()
}

// Filter returns the active query for field.
func (e *Engine) Filter(field string) string {
	return e.filters[field]
}

// Filters returns a copy of the active filters.
func (e *Engine) Filters() map[string]string {
	return maps.Clone(e.filters)
}

// ClearFilters removes every filter.
func (e *Engine) ClearFilters() {
	if len(e.filters) == 0 {
		return
	}
	clear(e.filters)
	e.invalidate()
}

// SetSort handles a click on a sortable column header. A new field sorts
// ascending; the current field flips direction.
func (e *Engine) SetSort(field string) {
	if e.sort.Field == field {
		e.sort.Direction = e.sort.Direction.Toggle()
	} else {
		e.sort = SortSpec{Field: field, Direction: Ascending}
	}
	e.invalidate()
}

// Sort returns the active sort.
func (e *Engine) Sort() SortSpec {
	return e.sort
}

// ClearSort returns the view to dataset order.
func (e *Engine) ClearSort() {
	if !e.sort.IsSet() {
		return
	}
	e.sort = SortSpec{}
	e.invalidate()
}

// View returns the filtered and sorted rows. The result is a copy.
func (e *Engine) View() []Record {
	return append([]Record(nil), e.derived()...)
}

// Len returns the number of rows in the derived view.
func (e *Engine) Len() int {
	return len(e.derived())
}

// Row returns the derived row at index i.
func (e *Engine) Row(i int) (Record, bool) {
	view := e.derived()
	if i < 0 || i >= len(view) {
		return nil, false
	}
	return view[i], true
}

// Window returns derived rows [start, end), clamped to the view bounds.
func (e *Engine) Window(start, end int) []Record {
	view := e.derived()
	start = max(start, 0)
	end = min(end, len(view))
	if start >= end {
		return nil
	}
	return append([]Record(nil), view[start:end]...)
}

// IndexOf returns the derived index of the row with id, or -1.
func (e *Engine) IndexOf(id RowID) int {
	for i, r := range e.derived() {
		if r.ID() == id {
			return i
		}
	}
	return -1
}

// Version increases on every state change.
func (e *Engine) Version() uint64 {
	return e.version
}

func (e *Engine) derived() []Record {
	if !e.valid {
		e.view = e.applySort(e.applyFilters(e.data))
		e.valid = true
	}
	return e.view
}

func (e *Engine) invalidate() {
	e.valid = false
	e.view = nil
	e.version++
}
