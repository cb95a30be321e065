package grid

import (
	"maps"
	"slices"
	"strings"
)

// ApplyFilters returns the records that satisfy every non-empty query in
// filters, using the default locale. records is not modified.
func ApplyFilters(records []Record, filters map[string]string) []Record {
	e := New(records, Options{})
	for field, q := range filters {
		e.SetFilter(field, q)
	}
	return e.applyFilters(records)
}

type fieldQuery struct {
	field string
	query string
}

func (e *Engine) applyFilters(records []Record) []Record {
	var queries []fieldQuery
	// Sorted so evaluation order never depends on map iteration.
	for _, field := range slices.Sorted(maps.Keys(e.filters)) {
		if q := e.filters[field]; q != "" {
			queries = append(queries, fieldQuery{field: field, query: e.folder.String(q)})
		}
	}
	if len(queries) == 0 {
		return records
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if e.matches(r, queries) {
			out = append(out, r)
		}
	}
	return out
}

func (e *Engine) matches(r Record, queries []fieldQuery) bool {
	for _, q := range queries {
		text, ok := r.Text(q.field)
		if !ok {
			return false
		}
		if !strings.Contains(e.folder.String(text), q.query) {
			return false
		}
	}
	return true
}
