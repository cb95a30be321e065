package grid

import "slices"

type keyed struct {
	rec Record
	key string
}

// applySort orders records by the string form of the sort field. Missing
// values sort as the empty string. The input slice is left untouched.
func (e *Engine) applySort(records []Record) []Record {
	if !e.sort.IsSet() {
		return records
	}

	rows := make([]keyed, len(records))
	for i, r := range records {
		k, _ := r.Text(e.sort.Field)
		rows[i] = keyed{rec: r, key: k}
	}

	desc := e.sort.Direction == Descending
	slices.SortStableFunc(rows, func(a, b keyed) int {
		c := e.collator.CompareString(a.key, b.key)
		if desc {
			return -c
		}
		return c
	})

	out := make([]Record, len(rows))
	for i, row := range rows {
		out[i] = row.rec
	}
	return out
}
