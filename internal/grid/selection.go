package grid

import (
	"maps"
	"slices"
)

// Mode returns the selection mode.
func (e *Engine) Mode() SelectionMode {
	return e.mode
}

// ToggleSelection applies a row click. In Single mode the row becomes the
// only selection; in Multi mode its membership flips. Unknown ids are
// accepted.
func (e *Engine) ToggleSelection(id RowID) {
	if e.mode == Single {
		clear(e.selected)
		e.selected[id] = struct{}{}
	} else if _, ok := e.selected[id]; ok {
		delete(e.selected, id)
	} else {
		e.selected[id] = struct{}{}
	}
	e.version++
}

// IsSelected reports whether id is selected.
func (e *Engine) IsSelected(id RowID) bool {
	_, ok := e.selected[id]
	return ok
}

// Selected returns the selected ids in sorted order.
func (e *Engine) Selected() []RowID {
	return slices.Sorted(maps.Keys(e.selected))
}

// SelectedRecords returns the selected rows present in the derived view, in
// view order.
func (e *Engine) SelectedRecords() []Record {
	if len(e.selected) == 0 {
		return nil
	}
	var out []Record
	for _, r := range e.derived() {
		if e.IsSelected(r.ID()) {
			out = append(out, r)
		}
	}
	return out
}

// ClearSelection deselects everything.
func (e *Engine) ClearSelection() {
	if len(e.selected) == 0 {
		return
	}
	clear(e.selected)
	e.version++
}

// PruneSelection drops selected ids that no longer exist in the dataset and
// returns how many were removed.
func (e *Engine) PruneSelection() int {
	if len(e.selected) == 0 {
		return 0
	}
	present := make(map[RowID]struct{}, len(e.data))
	for _, r := range e.data {
		present[r.ID()] = struct{}{}
	}
	removed := 0
	for id := range e.selected {
		if _, ok := present[id]; !ok {
			delete(e.selected, id)
			removed++
		}
	}
	if removed > 0 {
		e.version++
	}
	return removed
}
