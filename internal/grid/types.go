package grid

import (
	"fmt"
	"strings"
)

// Direction is the order of the active sort.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// ParseDirection accepts "asc"/"ascending" and "desc"/"descending".
// Empty input means Ascending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Ascending, fmt.Errorf("unknown sort direction %q", s)
}

// SortSpec is the active sort. An empty Field means unsorted.
type SortSpec struct {
	Field     string
	Direction Direction
}

// IsSet reports whether a sort field is active.
func (s SortSpec) IsSet() bool {
	return s.Field != ""
}

func (s SortSpec) String() string {
	if !s.IsSet() {
		return "unsorted"
	}
	return s.Field + " " + s.Direction.String()
}

// SelectionMode governs how many rows may be selected at once.
type SelectionMode int

const (
	Multi SelectionMode = iota
	Single
)

func (m SelectionMode) String() string {
	if m == Single {
		return "single"
	}
	return "multi"
}

// ParseSelectionMode accepts "single" and "multi". Empty input means Multi.
func ParseSelectionMode(s string) (SelectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "multi", "multiple":
		return Multi, nil
	case "single":
		return Single, nil
	}
	return Multi, fmt.Errorf("unknown selection mode %q", s)
}

// FilterKind selects the filter input a column offers.
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterText
)

func (k FilterKind) String() string {
	if k == FilterText {
		return "text"
	}
	return ""
}

// ParseFilterKind accepts "text" and the empty string (or "none").
func ParseFilterKind(s string) (FilterKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return FilterNone, nil
	case "text":
		return FilterText, nil
	}
	return FilterNone, fmt.Errorf("unknown filter kind %q", s)
}

// Column describes one displayed column. Renderers only call SetSort for
// Sortable columns; the engine does not check.
type Column struct {
	Field    string
	Label    string
	Sortable bool
	Filter   FilterKind
}

// Title returns the label, falling back to the field name.
func (c Column) Title() string {
	if strings.TrimSpace(c.Label) != "" {
		return c.Label
	}
	return c.Field
}
