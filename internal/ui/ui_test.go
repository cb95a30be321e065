package ui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gridview/internal/dataset"
	"github.com/five82/gridview/internal/grid"
	"github.com/five82/gridview/internal/prefs"
	"github.com/five82/gridview/internal/state"
)

func testRecords() []grid.Record {
	return []grid.Record{
		{"id": 1, "name": "Charlie", "age": 30},
		{"id": 2, "name": "alice", "age": 25},
		{"id": 3, "name": "Bob", "age": 35},
	}
}

func testColumns() []grid.Column {
	return []grid.Column{
		{Field: "name", Label: "Name", Sortable: true, Filter: grid.FilterText},
		{Field: "age", Label: "Age", Sortable: false},
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	engine := grid.New(testRecords(), grid.Options{})
	m := New(Options{
		Engine:    engine,
		Columns:   testColumns(),
		Prefs:     prefs.Defaults(),
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	return send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func viewNames(e *grid.Engine) string {
	var names []string
	for _, r := range e.View() {
		text, _ := r.Text("name")
		names = append(names, text)
	}
	return strings.Join(names, ",")
}

func TestSortKeyCyclesDirection(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, runes("s"))
	if got := m.engine.Sort(); got.Field != "name" || got.Direction != grid.Ascending {
		t.Fatalf("sort after first press = %v, want name asc", got)
	}
	if got := viewNames(m.engine); got != "alice,Bob,Charlie" {
		t.Fatalf("view = %q, want alice,Bob,Charlie", got)
	}

	m = send(t, m, runes("s"))
	if got := m.engine.Sort(); got.Direction != grid.Descending {
		t.Fatalf("sort after second press = %v, want desc", got)
	}
	if !strings.Contains(m.View(), "Name ↓") {
		t.Fatalf("View missing descending arrow:\n%s", m.View())
	}
}

func TestSortIgnoresUnsortableColumn(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("l"))
	if m.col != 1 {
		t.Fatalf("col = %d, want 1", m.col)
	}
	m = send(t, m, runes("s"))
	if m.engine.Sort().IsSet() {
		t.Fatalf("sort = %v, want unsorted", m.engine.Sort())
	}
	if !strings.Contains(m.statusMsg, "not sortable") {
		t.Fatalf("statusMsg = %q, want not sortable notice", m.statusMsg)
	}
}

func TestSelectToggleAndClear(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	if !m.engine.IsSelected("1") {
		t.Fatalf("row 1 not selected after space")
	}
	m = send(t, m, runes("j"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	if got := len(m.engine.Selected()); got != 2 {
		t.Fatalf("selected = %d, want 2", got)
	}
	if !strings.Contains(m.View(), "2 selected") {
		t.Fatalf("View missing selection count")
	}

	m = send(t, m, runes("c"))
	if got := len(m.engine.Selected()); got != 0 {
		t.Fatalf("selected after clear = %d, want 0", got)
	}
}

func TestFilterTypingAppliesLive(t *testing.T) {
	m := newTestModel(t)

	m = send(t, m, runes("/"))
	if m.focus != focusFilter {
		t.Fatalf("focus = %v, want filter", m.focus)
	}
	m = send(t, m, runes("b"))
	if got := m.engine.Filter("name"); got != "b" {
		t.Fatalf("engine filter = %q, want b", got)
	}
	if got := viewNames(m.engine); got != "Bob" {
		t.Fatalf("view = %q, want Bob", got)
	}

	// Keys typed into the filter must not trigger table bindings.
	m = send(t, m, runes("q"))
	if got := m.engine.Filter("name"); got != "bq" {
		t.Fatalf("engine filter = %q, want bq", got)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.focus != focusTable {
		t.Fatalf("focus after esc = %v, want table", m.focus)
	}
	if got := m.engine.Filter("name"); got != "" {
		t.Fatalf("filter after esc = %q, want empty", got)
	}
	if m.engine.Len() != 3 {
		t.Fatalf("len after esc = %d, want 3", m.engine.Len())
	}
}

func TestFilterEnterKeepsValue(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("/"))
	m = send(t, m, runes("LI"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.focus != focusTable {
		t.Fatalf("focus = %v, want table", m.focus)
	}
	if got := viewNames(m.engine); got != "Charlie,alice" {
		t.Fatalf("view = %q, want Charlie,alice", got)
	}

	m = send(t, m, runes("x"))
	if m.engine.Len() != 3 || m.filters[0].Value() != "" {
		t.Fatalf("clear filters left len=%d input=%q", m.engine.Len(), m.filters[0].Value())
	}
}

func TestFilterUnavailableOnColumnWithoutFilter(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("l"))
	m = send(t, m, runes("/"))
	if m.focus != focusTable {
		t.Fatalf("focus = %v, want table", m.focus)
	}
}

func TestCursorFollowsRecordAcrossSort(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("j")) // alice
	m = send(t, m, runes("s"))
	row, ok := m.engine.Row(m.cursor)
	if !ok || row.ID() != "2" {
		t.Fatalf("cursor row = %v, want id 2", row)
	}
}

func TestCursorClampsAtBounds(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("k"))
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.cursor)
	}
	m = send(t, m, runes("G"))
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}
	m = send(t, m, runes("j"))
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}
}

func TestWindowScrollsWithCursor(t *testing.T) {
	engine := grid.New(dataset.Generate(100), grid.Options{})
	m := New(Options{
		Engine:    engine,
		Columns:   dataset.InferColumns(engine.Dataset()),
		Prefs:     prefs.Defaults(),
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 12})

	h := m.bodyHeight()
	if h <= 0 || h >= 12 {
		t.Fatalf("bodyHeight = %d, want between 1 and 11", h)
	}
	m = send(t, m, runes("G"))
	if m.offset != 100-h {
		t.Fatalf("offset = %d, want %d", m.offset, 100-h)
	}
	view := m.View()
	if !strings.Contains(view, "User 100") || strings.Contains(view, "User 1 ") {
		t.Fatalf("View does not show the last window:\n%s", view)
	}
}

func TestYankCopiesSelectedRows(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })

	m := newTestModel(t)
	m = send(t, m, runes("s")) // alice, Bob, Charlie
	m = send(t, m, runes("G"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m = send(t, m, runes("g"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m = send(t, m, runes("y"))

	want := "Name\tAge\nalice\t25\nCharlie\t30"
	if copied != want {
		t.Fatalf("clipboard = %q, want %q", copied, want)
	}
	if m.statusMsg != "Copied 2 rows" {
		t.Fatalf("statusMsg = %q, want Copied 2 rows", m.statusMsg)
	}
}

func TestYankFallsBackToCursorRow(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })

	m := newTestModel(t)
	_ = send(t, m, runes("y"))
	if copied != "Name\tAge\nCharlie\t30" {
		t.Fatalf("clipboard = %q", copied)
	}
}

func TestYankReportsClipboardError(t *testing.T) {
	orig := writeClipboard
	writeClipboard = func(string) error { return errors.New("no clipboard") }
	t.Cleanup(func() { writeClipboard = orig })

	m := newTestModel(t)
	m = send(t, m, runes("y"))
	if !strings.Contains(m.statusMsg, "no clipboard") {
		t.Fatalf("statusMsg = %q, want clipboard error", m.statusMsg)
	}
}

func TestThemeCycleSavesPrefs(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("T"))
	if m.theme.Name != "Slate" {
		t.Fatalf("theme = %q, want Slate", m.theme.Name)
	}
	if got := prefs.Load(m.prefsPath); got.Theme != "Slate" {
		t.Fatalf("saved theme = %q, want Slate", got.Theme)
	}

	m = send(t, m, runes("#"))
	if got := prefs.Load(m.prefsPath); got.RowNumbers {
		t.Fatalf("saved RowNumbers = true, want false")
	}
}

func TestViewShowsHeadersAndMarker(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	view := m.View()
	for _, want := range []string{"Name", "Age", "Charlie", "3/3 rows", selectedMark} {
		if !strings.Contains(view, want) {
			t.Fatalf("View missing %q:\n%s", want, view)
		}
	}
}

func TestViewWithNoMatches(t *testing.T) {
	m := newTestModel(t)
	m.engine.SetFilter("name", "zzz")
	m.clampCursor()
	if !strings.Contains(m.View(), "No rows match") {
		t.Fatalf("View missing empty notice")
	}
}

func TestMouseHeaderClickSorts(t *testing.T) {
	m := newTestModel(t)
	x := m.prefixWidth() + 1
	m = send(t, m, tea.MouseMsg{X: x, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := m.engine.Sort(); got.Field != "name" || got.Direction != grid.Ascending {
		t.Fatalf("sort = %v, want name asc", got)
	}
}

func TestMouseRowClickSelects(t *testing.T) {
	m := newTestModel(t)
	y := m.bodyTop() + 1
	m = send(t, m, tea.MouseMsg{X: 5, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.cursor != 1 || !m.engine.IsSelected("2") {
		t.Fatalf("cursor=%d selected=%v, want cursor 1 with id 2 selected", m.cursor, m.engine.Selected())
	}
}

func TestSyncStoreSwapsDataset(t *testing.T) {
	store := &state.Store{}
	store.Update(testRecords(), dataset.Fingerprint{}, nil)

	engine := grid.New(store.Snapshot().Records, grid.Options{})
	m := New(Options{
		Engine:    engine,
		Columns:   testColumns(),
		Store:     store,
		Prefs:     prefs.Defaults(),
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	engine.ToggleSelection("3")

	next := append(testRecords(), grid.Record{"id": 4, "name": "Dana", "age": 41})
	store.Update(next, dataset.Fingerprint{Size: 1}, nil)
	m = send(t, m, tickMsg{})

	if m.engine.Len() != 4 {
		t.Fatalf("len = %d, want 4", m.engine.Len())
	}
	if !m.engine.IsSelected("3") {
		t.Fatalf("selection lost across reload")
	}

	store.Update(nil, dataset.Fingerprint{}, errors.New("boom"))
	m = send(t, m, tickMsg{})
	if m.loadErr == nil || m.engine.Len() != 4 {
		t.Fatalf("loadErr=%v len=%d, want error and 4 rows kept", m.loadErr, m.engine.Len())
	}
	if !strings.Contains(m.View(), "boom") {
		t.Fatalf("View missing load error")
	}
}

func TestHeaderClickWhileFilteringLeavesFilterMode(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("/"))
	m = send(t, m, runes("a"))

	ageX := m.prefixWidth() + m.widths[0] + len([]rune(columnSep)) + 1
	m = send(t, m, tea.MouseMsg{X: ageX, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	if m.focus != focusTable {
		t.Fatalf("focus = %v, want table after header click", m.focus)
	}
	if m.col != 1 {
		t.Fatalf("col = %d, want 1", m.col)
	}
	if m.filters[0].Focused() {
		t.Fatalf("name filter input still focused")
	}
	if got := m.engine.Filter("name"); got != "a" {
		t.Fatalf("name filter = %q, want a kept", got)
	}

	m = send(t, m, runes("3"))
	if got := m.engine.Filters(); len(got) != 1 {
		t.Fatalf("filters = %v, want only name", got)
	}
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatalf("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q did not quit")
	}
}

func TestFilterCellClickMovesFocus(t *testing.T) {
	cols := []grid.Column{
		{Field: "name", Label: "Name", Sortable: true, Filter: grid.FilterText},
		{Field: "age", Label: "Age", Sortable: true, Filter: grid.FilterText},
	}
	m := New(Options{
		Engine:    grid.New(testRecords(), grid.Options{}),
		Columns:   cols,
		Prefs:     prefs.Defaults(),
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = send(t, m, runes("/"))

	ageX := m.prefixWidth() + m.widths[0] + len([]rune(columnSep)) + 1
	m = send(t, m, tea.MouseMsg{X: ageX, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.focus != focusFilter || m.col != 1 {
		t.Fatalf("focus=%v col=%d, want age filter", m.focus, m.col)
	}
	if m.filters[0].Focused() || !m.filters[1].Focused() {
		t.Fatalf("focused inputs: name=%v age=%v", m.filters[0].Focused(), m.filters[1].Focused())
	}

	m = send(t, m, runes("3"))
	if got := m.engine.Filter("age"); got != "3" {
		t.Fatalf("age filter = %q, want 3", got)
	}
}
