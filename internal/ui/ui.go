package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gridview/internal/grid"
	"github.com/five82/gridview/internal/prefs"
	"github.com/five82/gridview/internal/state"
)

const (
	defaultRefreshEvery = time.Second
	statusDuration      = 3 * time.Second
)

// Options configure the table UI.
type Options struct {
	Context      context.Context
	Engine       *grid.Engine
	Columns      []grid.Column
	Store        *state.Store // optional; polled for reloaded datasets
	Title        string
	Prefs        prefs.Prefs
	PrefsPath    string
	RefreshEvery time.Duration
}

type focusArea int

const (
	focusTable focusArea = iota
	focusFilter
)

type tickMsg time.Time

type statusClearMsg struct{}

// Model is the bubbletea model rendering an engine's derived view.
type Model struct {
	engine      *grid.Engine
	columns     []grid.Column
	widths      []int
	store       *state.Store
	dataVersion uint64
	title       string

	theme     Theme
	styles    Styles
	prefs     prefs.Prefs
	prefsPath string

	keys keyMap
	help help.Model

	filters []textinput.Model
	focus   focusArea
	col     int
	cursor  int
	offset  int
	width   int
	height  int

	statusMsg    string
	statusUntil  time.Time
	loadErr      error
	stale        bool
	refreshEvery time.Duration
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(New(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// New builds the model. The engine is shared, not copied.
func New(opts Options) Model {
	m := Model{
		engine:       opts.Engine,
		columns:      opts.Columns,
		store:        opts.Store,
		title:        opts.Title,
		prefs:        opts.Prefs,
		prefsPath:    opts.PrefsPath,
		keys:         defaultKeyMap(),
		help:         help.New(),
		refreshEvery: opts.RefreshEvery,
	}
	if m.refreshEvery <= 0 {
		m.refreshEvery = defaultRefreshEvery
	}
	if m.title == "" {
		m.title = "gridview"
	}
	m.applyTheme(GetTheme(m.prefs.Theme))

	if m.store != nil {
		snap := m.store.Snapshot()
		m.dataVersion = snap.Version
		m.loadErr = snap.LastError
		m.stale = snap.IsStale()
	}

	m.filters = make([]textinput.Model, len(m.columns))
	for i, c := range m.columns {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = "Filter..."
		ti.CharLimit = 64
		ti.SetValue(m.engine.Filter(c.Field))
		m.filters[i] = ti
	}
	m.recomputeWidths()
	return m
}

// Init starts the store refresh loop.
func (m Model) Init() tea.Cmd {
	if m.store == nil {
		return nil
	}
	return m.tickCmd()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles input and refresh messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.recomputeWidths()
		m.clampCursor()
		return m, nil

	case tickMsg:
		m.syncStore()
		return m, m.tickCmd()

	case statusClearMsg:
		if !m.statusUntil.IsZero() && !time.Now().Before(m.statusUntil) {
			m.statusMsg = ""
			m.statusUntil = time.Time{}
		}
		return m, nil

	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.focus == focusFilter {
			cmd := m.updateFilter(msg)
			return m, cmd
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.ensureCursorVisible()

	case key.Matches(msg, m.keys.CycleTheme):
		m.applyTheme(GetTheme(NextTheme(m.theme.Name)))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		cmd := m.setStatus("Theme: " + m.theme.Name)
		return m, cmd

	case key.Matches(msg, m.keys.RowNumbers):
		m.prefs.RowNumbers = !m.prefs.RowNumbers
		m.savePrefs()

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.bodyHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.bodyHeight())
	case key.Matches(msg, m.keys.HalfPageUp):
		m.moveCursor(-max(m.bodyHeight()/2, 1))
	case key.Matches(msg, m.keys.HalfPageDown):
		m.moveCursor(max(m.bodyHeight()/2, 1))
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		m.ensureCursorVisible()
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = m.engine.Len() - 1
		m.clampCursor()

	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
		}
	case key.Matches(msg, m.keys.Right):
		if m.col < len(m.columns)-1 {
			m.col++
		}

	case key.Matches(msg, m.keys.Sort):
		cmd := m.sortColumn(m.col)
		return m, cmd

	case key.Matches(msg, m.keys.Select):
		m.toggleCursorRow()

	case key.Matches(msg, m.keys.ClearSelection):
		m.engine.ClearSelection()

	case key.Matches(msg, m.keys.Yank):
		cmd := m.yank()
		return m, cmd

	case key.Matches(msg, m.keys.Filter):
		cmd := m.startFilter()
		return m, cmd

	case key.Matches(msg, m.keys.ClearFilters):
		m.preserveCursor(m.engine.ClearFilters)
		for i := range m.filters {
			m.filters[i].SetValue("")
		}
	}
	return m, nil
}

// syncStore hands a newly loaded dataset to the engine.
func (m *Model) syncStore() {
	if m.store == nil {
		return
	}
	snap := m.store.Snapshot()
	m.loadErr = snap.LastError
	m.stale = snap.IsStale()
	if snap.Version == m.dataVersion {
		return
	}
	m.dataVersion = snap.Version
	m.preserveCursor(func() { m.engine.SetDataset(snap.Records) })
	m.recomputeWidths()
	slog.Debug("dataset swapped into view", "version", snap.Version, "rows", len(snap.Records))
}

func (m *Model) applyTheme(t Theme) {
	m.theme = t
	m.styles = t.Styles()
}

func (m *Model) savePrefs() {
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		slog.Warn("save prefs failed", "err", err)
	}
}

func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusUntil = time.Now().Add(statusDuration)
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return statusClearMsg{}
	})
}

func (m *Model) sortColumn(col int) tea.Cmd {
	if col < 0 || col >= len(m.columns) {
		return nil
	}
	c := m.columns[col]
	if !c.Sortable {
		return m.setStatus(fmt.Sprintf("%s is not sortable", c.Title()))
	}
	m.preserveCursor(func() { m.engine.SetSort(c.Field) })
	slog.Debug("sort changed", "sort", m.engine.Sort().String())
	return nil
}

func (m *Model) toggleCursorRow() {
	if row, ok := m.engine.Row(m.cursor); ok {
		m.engine.ToggleSelection(row.ID())
	}
}

// preserveCursor runs a state change and keeps the cursor on the same record
// when it is still visible.
func (m *Model) preserveCursor(change func()) {
	var id grid.RowID
	row, had := m.engine.Row(m.cursor)
	if had {
		id = row.ID()
	}
	change()
	if had {
		if idx := m.engine.IndexOf(id); idx >= 0 {
			m.cursor = idx
		}
	}
	m.clampCursor()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := m.engine.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	h := m.bodyHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if maxOffset := max(m.engine.Len()-h, 0); m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}
