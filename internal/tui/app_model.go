package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"triage-cli/internal/query"
	"triage-cli/internal/rows"
	"triage-cli/internal/selection"
	"triage-cli/internal/store"
	"triage-cli/internal/window"
)

type appModel struct {
	store store.Store
	db    *store.DB
	cfg   store.Config
	saver *store.Saver
	log   *logrus.Entry

	width  int
	height int

	// Display pipeline state. rowSeq is rebuilt by refresh() after every
	// structural or query change; it is never mutated in place.
	rowSeq  []rows.Row
	spec    query.Spec
	filters query.Filters

	cursor int
	scroll int

	sel  selection.Selection
	drag selection.Controller

	searching   bool
	searchInput textinput.Model

	modal      modalKind
	modalForID string
	input      textinput.Model

	picker     pickerKind
	pickerList list.Model
	// filterField is the column a pending modalFilterValue applies to.
	filterField query.Field

	showHelp bool

	// pendingCursorID names the row to place the cursor on once the row
	// sequence has been materialized (session restore).
	pendingCursorID string

	flash      string
	flashLevel flashLevel
	flashSeq   int
}

func newAppModel(s store.Store, db *store.DB, cfg store.Config, log *logrus.Entry) appModel {
	if log == nil {
		log = logrus.NewEntry(logrus.New())
	}
	applyProfile(cfg.Profile)

	m := appModel{
		store: s,
		db:    db,
		cfg:   cfg,
		saver: store.NewSaver(s, cfg.SaveDebounce(), log.Logger),
		log:   log,
		sel:   selection.New(),
	}

	m.searchInput = newInputLine("search")
	m.input = newInputLine("")

	m.restoreTUIState()
	m.refresh()
	if m.pendingCursorID != "" {
		m.moveCursorTo(m.pendingCursorID)
		m.pendingCursorID = ""
	}
	m.clampCursor()
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

// refresh rebuilds the display row sequence from the current folder
// state, sort spec and filters.
func (m *appModel) refresh() {
	m.rowSeq = rows.Materialize(m.db.State, m.db.RecordIndex(), m.spec, m.filters)
}

func (m *appModel) clampCursor() {
	if m.cursor >= len(m.rowSeq) {
		m.cursor = len(m.rowSeq) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *appModel) cursorRow() (rows.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rowSeq) {
		return rows.Row{}, false
	}
	return m.rowSeq[m.cursor], true
}

func (m *appModel) rowIndexByID(id string) int {
	for i, r := range m.rowSeq {
		if r.ID() == id {
			return i
		}
	}
	return -1
}

// moveCursorTo repositions the cursor on a row id if it still exists
// after a re-materialization.
func (m *appModel) moveCursorTo(id string) {
	if i := m.rowIndexByID(id); i >= 0 {
		m.cursor = i
	}
	m.clampCursor()
}

func (m *appModel) metrics() window.Metrics {
	return window.Metrics{EstimateHeight: m.cfg.EstimateHeight, Overscan: m.cfg.Overscan}
}

// measure reports the rendered height of a row under the active profile.
func (m *appModel) measure(i int) (int, bool) {
	if i < 0 || i >= len(m.rowSeq) {
		return 0, false
	}
	return rowHeight(m.rowSeq[i]), true
}

func (m *appModel) bodyHeight() int {
	// Header and footer each take two lines.
	h := m.height - 4
	if h < 0 {
		h = 0
	}
	return h
}

func (m *appModel) ensureCursorVisible() {
	body := m.bodyHeight()
	if body <= 0 || len(m.rowSeq) == 0 {
		return
	}
	off, h := window.OffsetFor(m.rowSeq, m.measure, m.cursor, m.metrics())
	if off < m.scroll {
		m.scroll = off
	}
	if off+h > m.scroll+body {
		m.scroll = off + h - body
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// markDirty schedules a debounced persistence pass over a snapshot of
// the current state. The UI never waits on disk.
func (m *appModel) markDirty() {
	m.saver.Schedule(m.db.Clone())
}

func (m *appModel) setFlash(msg string, level flashLevel) tea.Cmd {
	m.flash = msg
	m.flashLevel = level
	m.flashSeq++
	seq := m.flashSeq
	return flashAfter(seq)
}

func newInputLine(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 200
	in.Width = 40
	return in
}
