package tui

import (
	"io"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"triage-cli/internal/model"
	"triage-cli/internal/query"
	"triage-cli/internal/rows"
	"triage-cli/internal/store"
)

func testModel(t *testing.T) appModel {
	t.Helper()

	s := store.Store{Dir: filepath.Join(t.TempDir(), ".triage")}
	if err := s.Ensure(); err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	db := &store.DB{Version: 1, State: model.FolderState{Expanded: map[string]bool{"fld-1": true}}}
	db.Records = []model.Record{
		rec("r1", model.SeverityCritical, "db down"),
		rec("r2", model.SeverityWarning, "cert expiring"),
		rec("r3", model.SeverityMajor, "latency spike"),
	}
	db.State.Folders = []model.Folder{{ID: "fld-1", Name: "Infra", MemberIDs: []string{"r1"}}}
	db.State.UnassignedIDs = []string{"r2", "r3"}

	log := logrus.New()
	log.SetOutput(io.Discard)

	m := newAppModel(s, db, store.DefaultConfig(), logrus.NewEntry(log))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(appModel)
}

func rec(id string, sev model.Severity, desc string) model.Record {
	return model.Record{
		ID:          id,
		Status:      model.StatusOpen,
		Impact:      model.ImpactMedium,
		Environment: model.EnvProduction,
		Severity:    sev,
		Description: desc,
		CreatedAt:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t *testing.T, m appModel, keys ...string) appModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		var ok bool
		m, ok = next.(appModel)
		if !ok {
			t.Fatalf("Update returned %T, want appModel", next)
		}
	}
	return m
}

func rowIDs(m appModel) []string {
	out := make([]string, 0, len(m.rowSeq))
	for _, r := range m.rowSeq {
		out = append(out, r.ID())
	}
	return out
}

func TestInitialRowSequence(t *testing.T) {
	m := testModel(t)
	want := []string{"fld-1", "r1", "r2", "r3"}
	got := rowIDs(m)
	if len(got) != len(want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rows = %v, want %v", got, want)
		}
	}
	if m.rowSeq[0].Kind != rows.KindFolder || !m.rowSeq[1].InFolder {
		t.Fatalf("row annotations wrong: %+v", m.rowSeq[:2])
	}
}

func TestToggleExpansionCollapsesMembers(t *testing.T) {
	m := testModel(t)
	m = press(t, m, "enter")
	got := rowIDs(m)
	if len(got) != 3 || got[0] != "fld-1" || got[1] != "r2" {
		t.Fatalf("after collapse rows = %v", got)
	}
	m = press(t, m, "enter")
	if len(rowIDs(m)) != 4 {
		t.Fatalf("after re-expand rows = %v", rowIDs(m))
	}
}

func TestGrabAndDropOnFolder(t *testing.T) {
	m := testModel(t)

	// Cursor down to r2 (index 2), grab it, move to the folder header, drop.
	m = press(t, m, "j", "j", "m")
	if !m.drag.Dragging() || m.drag.DragID() != "r2" {
		t.Fatalf("expected r2 grabbed; phase=%v id=%q", m.drag.Phase(), m.drag.DragID())
	}
	m = press(t, m, "g", "m")
	if m.drag.Dragging() {
		t.Fatal("drag should be finished after drop")
	}
	f := m.db.State.FindFolder("fld-1")
	if f == nil || len(f.MemberIDs) != 2 {
		t.Fatalf("expected r2 in folder, got %+v", f)
	}
	if f.Counts.Critical != 1 || f.Counts.Warning != 1 {
		t.Fatalf("counters not recomputed: %+v", f.Counts)
	}
	if len(m.db.State.UnassignedIDs) != 1 || m.db.State.UnassignedIDs[0] != "r3" {
		t.Fatalf("unassigned = %v", m.db.State.UnassignedIDs)
	}
}

func TestEscCancelsDrag(t *testing.T) {
	m := testModel(t)
	m = press(t, m, "j", "j", "m", "esc")
	if m.drag.Dragging() {
		t.Fatal("esc should cancel the drag")
	}
	if len(m.db.State.UnassignedIDs) != 2 {
		t.Fatalf("state should be unchanged, unassigned = %v", m.db.State.UnassignedIDs)
	}
}

func TestMultiSelectDragMovesWholeSelection(t *testing.T) {
	m := testModel(t)

	// Select r2 and r3 (space advances the cursor), step back onto r2,
	// grab it and drop on the folder header. Both selected records move.
	m = press(t, m, "j", "j", "space", "space", "k", "m", "g", "m")

	f := m.db.State.FindFolder("fld-1")
	if f == nil || len(f.MemberIDs) != 3 {
		t.Fatalf("expected both selected records moved, folder = %+v", f)
	}
	if len(m.db.State.UnassignedIDs) != 0 {
		t.Fatalf("unassigned = %v", m.db.State.UnassignedIDs)
	}
	if m.sel.Len() != 0 {
		t.Fatalf("selection should clear after multi-move, len = %d", m.sel.Len())
	}
}

func TestUnassignKey(t *testing.T) {
	m := testModel(t)
	m = press(t, m, "j", "u")
	if len(m.db.State.UnassignedIDs) != 3 {
		t.Fatalf("expected r1 unassigned, got %v", m.db.State.UnassignedIDs)
	}
	f := m.db.State.FindFolder("fld-1")
	if len(f.MemberIDs) != 0 || f.Counts.Total() != 0 {
		t.Fatalf("folder should be empty: %+v", f)
	}
}

func TestUnassignAlreadyUnassignedIsNoop(t *testing.T) {
	m := testModel(t)
	m = press(t, m, "j", "j", "u")
	if len(m.db.State.UnassignedIDs) != 2 {
		t.Fatalf("unassigned = %v", m.db.State.UnassignedIDs)
	}
	if m.flashLevel != flashError {
		t.Fatal("expected a rejection flash")
	}
}

func TestSearchFiltersLive(t *testing.T) {
	m := testModel(t)
	m = press(t, m, "/", "c", "e", "r", "t")
	got := rowIDs(m)
	// The folder header always stays; only r2 matches "cert".
	if len(got) != 2 || got[0] != "fld-1" || got[1] != "r2" {
		t.Fatalf("filtered rows = %v", got)
	}
	if m.rowSeq[0].Folder.Counts.Total() != 1 {
		t.Fatalf("header counters must reflect full membership: %+v", m.rowSeq[0].Folder.Counts)
	}

	m = press(t, m, "esc")
	if len(rowIDs(m)) != 4 {
		t.Fatalf("esc should clear the search, rows = %v", rowIDs(m))
	}
}

func TestNewFolderModal(t *testing.T) {
	m := testModel(t)
	m = press(t, m, "n")
	if m.modal != modalNewFolder {
		t.Fatalf("modal = %v", m.modal)
	}
	m = press(t, m, "O", "p", "s", "enter")
	if len(m.db.State.Folders) != 2 {
		t.Fatalf("folders = %+v", m.db.State.Folders)
	}
	var created *model.Folder
	for i := range m.db.State.Folders {
		if m.db.State.Folders[i].Name == "Ops" {
			created = &m.db.State.Folders[i]
		}
	}
	if created == nil {
		t.Fatalf("folder Ops not created: %+v", m.db.State.Folders)
	}
	if r, ok := m.cursorRow(); !ok || r.ID() != created.ID {
		t.Fatalf("cursor should land on the new folder")
	}
}

func TestRenameFolderModal(t *testing.T) {
	m := testModel(t)
	m = press(t, m, "r")
	if m.modal != modalRenameFolder {
		t.Fatalf("modal = %v", m.modal)
	}
	// Input is prefilled with "Infra"; append "2".
	m = press(t, m, "2", "enter")
	if f := m.db.State.FindFolder("fld-1"); f == nil || f.Name != "Infra2" {
		t.Fatalf("rename failed: %+v", f)
	}
}

func TestDeleteFolderConfirm(t *testing.T) {
	m := testModel(t)
	m = press(t, m, "d")
	if m.modal != modalConfirmDelete {
		t.Fatalf("modal = %v", m.modal)
	}
	m = press(t, m, "y")
	if len(m.db.State.Folders) != 0 {
		t.Fatalf("folders = %+v", m.db.State.Folders)
	}
	if len(m.db.State.UnassignedIDs) != 3 {
		t.Fatalf("members must return to unassigned: %v", m.db.State.UnassignedIDs)
	}
}

func TestDeleteFolderDeclined(t *testing.T) {
	m := testModel(t)
	m = press(t, m, "d", "n")
	if len(m.db.State.Folders) != 1 || m.modal != modalNone {
		t.Fatalf("decline should leave state untouched")
	}
}

func TestFolderPickerFilesSelection(t *testing.T) {
	m := testModel(t)
	// Select r2, then open the picker from r3 and accept the only folder.
	m = press(t, m, "j", "j", "space", "f", "enter")
	f := m.db.State.FindFolder("fld-1")
	if f == nil || len(f.MemberIDs) != 3 {
		t.Fatalf("expected r2+r3 filed, folder = %+v", f)
	}
	if m.sel.Len() != 0 {
		t.Fatal("selection should clear after a multi add-to-folder")
	}
}

func TestFilterFieldPickerAppliesAndPrefills(t *testing.T) {
	m := testModel(t)
	// Pick the first field (severity) and filter to critical.
	m = press(t, m, "F", "enter", "critical", "enter")
	if got := m.filters.Columns[query.FieldSeverity]; got != "critical" {
		t.Fatalf("severity filter = %q", got)
	}
	want := []string{"fld-1", "r1"}
	if got := rowIDs(m); !reflect.DeepEqual(got, want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	// Reopening the picker on the same field prefills the current value.
	m = press(t, m, "F", "enter")
	if m.modal != modalFilterValue || m.input.Value() != "critical" {
		t.Fatalf("modal = %v, input = %q", m.modal, m.input.Value())
	}
	// An empty value clears the filter.
	m.input.SetValue("")
	m = press(t, m, "enter")
	if len(m.filters.Columns) != 0 || len(rowIDs(m)) != 4 {
		t.Fatalf("filter should clear: %v rows %v", m.filters.Columns, rowIDs(m))
	}
}

func TestQuitPersistsState(t *testing.T) {
	m := testModel(t)
	m = press(t, m, "j", "u")

	next, cmd := m.Update(key("q"))
	m = next.(appModel)
	if cmd == nil {
		t.Fatal("expected tea.Quit command")
	}

	db, err := m.store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(db.Records) != 3 {
		t.Fatalf("records not flushed: %d", len(db.Records))
	}

	st, err := m.store.LoadTUIState()
	if err != nil {
		t.Fatalf("LoadTUIState: %v", err)
	}
	if st.CursorRowID == "" {
		t.Fatal("expected cursor row id in saved tui state")
	}
}

func TestViewRendersWithoutSize(t *testing.T) {
	s := store.Store{Dir: filepath.Join(t.TempDir(), ".triage")}
	_ = s.Ensure()
	db := &store.DB{State: model.FolderState{Expanded: map[string]bool{}}}
	log := logrus.New()
	log.SetOutput(io.Discard)
	m := newAppModel(s, db, store.DefaultConfig(), logrus.NewEntry(log))
	if v := m.View(); v != "" {
		t.Fatalf("unsized view should be empty, got %q", v)
	}
}

func TestViewShowsWindowedRows(t *testing.T) {
	m := testModel(t)
	v := m.View()
	if v == "" {
		t.Fatal("expected rendered view")
	}
	for _, want := range []string{"Infra", "db down", "cert expiring"} {
		if !strings.Contains(v, want) {
			t.Fatalf("view missing %q:\n%s", want, v)
		}
	}
}
