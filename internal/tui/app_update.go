package tui

import (
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"triage-cli/internal/folders"
	"triage-cli/internal/query"
	"triage-cli/internal/rows"
	"triage-cli/internal/selection"
)

func flashAfter(seq int) tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return flashDoneMsg{seq: seq}
	})
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.picker != pickerNone {
			m.pickerList.SetSize(pickerWidth(m.width), pickerHeight(m.height))
		}
		m.ensureCursorVisible()
		return m, nil

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.picker != pickerNone {
			return m.updatePicker(msg)
		}
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateMain(msg)
	}
	return m, nil
}

func (m appModel) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.saver.Flush()
		m.saveTUIState()
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "j", "down":
		m.cursor++
		m.clampCursor()
		m.ensureCursorVisible()
		return m, nil
	case "k", "up":
		m.cursor--
		m.clampCursor()
		m.ensureCursorVisible()
		return m, nil
	case "g", "home":
		m.cursor = 0
		m.scroll = 0
		return m, nil
	case "G", "end":
		m.cursor = len(m.rowSeq) - 1
		m.clampCursor()
		m.ensureCursorVisible()
		return m, nil
	case "ctrl+d", "pgdown":
		m.cursor += m.bodyHeight() / 2
		m.clampCursor()
		m.ensureCursorVisible()
		return m, nil
	case "ctrl+u", "pgup":
		m.cursor -= m.bodyHeight() / 2
		m.clampCursor()
		m.ensureCursorVisible()
		return m, nil

	case "enter", "tab":
		if r, ok := m.cursorRow(); ok && r.Kind == rows.KindFolder {
			m.db.State = folders.ToggleExpansion(m.db.State, r.Folder.ID)
			m.refresh()
			m.moveCursorTo(r.Folder.ID)
			m.ensureCursorVisible()
			m.markDirty()
		}
		return m, nil

	case " ":
		if r, ok := m.cursorRow(); ok && r.Kind == rows.KindRecord {
			m.sel.Toggle(r.Record.ID)
			m.cursor++
			m.clampCursor()
			m.ensureCursorVisible()
		}
		return m, nil

	case "esc":
		switch {
		case m.drag.Dragging():
			m.drag.Cancel()
			return m, m.setFlash("move cancelled", flashInfo)
		case m.sel.Len() > 0:
			m.sel.Clear()
		case m.filters.Search != "" || len(m.filters.Columns) > 0:
			m.filters.Search = ""
			m.filters.Columns = nil
			m.searchInput.SetValue("")
			m.refresh()
			m.clampCursor()
		}
		return m, nil

	case "m":
		return m.handleGrabOrDrop()

	case "u":
		return m.handleMoveToUnassigned()

	case "f":
		if r, ok := m.cursorRow(); ok && r.Kind == rows.KindRecord {
			if len(m.db.State.Folders) == 0 {
				return m, m.setFlash("no folders yet (press n)", flashError)
			}
			m.modalForID = r.Record.ID
			m.openFolderPicker()
			m.pickerList.SetSize(pickerWidth(m.width), pickerHeight(m.height))
		}
		return m, nil

	case "n":
		m.modal = modalNewFolder
		m.input = newInputLine("folder name")
		m.input.Focus()
		return m, nil

	case "r":
		if r, ok := m.cursorRow(); ok && r.Kind == rows.KindFolder {
			m.modal = modalRenameFolder
			m.modalForID = r.Folder.ID
			m.input = newInputLine("folder name")
			m.input.SetValue(r.Folder.Name)
			m.input.Focus()
		}
		return m, nil

	case "d":
		if r, ok := m.cursorRow(); ok && r.Kind == rows.KindFolder {
			m.modal = modalConfirmDelete
			m.modalForID = r.Folder.ID
		}
		return m, nil

	case "/":
		m.searching = true
		m.searchInput.Focus()
		return m, nil

	case "s":
		m.openSortPicker()
		m.pickerList.SetSize(pickerWidth(m.width), pickerHeight(m.height))
		return m, nil

	case "F":
		m.openFilterFieldPicker()
		m.pickerList.SetSize(pickerWidth(m.width), pickerHeight(m.height))
		return m, nil
	}
	return m, nil
}

// handleGrabOrDrop implements the keyboard move gesture: the first press
// grabs the record under the cursor, the second drops it on the folder
// (or unassigned area) under the cursor.
func (m appModel) handleGrabOrDrop() (tea.Model, tea.Cmd) {
	r, ok := m.cursorRow()
	if !ok {
		return m, nil
	}

	if !m.drag.Dragging() {
		if r.Kind != rows.KindRecord {
			return m, m.setFlash("folders cannot be moved", flashError)
		}
		m.drag.Start(r.Record.ID)
		return m, m.setFlash("moving; press m on a target, esc to cancel", flashInfo)
	}

	target := selection.DropTarget{Kind: selection.TargetUnassigned}
	switch {
	case r.Kind == rows.KindFolder:
		target = selection.DropTarget{Kind: selection.TargetFolder, FolderID: r.Folder.ID}
	case r.InFolder:
		target = selection.DropTarget{Kind: selection.TargetFolder, FolderID: r.FolderID}
	}

	keep := m.drag.DragID()
	next, res := m.drag.Drop(m.db.State, m.db.RecordIndex(), m.sel, target)
	if res.Rejected {
		return m, m.setFlash(res.Reason, flashError)
	}
	m.db.State = next
	m.refresh()
	m.moveCursorTo(keep)
	m.ensureCursorVisible()
	m.markDirty()
	return m, m.setFlash(movedFlash(len(res.Moved), target), flashInfo)
}

func (m appModel) handleMoveToUnassigned() (tea.Model, tea.Cmd) {
	r, ok := m.cursorRow()
	if !ok || r.Kind != rows.KindRecord {
		return m, nil
	}
	if m.drag.Dragging() {
		m.drag.Cancel()
	}
	m.drag.Start(r.Record.ID)
	next, res := m.drag.Drop(m.db.State, m.db.RecordIndex(), m.sel, selection.DropTarget{Kind: selection.TargetUnassigned})
	if res.Rejected {
		return m, m.setFlash(res.Reason, flashError)
	}
	m.db.State = next
	m.refresh()
	m.moveCursorTo(r.Record.ID)
	m.ensureCursorVisible()
	m.markDirty()
	return m, m.setFlash(movedFlash(len(res.Moved), res.Target), flashInfo)
}

func movedFlash(n int, target selection.DropTarget) string {
	dest := "unassigned"
	if target.Kind == selection.TargetFolder {
		dest = "folder"
	}
	if n == 1 {
		return "moved 1 record to " + dest
	}
	return "moved " + strconv.Itoa(n) + " records to " + dest
}

func (m appModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.filters.Search = ""
		m.refresh()
		m.clampCursor()
		return m, nil
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	// Live filtering: the row sequence tracks every keystroke.
	m.filters.Search = m.searchInput.Value()
	m.refresh()
	m.clampCursor()
	m.ensureCursorVisible()
	return m, cmd
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal == modalConfirmDelete {
		switch msg.String() {
		case "y", "enter":
			id := m.modalForID
			m.modal = modalNone
			m.modalForID = ""
			if m.db.State.FindFolder(id) == nil {
				return m, nil
			}
			m.db.State = folders.Delete(m.db.State, id)
			m.refresh()
			m.clampCursor()
			m.markDirty()
			return m, m.setFlash("folder deleted; records returned to unassigned", flashInfo)
		case "n", "esc":
			m.modal = modalNone
			m.modalForID = ""
			return m, nil
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.modal = modalNone
		m.modalForID = ""
		return m, nil
	case "enter":
		return m.applyInputModal()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) applyInputModal() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	modal := m.modal
	forID := m.modalForID
	m.modal = modalNone
	m.modalForID = ""

	switch modal {
	case modalNewFolder:
		if value == "" {
			return m, nil
		}
		st, id := folders.Create(m.db.State, value)
		m.db.State = st
		m.refresh()
		m.moveCursorTo(id)
		m.ensureCursorVisible()
		m.markDirty()
		return m, m.setFlash("folder created", flashInfo)

	case modalRenameFolder:
		if value == "" || m.db.State.FindFolder(forID) == nil {
			return m, nil
		}
		m.db.State = folders.Rename(m.db.State, forID, value)
		m.refresh()
		m.moveCursorTo(forID)
		m.markDirty()
		return m, nil

	case modalFilterValue:
		if m.filters.Columns == nil {
			m.filters.Columns = map[query.Field]string{}
		}
		if value == "" {
			delete(m.filters.Columns, m.filterField)
		} else {
			m.filters.Columns[m.filterField] = value
		}
		m.refresh()
		m.clampCursor()
		return m, nil
	}
	return m, nil
}

func (m appModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Let the list's own filter input consume keys while active.
	if m.pickerList.SettingFilter() {
		var cmd tea.Cmd
		m.pickerList, cmd = m.pickerList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc", "q":
		m.closePicker()
		return m, nil
	case "enter":
		return m.applyPicker()
	}

	var cmd tea.Cmd
	m.pickerList, cmd = m.pickerList.Update(msg)
	return m, cmd
}

func (m appModel) applyPicker() (tea.Model, tea.Cmd) {
	picker := m.picker
	m.closePicker()

	switch picker {
	case pickerFolder:
		it, ok := m.pickerList.SelectedItem().(folderPickItem)
		if !ok {
			return m, nil
		}
		recordID := m.modalForID
		m.modalForID = ""
		next, res := selection.AddToFolder(m.db.State, m.db.RecordIndex(), m.sel, recordID, it.id)
		if res.Rejected {
			return m, m.setFlash(res.Reason, flashError)
		}
		m.db.State = next
		m.refresh()
		m.moveCursorTo(recordID)
		m.ensureCursorVisible()
		m.markDirty()
		return m, m.setFlash(movedFlash(len(res.Moved), res.Target), flashInfo)

	case pickerSortField:
		it, ok := m.pickerList.SelectedItem().(fieldPickItem)
		if !ok {
			return m, nil
		}
		cur := ""
		if r, hasCur := m.cursorRow(); hasCur {
			cur = r.ID()
		}
		m.toggleSortKey(it.field)
		m.refresh()
		m.moveCursorTo(cur)
		m.ensureCursorVisible()
		return m, nil

	case pickerFilterField:
		it, ok := m.pickerList.SelectedItem().(fieldPickItem)
		if !ok {
			return m, nil
		}
		m.filterField = it.field
		m.modal = modalFilterValue
		m.input = newInputLine("filter value (empty clears)")
		if v, ok := m.filters.Columns[it.field]; ok {
			m.input.SetValue(v)
		}
		m.input.Focus()
		return m, nil
	}
	return m, nil
}

func pickerWidth(w int) int {
	pw := w - 8
	if pw > 60 {
		pw = 60
	}
	if pw < 20 {
		pw = 20
	}
	return pw
}

func pickerHeight(h int) int {
	ph := h - 6
	if ph > 16 {
		ph = 16
	}
	if ph < 5 {
		ph = 5
	}
	return ph
}
