package tui

import (
	"triage-cli/internal/query"
	"triage-cli/internal/store"
)

// restoreTUIState re-applies the interface state saved by the previous
// session. Everything here is best-effort: ids that no longer resolve
// are dropped silently.
func (m *appModel) restoreTUIState() {
	st, err := m.store.LoadTUIState()
	if err != nil {
		m.log.WithError(err).Debug("no saved tui state")
		return
	}

	m.spec = query.ParseSpec(st.SortKeys)
	if st.Search != "" {
		m.filters.Search = st.Search
		m.searchInput.SetValue(st.Search)
	}

	idx := m.db.RecordIndex()
	for _, id := range st.SelectedIDs {
		if _, ok := idx[id]; ok {
			m.sel.Toggle(id)
		}
	}

	m.scroll = st.Scroll
	if m.scroll < 0 {
		m.scroll = 0
	}

	// Cursor restore happens after the first refresh() resolves row ids,
	// so stash the id and let newAppModel finish up.
	m.pendingCursorID = st.CursorRowID
}

func (m *appModel) saveTUIState() {
	st := store.TUIState{
		Scroll:   m.scroll,
		Search:   m.filters.Search,
		SortKeys: m.spec.Strings(),
	}
	if r, ok := m.cursorRow(); ok {
		st.CursorRowID = r.ID()
	}
	st.SelectedIDs = m.sel.IDs()
	if err := m.store.SaveTUIState(st); err != nil {
		m.log.WithError(err).Warn("save tui state failed")
	}
}
