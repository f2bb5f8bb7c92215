package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"triage-cli/internal/query"
)

type folderPickItem struct {
	id    string
	label string
}

func (i folderPickItem) Title() string       { return i.label }
func (i folderPickItem) Description() string { return "" }
func (i folderPickItem) FilterValue() string { return i.label }

type fieldPickItem struct {
	field query.Field
	label string
}

func (i fieldPickItem) Title() string       { return i.label }
func (i fieldPickItem) Description() string { return "" }
func (i fieldPickItem) FilterValue() string { return i.label }

func newPicker(title string, items []list.Item) list.Model {
	l := list.New(items, newCompactItemDelegate(), 40, 12)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	return l
}

func (m *appModel) openFolderPicker() {
	items := make([]list.Item, 0, len(m.db.State.Folders))
	for _, f := range m.db.State.Folders {
		items = append(items, folderPickItem{
			id:    f.ID,
			label: fmt.Sprintf("%s (%d)", f.Name, len(f.MemberIDs)),
		})
	}
	m.pickerList = newPicker("Move to folder", items)
	m.picker = pickerFolder
}

func (m *appModel) openSortPicker() {
	items := make([]list.Item, 0, len(query.Fields))
	for _, f := range query.Fields {
		label := string(f)
		for _, k := range m.spec {
			if k.Field == f {
				if k.Desc {
					label += "  ↓"
				} else {
					label += "  ↑"
				}
			}
		}
		items = append(items, fieldPickItem{field: f, label: label})
	}
	m.pickerList = newPicker("Sort by", items)
	m.picker = pickerSortField
}

func (m *appModel) openFilterFieldPicker() {
	items := make([]list.Item, 0, len(query.Fields))
	for _, f := range query.Fields {
		label := string(f)
		if v, ok := m.filters.Columns[f]; ok {
			label += "  = " + v
		}
		items = append(items, fieldPickItem{field: f, label: label})
	}
	m.pickerList = newPicker("Filter by field", items)
	m.picker = pickerFilterField
}

func (m *appModel) closePicker() {
	m.picker = pickerNone
}

// toggleSortKey makes field the primary sort key. Selecting the current
// primary key flips its direction instead.
func (m *appModel) toggleSortKey(field query.Field) {
	if len(m.spec) > 0 && m.spec[0].Field == field {
		m.spec[0].Desc = !m.spec[0].Desc
		return
	}
	next := query.Spec{{Field: field}}
	for _, k := range m.spec {
		if k.Field != field {
			next = append(next, k)
		}
	}
	m.spec = next
}
