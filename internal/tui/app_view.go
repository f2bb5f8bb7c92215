package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"triage-cli/internal/window"
)

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.showHelp {
		return m.renderHelp()
	}

	header := m.renderHeader()
	body := m.renderBody()
	footer := m.renderFooter()

	if m.picker != pickerNone {
		body = m.overlay(m.pickerList.View())
	} else if m.modal != modalNone {
		body = m.overlay(m.renderModal())
	}

	return header + "\n" + body + "\n" + footer
}

func (m appModel) renderHeader() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render(" triage ")

	total := len(m.db.Records)
	info := fmt.Sprintf("%d records · %d folders", total, len(m.db.State.Folders))
	if m.sel.Len() > 0 {
		info += fmt.Sprintf(" · %d selected", m.sel.Len())
	}
	if m.drag.Dragging() {
		info += " · moving…"
	}
	line1 := padLine(title+"  "+faintIfDark(lipgloss.NewStyle().Foreground(colorChromeFg)).Render(info), m.width)

	var state []string
	if len(m.spec) > 0 {
		state = append(state, "sort: "+strings.Join(m.spec.Strings(), ","))
	}
	for f, v := range m.filters.Columns {
		state = append(state, fmt.Sprintf("%s=%s", f, v))
	}
	if m.searching {
		state = append(state, "search: "+m.searchInput.View())
	} else if m.filters.Search != "" {
		state = append(state, "search: "+m.filters.Search)
	}
	line2 := padLine(faintIfDark(lipgloss.NewStyle().Foreground(colorMuted)).Render(" "+strings.Join(state, "  ")), m.width)

	return line1 + "\n" + line2
}

// renderBody renders only the windowed slice of the row sequence,
// clipping partially visible rows at the viewport edges.
func (m appModel) renderBody() string {
	body := m.bodyHeight()
	if body <= 0 {
		return ""
	}

	win := window.Compute(m.rowSeq, m.measure, m.scroll, body, m.metrics())
	if win.Empty() {
		empty := faintIfDark(lipgloss.NewStyle().Foreground(colorMuted)).Render("  no records match")
		lines := make([]string, body)
		lines[0] = padLine(empty, m.width)
		for i := 1; i < body; i++ {
			lines[i] = padLine("", m.width)
		}
		return strings.Join(lines, "\n")
	}

	var lines []string
	for _, info := range win.Rows {
		rendered := m.renderRow(info.Index, m.width)
		for len(rendered) < info.Height {
			rendered = append(rendered, padLine("", m.width))
		}
		lines = append(lines, rendered[:info.Height]...)
	}

	// The first rendered row may start above the scroll offset.
	skip := m.scroll - win.Rows[0].Offset
	if skip < 0 {
		skip = 0
	}
	if skip > len(lines) {
		skip = len(lines)
	}
	lines = lines[skip:]
	if len(lines) > body {
		lines = lines[:body]
	}
	for len(lines) < body {
		lines = append(lines, padLine("", m.width))
	}
	return strings.Join(lines, "\n")
}

func (m appModel) renderFooter() string {
	flashStyle := faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
	if m.flashLevel == flashError {
		flashStyle = lipgloss.NewStyle().Foreground(colorErrorFg)
	}
	line1 := padLine(flashStyle.Render(" "+m.flash), m.width)

	hints := " j/k move · space select · m grab/drop · u unassign · f file · n/r/d folder · / search · s sort · ? help · q quit"
	line2 := padLine(faintIfDark(lipgloss.NewStyle().Foreground(colorChromeFg)).Render(hints), m.width)
	return line1 + "\n" + line2
}

func (m appModel) renderModal() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1)

	switch m.modal {
	case modalNewFolder:
		return box.Render("New folder\n\n" + m.input.View())
	case modalRenameFolder:
		return box.Render("Rename folder\n\n" + m.input.View())
	case modalFilterValue:
		return box.Render(fmt.Sprintf("Filter %s\n\n%s", m.filterField, m.input.View()))
	case modalConfirmDelete:
		name := m.modalForID
		if f := m.db.State.FindFolder(m.modalForID); f != nil {
			name = f.Name
		}
		return box.Render(fmt.Sprintf("Delete folder %q?\nIts records return to unassigned.\n\n[y]es  [n]o", name))
	}
	return ""
}

func (m appModel) overlay(content string) string {
	return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, content)
}
