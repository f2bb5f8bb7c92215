package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"triage-cli/internal/rows"
)

// padLine fits a styled line to exactly width terminal cells.
func padLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := xansi.StringWidth(s)
	if w < width {
		return s + strings.Repeat(" ", width-w)
	}
	if w > width {
		return xansi.Cut(s, 0, width)
	}
	return s
}

func (m *appModel) renderRow(idx int, width int) []string {
	r := m.rowSeq[idx]
	if r.Kind == rows.KindFolder {
		return []string{m.renderFolderRow(r, idx == m.cursor, width)}
	}
	return m.renderRecordRow(r, idx == m.cursor, width)
}

func (m *appModel) renderFolderRow(r rows.Row, cursor bool, width int) string {
	arrow := "▸"
	if r.Expanded {
		arrow = "▾"
	}

	name := lipgloss.NewStyle().Bold(true).Render(r.Folder.Name)
	counts := renderCounts(r)
	visible := ""
	if r.Expanded && r.Visible != len(r.Folder.MemberIDs) {
		visible = faintIfDark(lipgloss.NewStyle().Foreground(colorMuted)).
			Render(fmt.Sprintf(" (%d/%d shown)", r.Visible, len(r.Folder.MemberIDs)))
	}

	line := padLine(fmt.Sprintf("%s %s  %s%s", arrow, name, counts, visible), width)
	if cursor {
		line = lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Render(
			padLine(fmt.Sprintf("%s %s  %s%s", arrow, r.Folder.Name, renderCountsPlain(r), visible), width))
	}
	return line
}

// renderCounts renders the per-severity counters derived from the full
// membership, colored per severity.
func renderCounts(r rows.Row) string {
	c := r.Folder.Counts
	parts := []string{
		lipgloss.NewStyle().Foreground(colorSevCritical).Render(fmt.Sprintf("●%d", c.Critical)),
		lipgloss.NewStyle().Foreground(colorSevMajor).Render(fmt.Sprintf("◆%d", c.Major)),
		lipgloss.NewStyle().Foreground(colorSevWarning).Render(fmt.Sprintf("▲%d", c.Warning)),
		lipgloss.NewStyle().Foreground(colorSevDisabled).Render(fmt.Sprintf("○%d", c.Disabled)),
	}
	return strings.Join(parts, " ")
}

func renderCountsPlain(r rows.Row) string {
	c := r.Folder.Counts
	return fmt.Sprintf("●%d ◆%d ▲%d ○%d", c.Critical, c.Major, c.Warning, c.Disabled)
}

func (m *appModel) renderRecordRow(r rows.Row, cursor bool, width int) []string {
	rec := r.Record

	indent := ""
	if r.InFolder {
		indent = "  "
	}

	marker := " "
	if m.sel.Has(rec.ID) {
		marker = lipgloss.NewStyle().Foreground(colorMarked).Render("✔")
	}

	glyph := lipgloss.NewStyle().Foreground(severityColor(rec.Severity)).Render(severityGlyph(rec.Severity))
	meta := faintIfDark(lipgloss.NewStyle().Foreground(colorMuted)).
		Render(fmt.Sprintf("%s/%s", rec.Impact, rec.Environment))

	first := fmt.Sprintf("%s%s %s %s  %s", indent, marker, glyph, rec.Description, meta)

	style := lipgloss.NewStyle()
	switch {
	case m.drag.Dragging() && m.drag.DragID() == rec.ID:
		style = style.Background(colorDragBg)
		first = fmt.Sprintf("%s%s %s %s  %s", indent, "↕", severityGlyph(rec.Severity), rec.Description, fmt.Sprintf("%s/%s", rec.Impact, rec.Environment))
	case cursor:
		style = style.Foreground(colorSelectedFg).Background(colorSelectedBg)
		markerPlain := " "
		if m.sel.Has(rec.ID) {
			markerPlain = "✔"
		}
		first = fmt.Sprintf("%s%s %s %s  %s", indent, markerPlain, severityGlyph(rec.Severity), rec.Description, fmt.Sprintf("%s/%s", rec.Impact, rec.Environment))
	}

	lines := []string{style.Render(padLine(first, width))}
	if rowHeight(r) > 1 {
		detail := rec.OriginPath
		if len(rec.Identities) > 0 {
			detail += "  " + strings.Join(rec.Identities, ", ")
		}
		second := faintIfDark(lipgloss.NewStyle().Foreground(colorMuted)).
			Render(padLine(indent+"  "+detail, width))
		if cursor {
			second = style.Render(padLine(indent+"  "+detail, width))
		}
		lines = append(lines, second)
	}
	return lines
}
