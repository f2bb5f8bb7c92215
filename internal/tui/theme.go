package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"triage-cli/internal/model"
	"triage-cli/internal/rows"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal
// backgrounds, so colors are lipgloss.AdaptiveColor pairs and "faint"
// styling is only applied on dark backgrounds (faint on light terminals
// often becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted    lipgloss.TerminalColor = ac("240", "243")
	colorChromeFg lipgloss.TerminalColor = ac("240", "245")

	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")

	colorAccent  lipgloss.TerminalColor = ac("27", "62") // blue
	colorMarked  lipgloss.TerminalColor = ac("28", "77") // green checkmark for selected records
	colorDragBg  lipgloss.TerminalColor = ac("229", "58")
	colorErrorFg lipgloss.TerminalColor = ac("196", "160")

	colorSevCritical lipgloss.TerminalColor = ac("160", "196")
	colorSevMajor    lipgloss.TerminalColor = ac("166", "208")
	colorSevWarning  lipgloss.TerminalColor = ac("136", "178")
	colorSevDisabled lipgloss.TerminalColor = ac("245", "242")
)

func severityColor(s model.Severity) lipgloss.TerminalColor {
	switch s {
	case model.SeverityCritical:
		return colorSevCritical
	case model.SeverityMajor:
		return colorSevMajor
	case model.SeverityWarning:
		return colorSevWarning
	default:
		return colorSevDisabled
	}
}

func severityGlyph(s model.Severity) string {
	switch s {
	case model.SeverityCritical:
		return "●"
	case model.SeverityMajor:
		return "◆"
	case model.SeverityWarning:
		return "▲"
	default:
		return "○"
	}
}

// applyColorProfilePreference sets Lip Gloss's color profile for the
// interactive TUI. termenv.EnvColorProfile respects CLICOLOR/
// CLICOLOR_FORCE, which can accidentally disable colors in a TUI, so we
// only honor NO_COLOR and otherwise follow the terminal's capabilities.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// Trust TERM/COLORTERM when they indicate stronger support than the
	// detector reports; color probing under-reports on some terminals.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}

	lipgloss.SetColorProfile(profile)
}

// Appearance profiles. "default" renders records as two-line rows with a
// secondary detail line; "compact" packs one record per line.
var compactProfile bool

func applyProfile(name string) {
	compactProfile = name == "compact"
}

// rowHeight is the rendered height of a row under the active profile.
// The windower consumes this through appModel.measure.
func rowHeight(r rows.Row) int {
	if r.Kind == rows.KindFolder {
		return 1
	}
	if compactProfile {
		return 1
	}
	return 2
}
