package tui

import (
	"triage-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

func Run(s store.Store, db *store.DB, cfg store.Config, log *logrus.Entry) error {
	applyColorProfilePreference()
	m := newAppModel(s, db, cfg, log)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
