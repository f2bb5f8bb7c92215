// Package logging configures the process logger. The TUI owns the
// terminal, so log output always goes to a file inside the data dir —
// never stdout/stderr while the program is interactive.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const logFileName = "triage.log"

// New returns a file-backed logger for the given data dir. If the file
// cannot be opened the logger discards output; logging is never a reason
// for the app to fail.
func New(dir, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(ParseLevel(level))
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger.SetOutput(io.Discard)
		return logger
	}
	logger.SetOutput(f)
	return logger
}

// ParseLevel maps a config/env string to a logrus level. Unknown strings
// default to warn: quiet enough for a TUI, loud enough for failures.
func ParseLevel(s string) logrus.Level {
	switch s {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.WarnLevel
	}
}
