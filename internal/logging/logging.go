// Package logging sets up the file-backed logger. A TUI owns the terminal, so
// log output always goes to a file, never to stderr.
package logging

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Open returns a logger writing to the given file and a close function. When
// the file cannot be opened the returned logger discards everything; the game
// must run even if its data directory is read-only.
func Open(path string) (zerolog.Logger, func() error) {
	level := zerolog.InfoLevel
	if lvl, err := zerolog.ParseLevel(os.Getenv("THUMBFALL_LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		level = lvl
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), func() error { return nil }
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), func() error { return nil }
	}

	logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
	zerolog.TimeFieldFormat = time.RFC3339
	return logger, f.Close
}
