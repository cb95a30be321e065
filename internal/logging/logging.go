// Package logging configures gridview's structured logger. The TUI owns the
// terminal, so records go to a file through a tint handler with colors off.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
)

// New returns a logger writing tint-formatted records to w.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		NoColor:    true,
		AddSource:  verbose,
		TimeFormat: time.DateTime,
	}))
}

// Setup opens the log file at path, creating its directory, and installs the
// logger as the slog default. The returned closer flushes the file.
func Setup(path string, verbose bool) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	slog.SetDefault(New(file, verbose))
	return file, nil
}

// Discard installs a logger that drops everything.
func Discard() {
	slog.SetDefault(New(io.Discard, false))
}
