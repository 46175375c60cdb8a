package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a logger at the given level name ("debug", "info", "warn",
// "error"). An empty name means warn.
func New(w io.Writer, level string) (*Logger, error) {
	lvl := log.WarnLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		lvl = parsed
	}

	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           lvl,
		Prefix:          "treemd",
	})
	return &Logger{Logger: l}, nil
}

// NewFileLogger creates a logger that writes to a file. The navigator owns
// the terminal, so it logs here instead of stderr.
func NewFileLogger(path, level string) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	l, err := New(f, level)
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
	}
	return l, cleanup, nil
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	l, _ := New(io.Discard, "")
	return l
}

// DocumentParsed logs a parsed document.
func (l *Logger) DocumentParsed(path string, headings int, took time.Duration) {
	l.Debug("document parsed",
		"path", path,
		"headings", headings,
		"duration", took.Round(time.Microsecond))
}

// Reloaded logs a reload triggered by a file change.
func (l *Logger) Reloaded(path string) {
	l.Info("document reloaded", "path", path)
}

// FileIndexed logs a file written to the index.
func (l *Logger) FileIndexed(path string, headings, links int) {
	l.Debug("file indexed",
		"path", path,
		"headings", headings,
		"links", links)
}

// Skipped logs when a file is skipped
func (l *Logger) Skipped(path, reason string) {
	l.Debug("file skipped",
		"path", path,
		"reason", reason)
}

// IndexCompleted logs the end of a directory index run.
func (l *Logger) IndexCompleted(root string, indexed, skipped int, took time.Duration) {
	l.Info("index completed",
		"root", root,
		"indexed", indexed,
		"skipped", skipped,
		"duration", took.Round(time.Millisecond))
}

// FileError logs an error for a specific file
func (l *Logger) FileError(path string, err error) {
	l.Error("file error",
		"path", path,
		"error", err)
}
