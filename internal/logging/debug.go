package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// DebugEnabled returns true if debug mode is enabled via WT_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("WT_DEBUG") != ""
}

// Debugf prints a formatted debug message to stderr only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintln(os.Stderr, args...)
	}
}

// New returns a text logger writing to w. Debug records are emitted when
// verbose is set or WT_DEBUG is present in the environment.
func New(w io.Writer, verbose bool) *slog.Logger {
	if w == nil {
		return Discard()
	}
	level := slog.LevelInfo
	if verbose || DebugEnabled() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record. Useful for tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
