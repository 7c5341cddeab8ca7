// Package logger provides verbose logging for the Sercha launcher.
// When verbose mode is enabled via the --verbose flag, debug messages
// are written to stderr to help users follow the ranking pipeline.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	log               = newLogger(os.Stderr)
)

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	log = newLogger(w)
}

func emit(level slog.Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		log.Log(context.Background(), level, fmt.Sprintf(format, args...))
	}
}

// Debug logs a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	emit(slog.LevelDebug, format, args...)
}

// Info logs an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	emit(slog.LevelInfo, format, args...)
}

// Warn logs a warning if verbose mode is enabled.
func Warn(format string, args ...any) {
	emit(slog.LevelWarn, format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}
