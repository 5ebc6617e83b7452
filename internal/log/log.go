// Package log provides category-tagged structured logging for skillforge.
//
// The TUI owns stdout, so log output goes to a file. Until Init is called
// every call is a no-op, which keeps tests and one-shot CLI commands quiet.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Category tags a log line with the subsystem that produced it.
type Category string

const (
	CatAPI      Category = "api"
	CatStore    Category = "store"
	CatAgent    Category = "agent"
	CatUI       Category = "ui"
	CatConfig   Category = "config"
	CatInsights Category = "insights"
	CatTrace    Category = "trace"
)

var (
	mu     sync.RWMutex
	logger *slog.Logger
	closer io.Closer
)

// Init opens (or appends to) the log file at path and routes all log calls to it.
// When debug is true, Debug lines are written as well.
func Init(path string, debug bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600) //nolint:gosec // G304: path comes from user config
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	SetOutput(f, debug)

	mu.Lock()
	closer = f
	mu.Unlock()
	return nil
}

// SetOutput routes log calls to w. Used by Init and by tests.
func SetOutput(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Close flushes and releases the log file, and disables logging.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	logger = nil
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}

// Enabled reports whether a log destination is configured.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return logger != nil
}

func emit(level slog.Level, cat Category, msg string, args []any) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l == nil {
		return
	}
	l.With("cat", string(cat)).Log(context.Background(), level, msg, args...)
}

// Debug logs a debug line for the given category.
func Debug(cat Category, msg string, args ...any) {
	emit(slog.LevelDebug, cat, msg, args)
}

// Info logs an informational line.
func Info(cat Category, msg string, args ...any) {
	emit(slog.LevelInfo, cat, msg, args)
}

// Warn logs a warning.
func Warn(cat Category, msg string, args ...any) {
	emit(slog.LevelWarn, cat, msg, args)
}

// Error logs an error line without an error value.
func Error(cat Category, msg string, args ...any) {
	emit(slog.LevelError, cat, msg, args)
}

// ErrorErr logs err under the "error" key alongside msg.
func ErrorErr(cat Category, msg string, err error, args ...any) {
	emit(slog.LevelError, cat, msg, append([]any{"error", err}, args...))
}
