// Package log is a thin leveled logger over slog. Output goes to stderr so
// it never mixes with rendered reports or the MCP stdio transport.
package log

import (
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
)

var level atomic.Int64

func init() {
	level.Store(int64(slog.LevelInfo))
}

// SetLevel sets the global log level.
func SetLevel(l slog.Level) {
	level.Store(int64(l))
}

// SetVerbose drops the level to debug.
func SetVerbose() {
	SetLevel(slog.LevelDebug)
}

// Debug logs a debug message if the level allows it.
func Debug(format string, args ...any) {
	logf(slog.LevelDebug, "DEBUG", format, args...)
}

// Info logs an info message if the level allows it.
func Info(format string, args ...any) {
	logf(slog.LevelInfo, "INFO", format, args...)
}

// Warn logs a warning message if the level allows it.
func Warn(format string, args ...any) {
	logf(slog.LevelWarn, "WARN", format, args...)
}

// Error logs an error message if the level allows it.
func Error(format string, args ...any) {
	logf(slog.LevelError, "ERROR", format, args...)
}

func logf(l slog.Level, tag, format string, args ...any) {
	if slog.Level(level.Load()) > l {
		return
	}
	fmt.Fprintf(os.Stderr, "["+tag+"] "+format+"\n", args...)
}
