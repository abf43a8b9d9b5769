// Package logging wraps log/slog with the level and handler choices shared by
// the executables and loaders.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelEnv names the environment variable that selects the minimum level.
const LevelEnv = "XCORE_LOG_LEVEL"

// Logger is a slog.Logger with a few domain helpers.
type Logger struct {
	*slog.Logger
}

// New returns a JSON logger writing to w. The level comes from XCORE_LOG_LEVEL
// (DEBUG, INFO, WARN or ERROR) and defaults to INFO.
func New(w io.Writer) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: levelFromEnv()})
	return &Logger{slog.New(handler)}
}

// Default logs to stderr.
func Default() *Logger {
	return New(os.Stderr)
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// With returns a logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{l.Logger.With(args...)}
}

// WithStage tags records with the stage name.
func (l *Logger) WithStage(name string) *Logger {
	return l.With("stage", name)
}

// Failure logs err at ERROR with msg.
func (l *Logger) Failure(msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.Error(msg, args...)
}

// ParseLevel maps a level name to a slog level. Unknown names give INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func levelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(LevelEnv))
}
