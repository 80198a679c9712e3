// Package log provides a small leveled logger over the standard library.
package log

import (
	"io"
	stdlog "log"
	"os"
)

// Level controls how much the service logs.
type Level int

const (
	// Off disables all logging.
	Off Level = iota
	// Basic logs startup, shutdown, and request-level failures.
	Basic
	// Detailed adds per-operation store activity.
	Detailed
	// Trace adds policy decisions and filter values.
	Trace
	// Wire adds raw upstream request/response detail.
	Wire
)

// LevelFromInt clamps an integer (e.g. from an env var) to a valid Level.
func LevelFromInt(n int) Level {
	switch {
	case n <= 0:
		return Off
	case n >= int(Wire):
		return Wire
	default:
		return Level(n)
	}
}

// Logger writes leveled messages. The zero value is silent.
type Logger struct {
	level Level
	out   *stdlog.Logger
}

// New creates a Logger writing to stderr at the given level.
func New(level Level) *Logger {
	return NewWithWriter(level, os.Stderr)
}

// NewWithWriter creates a Logger writing to w at the given level.
func NewWithWriter(level Level, w io.Writer) *Logger {
	return &Logger{level: level, out: stdlog.New(w, "", stdlog.LstdFlags)}
}

// Level reports the configured level.
func (l *Logger) Level() Level {
	if l == nil {
		return Off
	}
	return l.level
}

// Logf writes a message if the logger's level is at or above lvl.
func (l *Logger) Logf(lvl Level, format string, args ...any) {
	if l == nil || l.out == nil || l.level < lvl || lvl == Off {
		return
	}
	l.out.Printf(format, args...)
}

// Basicf logs at the Basic level.
func (l *Logger) Basicf(format string, args ...any) { l.Logf(Basic, format, args...) }

// Detailedf logs at the Detailed level.
func (l *Logger) Detailedf(format string, args ...any) { l.Logf(Detailed, format, args...) }

// Tracef logs at the Trace level.
func (l *Logger) Tracef(format string, args ...any) { l.Logf(Trace, format, args...) }
