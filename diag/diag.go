// Package diag defines the logging interface shared by all deckgen
// packages. Components never log on their own: a Logger is injected at
// construction time and defaults to a no-op, so the library stays silent
// unless the caller asks otherwise.
package diag

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Logger receives diagnostic events. Key/value pairs follow the message
// as alternating keys and values.
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Level controls the minimum severity a WriterLogger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// NewWriterLogger returns a Logger that writes one line per event to w.
func NewWriterLogger(w io.Writer, min Level) Logger {
	return &writerLogger{w: w, min: min}
}

type writerLogger struct {
	mu  sync.Mutex
	w   io.Writer
	min Level
}

func (l *writerLogger) Debug(msg string, kv ...any) { l.log(LevelDebug, "DEBUG", msg, kv) }
func (l *writerLogger) Info(msg string, kv ...any)  { l.log(LevelInfo, "INFO", msg, kv) }
func (l *writerLogger) Warn(msg string, kv ...any)  { l.log(LevelWarn, "WARN", msg, kv) }
func (l *writerLogger) Error(msg string, kv ...any) { l.log(LevelError, "ERROR", msg, kv) }

func (l *writerLogger) log(lv Level, tag, msg string, kv []any) {
	if lv < l.min {
		return
	}
	var b strings.Builder
	b.WriteString(tag)
	b.WriteByte(' ')
	b.WriteString(msg)
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
	}
	if len(kv)%2 == 1 {
		fmt.Fprintf(&b, " %v", kv[len(kv)-1])
	}
	b.WriteByte('\n')
	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.w, b.String())
}
