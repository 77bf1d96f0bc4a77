package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultPath is the log file path, relative to the working directory (project root when run via go run ./cmd/sim).
const DefaultPath = "logs/sim.txt"

// DefaultMaxLines bounds the in-memory history shown by the console.
const DefaultMaxLines = 500

// Logger stores recent lines of text in memory and appends every line to a file on disk.
// An empty path keeps lines in memory only.
type Logger struct {
	mu       sync.Mutex
	path     string
	maxLines int
	lines    []string
	echo     io.Writer
	now      func() time.Time
}

// New returns a Logger writing to path and ensures its directory exists. maxLines <= 0 uses DefaultMaxLines.
func New(path string, maxLines int) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	return &Logger{path: path, maxLines: maxLines, lines: make([]string, 0), now: time.Now}
}

// SetEcho also writes every stamped line to w (e.g. os.Stdout for the headless server). nil turns echo off.
func (l *Logger) SetEcho(w io.Writer) {
	l.mu.Lock()
	l.echo = w
	l.mu.Unlock()
}

// Log appends a line to the logger and to the log file. Each entry is prefixed with [timestamp] using computer time.
func (l *Logger) Log(line string) {
	ts := l.now().Format("2006-01-02 15:04:05")
	stamped := "[" + ts + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	if over := len(l.lines) - l.maxLines; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
	path := l.path
	if l.echo != nil {
		_, _ = io.WriteString(l.echo, stamped+"\n")
	}
	l.mu.Unlock()

	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Logf formats according to a format specifier and logs the result.
func (l *Logger) Logf(format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...))
}

// Lines returns a copy of the stored lines, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Tail returns a copy of at most the last n lines.
func (l *Logger) Tail(n int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n > len(l.lines) {
		n = len(l.lines)
	}
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	copy(out, l.lines[len(l.lines)-n:])
	return out
}
