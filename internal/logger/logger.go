// Package logger keeps timestamped lines in memory for the terminal overlay
// and appends them to a log file.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogFilePath is the default log file, relative to the working directory.
const LogFilePath = "logs/demo.txt"

// DefaultMaxLines bounds the in-memory history shown by the terminal.
const DefaultMaxLines = 500

// Logger stores lines in memory and appends them to a file on disk.
// It is safe for concurrent use.
type Logger struct {
	mu       sync.Mutex
	lines    []string
	path     string
	maxLines int
	now      func() time.Time
}

// New returns a logger writing to LogFilePath.
func New() *Logger {
	return NewFile(LogFilePath)
}

// NewFile returns a logger appending to path and creates its directory.
// An empty path keeps lines in memory only.
func NewFile(path string) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{
		lines:    make([]string, 0),
		path:     path,
		maxLines: DefaultMaxLines,
		now:      time.Now,
	}
}

// Log appends a line prefixed with [timestamp] in local time. File errors are ignored;
// the line is still kept in memory.
func (l *Logger) Log(line string) {
	stamped := "[" + l.now().Format("2006-01-02 15:04:05") + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	if over := len(l.lines) - l.maxLines; l.maxLines > 0 && over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
	path := l.path
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

// Logf formats and logs a line.
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

// Tail returns at most n of the newest lines.
func (l *Logger) Tail(n int) []string {
	lines := l.Lines()
	if n >= 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
