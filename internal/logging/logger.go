// Package logging writes the line-oriented diagnostic log: one timestamped
// line per notable event, append-only, size-bounded by truncation.
package logging

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	// maxLogBytes caps the log size. When the file grows past the cap it is
	// truncated back to tailKeepBytes of the most recent content.
	maxLogBytes   = 2 << 20 // 2 MiB
	tailKeepBytes = 512 << 10

	// sizeCheckEvery bounds how often Printf stats the file.
	sizeCheckEvery = 256
)

// Logger appends timestamped lines to a single log file so users can inspect
// what the automation did (or refused to do) after the fact.
type Logger struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	writes int
}

// New opens (or creates) the log file at path, truncating oversized logs.
func New(path string) (*Logger, error) {
	l := &Logger{path: path}
	if err := l.truncateIfOversized(); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	l.file = f
	return l, nil
}

// Discard returns a logger that drops everything. Useful in tests and for
// diagnostic commands that print to stdout instead.
func Discard() *Logger {
	return &Logger{}
}

// Close releases the file handle.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Printf writes a single timestamped line to the log file.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || l.file == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	line := fmt.Sprintf(format, args...)
	line = strings.TrimRight(line, "\n")
	timestamp := time.Now().Format(time.RFC3339)
	fmt.Fprintf(l.file, "[%s] %s\n", timestamp, line)

	l.writes++
	if l.writes%sizeCheckEvery == 0 {
		l.rotateLocked()
	}
}

// rotateLocked re-truncates and reopens the file when it has outgrown the
// cap. Errors are swallowed: the log must never take the automation down.
func (l *Logger) rotateLocked() {
	info, err := l.file.Stat()
	if err != nil || info.Size() <= maxLogBytes {
		return
	}
	l.file.Close()
	if err := l.truncateIfOversized(); err == nil {
		if f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			l.file = f
			return
		}
	}
	l.file = nil
}

// truncateIfOversized rewrites the file keeping only the most recent tail,
// aligned to a line boundary.
func (l *Logger) truncateIfOversized() error {
	info, err := os.Stat(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("logging: stat log file: %w", err)
	}
	if info.Size() <= maxLogBytes {
		return nil
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("logging: read log for truncation: %w", err)
	}
	tail := data
	if len(tail) > tailKeepBytes {
		tail = tail[len(tail)-tailKeepBytes:]
	}
	if i := bytes.IndexByte(tail, '\n'); i >= 0 && i+1 < len(tail) {
		tail = tail[i+1:]
	}
	if err := os.WriteFile(l.path, tail, 0o644); err != nil {
		return fmt.Errorf("logging: truncate log: %w", err)
	}
	return nil
}
