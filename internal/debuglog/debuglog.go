// Package debuglog provides the file-backed debug log used across cellgrid.
//
// The terminal owns stdout while the UI runs, so diagnostics go to a file
// instead (by default .cellgrid/logs/debug.log). A nil or disabled logger is
// a no-op.
package debuglog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	defaultLogger   *DebugLogger
	defaultLoggerMu sync.RWMutex
)

// SetDefault installs the logger used by Printf. Passing nil disables it.
func SetDefault(l *DebugLogger) {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	defaultLogger = l
}

// Printf writes to the default logger, if one is installed.
func Printf(format string, args ...interface{}) {
	defaultLoggerMu.RLock()
	l := defaultLogger
	defaultLoggerMu.RUnlock()

	if l != nil {
		l.Log(format, args...)
	}
}

// DebugLogger writes timestamped lines to a file.
type DebugLogger struct {
	mu sync.Mutex
	w  io.Writer
	f  *os.File
}

// New creates a logger appending to path. An empty path yields a no-op
// logger. Parent directories are created as needed.
func New(path string) (*DebugLogger, error) {
	if path == "" {
		return &DebugLogger{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	l := &DebugLogger{w: f, f: f}
	l.Log("=== cellgrid debug log started at %s ===", time.Now().Format(time.RFC3339))
	return l, nil
}

// NewWriter creates a logger writing to w.
func NewWriter(w io.Writer) *DebugLogger {
	return &DebugLogger{w: w}
}

// DefaultPath returns the log location under dir.
func DefaultPath(dir string) string {
	return filepath.Join(dir, ".cellgrid", "logs", "debug.log")
}

// Nop returns a logger that discards everything.
func Nop() *DebugLogger {
	return &DebugLogger{}
}

// Log writes one timestamped line.
func (l *DebugLogger) Log(format string, args ...interface{}) {
	if l == nil || l.w == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.w, "[%s] %s\n", time.Now().Format("15:04:05.000"), msg)
	if l.f != nil {
		l.f.Sync()
	}
}

// Close closes the underlying file, if any.
func (l *DebugLogger) Close() error {
	if l == nil || l.f == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}
