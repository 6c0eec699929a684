// Package logging provides the log sinks used by the behave command.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
)

const megabyte = 1 << 20

// RotatingFileWriter is an io.WriteCloser with size-based rotation. When a
// write would push the file past its limit, the file is renamed to <path>.1,
// existing backups shift up by one, and backups beyond the retention count
// are removed. Writes are never split across files.
//
// It is safe for concurrent use.
type RotatingFileWriter struct {
	mu      sync.Mutex
	path    string
	limit   int64
	backups int
	size    int64
	file    *os.File
	closed  bool
}

// NewRotatingFileWriter opens path for appending, creating it and its parent
// directory as needed. maxSizeMB is clamped to at least 1, and maxFiles to at
// least 0 (no backups, the file is truncated on rotation).
func NewRotatingFileWriter(path string, maxSizeMB, maxFiles int) (*RotatingFileWriter, error) {
	return newRotatingFileWriter(path, int64(max(maxSizeMB, 1))*megabyte, max(maxFiles, 0))
}

func newRotatingFileWriter(path string, limit int64, backups int) (*RotatingFileWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("logging: mkdir %s: %w", dir, err)
		}
	}
	w := &RotatingFileWriter{path: path, limit: limit, backups: backups}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *RotatingFileWriter) open() error {
	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("logging: open %s: %w", w.path, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("logging: stat %s: %w", w.path, err)
	}
	w.file = f
	w.size = info.Size()
	return nil
}

// Path returns the path of the active log file.
func (w *RotatingFileWriter) Path() string { return w.path }

// Write implements io.Writer. A single write larger than the limit still
// lands, alone, in a fresh file.
func (w *RotatingFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, os.ErrClosed
	}
	if w.size > 0 && w.size+int64(len(p)) > w.limit {
		if err := w.rotate(); err != nil {
			return 0, fmt.Errorf("logging: rotate: %w", err)
		}
	}
	n, err := w.file.Write(p)
	w.size += int64(n)
	return n, err
}

// Close closes the active file. Subsequent writes fail with os.ErrClosed.
func (w *RotatingFileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.file.Close()
}

// rotate must be called with mu held.
func (w *RotatingFileWriter) rotate() error {
	if err := w.file.Close(); err != nil {
		return err
	}

	existing := w.listBackups()
	slices.Reverse(existing)
	for _, n := range existing {
		if n >= w.backups {
			_ = os.Remove(w.backupPath(n))
		} else {
			_ = os.Rename(w.backupPath(n), w.backupPath(n+1))
		}
	}

	if w.backups > 0 {
		_ = os.Rename(w.path, w.backupPath(1))
	} else {
		_ = os.Remove(w.path)
	}
	return w.open()
}

func (w *RotatingFileWriter) backupPath(n int) string {
	return w.path + "." + strconv.Itoa(n)
}

// listBackups returns the existing backup numbers, ascending.
func (w *RotatingFileWriter) listBackups() []int {
	entries, err := os.ReadDir(filepath.Dir(w.path))
	if err != nil {
		return nil
	}
	prefix := filepath.Base(w.path) + "."
	var nums []int
	for _, e := range entries {
		suffix, ok := strings.CutPrefix(e.Name(), prefix)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(suffix); err == nil && n >= 1 {
			nums = append(nums, n)
		}
	}
	slices.Sort(nums)
	return nums
}

var _ io.WriteCloser = (*RotatingFileWriter)(nil)
