package gen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Status is the outcome of writing one file.
type Status uint8

// File statuses.
const (
	StatusCreated Status = iota
	StatusUpdated
	StatusUnchanged
)

// String returns the name of the status.
func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusUpdated:
		return "updated"
	default:
		return "unchanged"
	}
}

// Written reports the outcome of one file write.
type Written struct {
	Path   string // full path on disk
	Status Status
}

// Writer writes rendered files under a target directory with
// parallel execution. Files whose content did not change are not
// rewritten.
type Writer struct {
	target  string
	workers int
	logger  zerolog.Logger

	mu      sync.Mutex
	metrics WriterMetrics
}

// WriterMetrics tracks write performance.
type WriterMetrics struct {
	FilesWritten   int
	FilesUnchanged int
	TotalBytes     int64
	WriteTime      time.Duration
}

// NewWriter creates a writer for the given target directory.
func NewWriter(target string) *Writer {
	return &Writer{
		target:  target,
		workers: runtime.GOMAXPROCS(0),
		logger:  zerolog.Nop(),
	}
}

// WithWorkers sets the number of parallel workers.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// WithLogger sets the logger.
func (w *Writer) WithLogger(l zerolog.Logger) *Writer {
	w.logger = l
	return w
}

// Metrics returns the write metrics.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// Write writes all files and returns their outcome in input order.
func (w *Writer) Write(ctx context.Context, files []*File) ([]Written, error) {
	if w.target == "" {
		return nil, NewConfigError("Target", nil, "missing target directory")
	}
	if err := os.MkdirAll(w.target, 0o755); err != nil {
		return nil, NewGenerationError("write", w.target, "create output directory", err)
	}
	start := time.Now()
	written := make([]Written, len(files))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for i, f := range files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			st, err := w.writeFile(f)
			if err != nil {
				return err
			}
			written[i] = Written{Path: filepath.Join(w.target, filepath.FromSlash(f.Path)), Status: st}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	w.mu.Lock()
	w.metrics.WriteTime += time.Since(start)
	w.mu.Unlock()
	return written, nil
}

// writeFile writes a single file.
func (w *Writer) writeFile(f *File) (Status, error) {
	p := path.Clean(f.Path)
	if path.IsAbs(p) || p == ".." || strings.HasPrefix(p, "../") {
		return 0, NewGenerationError("write", f.Path, "path escapes the target directory", nil)
	}
	fullPath := filepath.Join(w.target, filepath.FromSlash(p))
	status := StatusCreated
	switch prev, err := os.ReadFile(fullPath); {
	case err == nil && bytes.Equal(prev, f.Content):
		w.mu.Lock()
		w.metrics.FilesUnchanged++
		w.mu.Unlock()
		return StatusUnchanged, nil
	case err == nil:
		status = StatusUpdated
	case !errors.Is(err, os.ErrNotExist):
		return 0, NewGenerationError("write", fullPath, "read previous content", err)
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return 0, NewGenerationError("write", fullPath, "create directory", err)
	}
	if err := os.WriteFile(fullPath, f.Content, 0o644); err != nil {
		return 0, NewGenerationError("write", fullPath, fmt.Sprintf("write %d bytes", len(f.Content)), err)
	}
	w.logger.Debug().Str("file", fullPath).Stringer("status", status).Msg("file written")

	w.mu.Lock()
	w.metrics.FilesWritten++
	w.metrics.TotalBytes += int64(len(f.Content))
	w.mu.Unlock()
	return status, nil
}
