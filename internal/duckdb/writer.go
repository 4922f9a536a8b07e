package duckdb

import (
	"github.com/inodb/utrfx/internal/uorf"
)

const defaultBatchSize = 10000

// Writer buffers features and writes them to a Store in batches under a
// single run ID. It satisfies the analyzer's FeatureWriter interface.
type Writer struct {
	store     *Store
	runID     string
	batchSize int
	buf       []uorf.Features
}

// NewWriter creates a buffered writer for a run.
func NewWriter(store *Store, runID string) *Writer {
	return &Writer{store: store, runID: runID, batchSize: defaultBatchSize}
}

// WriteHeader is a no-op; the table schema is created by Open.
func (w *Writer) WriteHeader() error {
	return nil
}

// Write buffers f and writes a batch once the buffer is full.
func (w *Writer) Write(f uorf.Features) error {
	w.buf = append(w.buf, f)
	if len(w.buf) >= w.batchSize {
		return w.Flush()
	}
	return nil
}

// Flush writes all buffered features.
func (w *Writer) Flush() error {
	if len(w.buf) == 0 {
		return nil
	}
	if err := w.store.WriteFeatures(w.runID, w.buf); err != nil {
		return err
	}
	w.buf = w.buf[:0]
	return nil
}
