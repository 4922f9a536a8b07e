package output

import (
	"github.com/inodb/utrfx/internal/uorf"
)

// FeatureWriter is implemented by every output format.
type FeatureWriter interface {
	WriteHeader() error
	Write(f uorf.Features) error
	Flush() error
}

// MultiWriter fans features out to several writers, e.g. a TSV file and a
// DuckDB store. The first error stops the fan-out.
type MultiWriter struct {
	writers []FeatureWriter
}

// NewMultiWriter creates a writer that duplicates its writes to all writers.
func NewMultiWriter(writers ...FeatureWriter) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteHeader writes the header of every writer.
func (m *MultiWriter) WriteHeader() error {
	for _, w := range m.writers {
		if err := w.WriteHeader(); err != nil {
			return err
		}
	}
	return nil
}

// Write writes f to every writer.
func (m *MultiWriter) Write(f uorf.Features) error {
	for _, w := range m.writers {
		if err := w.Write(f); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes every writer.
func (m *MultiWriter) Flush() error {
	for _, w := range m.writers {
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}
