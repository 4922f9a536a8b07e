// Package output provides uORF feature output formatters.
package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/utrfx/internal/uorf"
)

// Columns lists the TSV columns in output order.
var Columns = []string{
	"transcript_id",
	"uorf_start",
	"uorf_end",
	"length",
	"gc_content",
	"gc_downstream",
	"intercistonic_distance",
	"kozak",
	"context",
}

// TabWriter writes uORF features in tab-delimited format.
type TabWriter struct {
	w *bufio.Writer
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(Columns, "\t") + "\n")
	return err
}

// Write writes the features of a single uORF.
func (tw *TabWriter) Write(f uorf.Features) error {
	// Kozak score is only meaningful when a scorer ran.
	kozak := "-"
	if f.Kozak != uorf.KozakNotComputed {
		kozak = formatFloat(f.Kozak)
	}

	fields := []string{
		f.TranscriptID,
		strconv.Itoa(f.Start),
		strconv.Itoa(f.End),
		strconv.Itoa(f.Length),
		formatFloat(f.GCContent),
		formatFloat(f.GCDownstream),
		strconv.Itoa(f.IntercistonicDistance),
		kozak,
		f.Context,
	}

	_, err := tw.w.WriteString(strings.Join(fields, "\t") + "\n")
	return err
}

// Flush flushes any buffered data.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
