// Package fasta provides transcript and genomic sequences read from FASTA
// files.
package fasta

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// ErrSequenceNotFound is returned when no sequence is stored for an ID.
var ErrSequenceNotFound = errors.New("sequence not found")

// Loader holds transcript cDNA sequences indexed by transcript ID.
type Loader struct {
	path      string
	sequences map[string]string // transcript_id (without version) -> sequence
}

// NewLoader creates a new FASTA loader.
func NewLoader(path string) *Loader {
	return &Loader{
		path:      path,
		sequences: make(map[string]string),
	}
}

// Load parses the FASTA file and stores sequences indexed by transcript ID.
func (l *Loader) Load() error {
	f, err := os.Open(l.path)
	if err != nil {
		return fmt.Errorf("open FASTA file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f

	if strings.HasSuffix(l.path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return l.parseFASTA(reader)
}

func (l *Loader) parseFASTA(reader io.Reader) error {
	return readFASTA(reader, func(id, seq string) {
		l.sequences[parseID(id)] = seq
	})
}

// readFASTA calls fn for every record of a FASTA stream.
func readFASTA(reader io.Reader, fn func(id, seq string)) error {
	template := linear.NewSeq("", nil, alphabet.DNAredundant)
	sc := seqio.NewScanner(fasta.NewReader(reader, template))
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		fn(s.Name(), string(alphabet.LettersToBytes(s.Seq)))
	}
	if err := sc.Error(); err != nil {
		return fmt.Errorf("scan FASTA: %w", err)
	}
	return nil
}

// Record is a single FASTA entry.
type Record struct {
	Name string
	Seq  string
}

// ReadRecords returns all records of a FASTA stream in file order.
func ReadRecords(reader io.Reader) ([]Record, error) {
	var records []Record
	err := readFASTA(reader, func(name, seq string) {
		records = append(records, Record{Name: name, Seq: seq})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// parseID extracts the transcript ID from a FASTA record name.
// GENCODE names are pipe-delimited:
// ENST00000456328.2|ENSG00000290825.1|OTTHUMG00000002860.3|...
func parseID(name string) string {
	if idx := strings.Index(name, "|"); idx != -1 {
		name = name[:idx]
	}
	return stripVersion(name)
}

// stripVersion removes the version suffix from an Ensembl ID.
// e.g., "ENST00000456328.2" -> "ENST00000456328"
func stripVersion(id string) string {
	if idx := strings.LastIndex(id, "."); idx != -1 {
		return id[:idx]
	}
	return id
}

// Sequence returns the cDNA sequence of a transcript. The version suffix of
// transcriptID is ignored.
func (l *Loader) Sequence(_ context.Context, transcriptID string) (string, error) {
	if seq, ok := l.sequences[stripVersion(transcriptID)]; ok {
		return seq, nil
	}
	return "", fmt.Errorf("%w: %s", ErrSequenceNotFound, transcriptID)
}

// SequenceCount returns the number of loaded sequences.
func (l *Loader) SequenceCount() int {
	return len(l.sequences)
}

// HasSequence checks if a sequence exists for the given transcript ID.
func (l *Loader) HasSequence(transcriptID string) bool {
	_, ok := l.sequences[stripVersion(transcriptID)]
	return ok
}
