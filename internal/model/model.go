// Package model defines the coordinate types describing a transcript's 5'UTR
// and the uORFs found in its cDNA sequence.
package model

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/inodb/utrfx/internal/genome"
)

// ErrOverlap is returned when a uORF extends past the end of the 5'UTR
// sequence it is evaluated against, i.e. into the main ORF.
var ErrOverlap = errors.New("uORF overlaps the main ORF")

// Region is a 0-based, half-open interval of a nucleotide sequence.
type Region struct {
	Start int
	End   int
}

// NewRegion creates a sequence-relative region.
func NewRegion(start, end int) (Region, error) {
	if start < 0 {
		return Region{}, fmt.Errorf("%w: start must be non-negative", genome.ErrStructural)
	}
	if end < 0 {
		return Region{}, fmt.Errorf("%w: end must be non-negative", genome.ErrStructural)
	}
	if end < start {
		return Region{}, fmt.Errorf("%w: end cannot be before start", genome.ErrStructural)
	}
	return Region{Start: start, End: end}, nil
}

// ParseRegion creates a region from textual offsets.
func ParseRegion(start, end string) (Region, error) {
	s, err := strconv.Atoi(start)
	if err != nil {
		return Region{}, fmt.Errorf("%w: start is not an int: %q", genome.ErrStructural, start)
	}
	e, err := strconv.Atoi(end)
	if err != nil {
		return Region{}, fmt.Errorf("%w: end is not an int: %q", genome.ErrStructural, end)
	}
	return NewRegion(s, e)
}

// Length returns the number of bases in the region.
func (r Region) Length() int {
	return r.End - r.Start
}

func (r Region) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// FiveUTRCoordinates holds the genomic pieces of a transcript's 5'UTR in
// transcript (5' to 3') order. The concatenation of these pieces is the
// 5'UTR cDNA sequence.
type FiveUTRCoordinates struct {
	Regions []genome.GenomicRegion
}

// NewFiveUTRCoordinates creates a 5'UTR from its ordered regions.
func NewFiveUTRCoordinates(regions []genome.GenomicRegion) *FiveUTRCoordinates {
	return &FiveUTRCoordinates{Regions: regions}
}

// Length returns the total number of bases across all regions.
func (f *FiveUTRCoordinates) Length() int {
	n := 0
	for _, r := range f.Regions {
		n += r.Length()
	}
	return n
}

// Contig returns the contig of the first region, or nil if there are none.
func (f *FiveUTRCoordinates) Contig() *genome.Contig {
	if len(f.Regions) == 0 {
		return nil
	}
	return f.Regions[0].Contig
}

// Strand returns the strand of the first region. Defaults to Positive.
func (f *FiveUTRCoordinates) Strand() genome.Strand {
	if len(f.Regions) == 0 {
		return genome.Positive
	}
	return f.Regions[0].Strand
}

func (f *FiveUTRCoordinates) String() string {
	return fmt.Sprintf("FiveUTR(%d regions, %d bp)", len(f.Regions), f.Length())
}

// TranscriptCoordinates pairs a transcript identifier with its 5'UTR.
type TranscriptCoordinates struct {
	ID      string
	FiveUTR *FiveUTRCoordinates
}

// NewTranscriptCoordinates validates and creates transcript coordinates.
func NewTranscriptCoordinates(id string, fiveUTR *FiveUTRCoordinates) (TranscriptCoordinates, error) {
	if id == "" {
		return TranscriptCoordinates{}, fmt.Errorf("%w: transcript ID is required", genome.ErrStructural)
	}
	if fiveUTR == nil || len(fiveUTR.Regions) == 0 {
		return TranscriptCoordinates{}, fmt.Errorf("%w: transcript %s has no 5'UTR regions", genome.ErrStructural, id)
	}
	return TranscriptCoordinates{ID: id, FiveUTR: fiveUTR}, nil
}

// UORFCoordinates locates a uORF inside a 5'UTR cDNA sequence.
// UORF.Start is the first base of the start codon and UORF.End the base
// just past the stop codon, both relative to the 5'UTR sequence.
type UORFCoordinates struct {
	FiveUTR *FiveUTRCoordinates
	UORF    Region
}

// Equal reports whether both uORFs come from the same 5'UTR and span the
// same bases.
func (u UORFCoordinates) Equal(other UORFCoordinates) bool {
	return u.FiveUTR == other.FiveUTR && u.UORF == other.UORF
}

// CheckWithin returns ErrOverlap if the uORF does not fit in a sequence of
// length n.
func (u UORFCoordinates) CheckWithin(n int) error {
	if u.UORF.End > n {
		return fmt.Errorf("%w: uORF %s exceeds 5'UTR length %d", ErrOverlap, u.UORF, n)
	}
	return nil
}
