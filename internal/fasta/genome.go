package fasta

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"

	"github.com/inodb/utrfx/internal/genome"
)

// GenomicSequenceService returns the sequence of a genomic region, read 5'
// to 3' on the region's strand.
type GenomicSequenceService interface {
	Fetch(ctx context.Context, region genome.GenomicRegion) (string, error)
}

// MemoryGenome serves genomic sequences held entirely in memory. It is meant
// for small references and tests, not whole-genome random access.
type MemoryGenome struct {
	contigs map[string]string // contig name -> positive strand sequence
}

// NewMemoryGenome creates an empty genome.
func NewMemoryGenome() *MemoryGenome {
	return &MemoryGenome{contigs: make(map[string]string)}
}

// LoadMemoryGenome reads contig sequences from a FASTA file. Records whose
// name is not a contig of build are ignored.
func LoadMemoryGenome(path string, build *genome.GenomeBuild) (*MemoryGenome, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FASTA file: %w", err)
	}
	defer f.Close()
	return ReadMemoryGenome(f, build)
}

// ReadMemoryGenome reads contig sequences from a FASTA stream.
func ReadMemoryGenome(reader io.Reader, build *genome.GenomeBuild) (*MemoryGenome, error) {
	g := NewMemoryGenome()
	err := readFASTA(reader, func(id, seq string) {
		if c := build.ContigByName(id); c != nil {
			g.contigs[c.Name] = seq
		}
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Add stores the positive strand sequence of a contig.
func (g *MemoryGenome) Add(contig *genome.Contig, seq string) {
	g.contigs[contig.Name] = seq
}

// Fetch returns the bases of region; negative strand regions are reverse
// complemented.
func (g *MemoryGenome) Fetch(_ context.Context, region genome.GenomicRegion) (string, error) {
	if region.Contig == nil {
		return "", fmt.Errorf("%w: region has no contig", genome.ErrStructural)
	}
	contigSeq, ok := g.contigs[region.Contig.Name]
	if !ok {
		return "", fmt.Errorf("%w: contig %s", ErrSequenceNotFound, region.Contig.Name)
	}

	if region.End > len(contigSeq) {
		return "", fmt.Errorf("%w: %s extends past the end of contig %s (%d bp)",
			genome.ErrStructural, region, region.Contig.Name, len(contigSeq))
	}

	sub := contigSeq[region.Start:region.End]
	if region.Strand == genome.Positive {
		return sub, nil
	}

	s := linear.NewSeq("", alphabet.BytesToLetters([]byte(sub)), alphabet.DNAredundant)
	s.RevComp()
	return string(alphabet.LettersToBytes(s.Seq)), nil
}

// FetchAll returns the concatenated sequence of regions in the given order,
// e.g. the spliced 5'UTR of a transcript.
func FetchAll(ctx context.Context, svc GenomicSequenceService, regions []genome.GenomicRegion) (string, error) {
	var seq []byte
	for _, r := range regions {
		s, err := svc.Fetch(ctx, r)
		if err != nil {
			return "", err
		}
		seq = append(seq, s...)
	}
	return string(seq), nil
}
