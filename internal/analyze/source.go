package analyze

import (
	"context"

	"github.com/inodb/utrfx/internal/fasta"
	"github.com/inodb/utrfx/internal/model"
	"github.com/inodb/utrfx/internal/uorf"
)

// FiveUTRSource returns the 5'UTR cDNA sequence of a transcript.
type FiveUTRSource interface {
	FiveUTR(ctx context.Context, tx model.TranscriptCoordinates) (string, error)
}

// TranscriptSequences looks up full transcript cDNA by ID. Both
// fasta.Loader and ensembl.Client implement it.
type TranscriptSequences interface {
	Sequence(ctx context.Context, transcriptID string) (string, error)
}

// TranscriptSource slices the 5'UTR off the front of a transcript cDNA.
type TranscriptSource struct {
	Sequences TranscriptSequences
}

// FiveUTR implements FiveUTRSource.
func (s TranscriptSource) FiveUTR(ctx context.Context, tx model.TranscriptCoordinates) (string, error) {
	seq, err := s.Sequences.Sequence(ctx, tx.ID)
	if err != nil {
		return "", err
	}
	return uorf.FivePrimeSequence(seq, tx.FiveUTR), nil
}

// GenomeSource splices the 5'UTR from its genomic regions.
type GenomeSource struct {
	Genome fasta.GenomicSequenceService
}

// FiveUTR implements FiveUTRSource.
func (s GenomeSource) FiveUTR(ctx context.Context, tx model.TranscriptCoordinates) (string, error) {
	seq, err := fasta.FetchAll(ctx, s.Genome, tx.FiveUTR.Regions)
	if err != nil {
		return "", err
	}
	return uorf.UpperASCII(seq), nil
}
