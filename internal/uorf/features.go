package uorf

import (
	"fmt"

	"github.com/inodb/utrfx/internal/genome"
	"github.com/inodb/utrfx/internal/model"
)

// GCContent returns the fraction of G and C bases of the uORF.
// An empty uORF has a GC content of 0.
func GCContent(seq string, u model.UORFCoordinates) (float64, error) {
	if err := u.CheckWithin(len(seq)); err != nil {
		return 0, err
	}
	return gcFraction(seq[u.UORF.Start:u.UORF.End]), nil
}

// GCContentNBasesDownstream returns the GC fraction of the bases following
// the uORF stop codon. The window is clipped at the end of the sequence and
// the fraction is taken over the clipped window.
func GCContentNBasesDownstream(seq string, u model.UORFCoordinates, bases int) (float64, error) {
	w, err := downstreamWindow(seq, u, bases)
	if err != nil {
		return 0, err
	}
	return gcFraction(seq[w.Start:w.End]), nil
}

// UORFPlusNBasesDownstream returns the uORF sequence followed by up to
// bases nucleotides after its stop codon.
func UORFPlusNBasesDownstream(seq string, u model.UORFCoordinates, bases int) (string, error) {
	w, err := downstreamWindow(seq, u, bases)
	if err != nil {
		return "", err
	}
	return seq[u.UORF.Start:w.End], nil
}

// IntercistonicDistance returns the number of bases between the uORF stop
// codon and the end of the 5'UTR, which is where the main ORF starts.
func IntercistonicDistance(seq string, u model.UORFCoordinates) (int, error) {
	if err := u.CheckWithin(len(seq)); err != nil {
		return 0, err
	}
	return len(seq) - u.UORF.End, nil
}

func downstreamWindow(seq string, u model.UORFCoordinates, bases int) (model.Region, error) {
	if err := u.CheckWithin(len(seq)); err != nil {
		return model.Region{}, err
	}
	if bases < 0 {
		return model.Region{}, fmt.Errorf("%w: downstream bases must be non-negative, got %d", genome.ErrStructural, bases)
	}
	end := u.UORF.End + bases
	if end > len(seq) {
		end = len(seq)
	}
	return model.Region{Start: u.UORF.End, End: end}, nil
}

func gcFraction(s string) float64 {
	if len(s) == 0 {
		return 0
	}
	gc := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'G', 'C', 'g', 'c':
			gc++
		}
	}
	return float64(gc) / float64(len(s))
}

// Options controls which downstream windows Describe uses.
type Options struct {
	DownstreamBases int // window for downstream GC content
	ContextBases    int // bases appended to the uORF for indel context
}

// DefaultOptions returns the standard windows:
// 10 bases for downstream GC content and 20 bases of indel context.
func DefaultOptions() Options {
	return Options{DownstreamBases: 10, ContextBases: 20}
}

// Features holds the computed features of a single uORF.
type Features struct {
	TranscriptID          string
	Start                 int
	End                   int
	Length                int
	GCContent             float64
	GCDownstream          float64
	IntercistonicDistance int
	Kozak                 float64
	Context               string
}

// Describe computes all features of u on the 5'UTR sequence seq.
// A nil scorer leaves the Kozak score at KozakNotComputed.
func Describe(transcriptID, seq string, u model.UORFCoordinates, opts Options, scorer KozakScorer) (Features, error) {
	gc, err := GCContent(seq, u)
	if err != nil {
		return Features{}, err
	}
	down, err := GCContentNBasesDownstream(seq, u, opts.DownstreamBases)
	if err != nil {
		return Features{}, err
	}
	context, err := UORFPlusNBasesDownstream(seq, u, opts.ContextBases)
	if err != nil {
		return Features{}, err
	}
	dist, err := IntercistonicDistance(seq, u)
	if err != nil {
		return Features{}, err
	}

	kozak := KozakNotComputed
	if scorer != nil {
		if kozak, err = scorer.Score(seq, u); err != nil {
			return Features{}, fmt.Errorf("kozak %s: %w", scorer.Name(), err)
		}
	}

	return Features{
		TranscriptID:          transcriptID,
		Start:                 u.UORF.Start,
		End:                   u.UORF.End,
		Length:                u.UORF.Length(),
		GCContent:             gc,
		GCDownstream:          down,
		IntercistonicDistance: dist,
		Kozak:                 kozak,
		Context:               context,
	}, nil
}
