package uorf

import (
	"fmt"
	"strings"

	"github.com/inodb/utrfx/internal/model"
)

// KozakNotComputed is the score reported when no Kozak scoring method is
// configured.
const KozakNotComputed = -1.0

// KozakScorer scores the translation initiation context of a uORF.
type KozakScorer interface {
	Name() string
	Score(seq string, u model.UORFCoordinates) (float64, error)
}

// NewKozakScorer returns the scorer registered under method.
// Known methods are "none" (or "") and "consensus".
func NewKozakScorer(method string) (KozakScorer, error) {
	switch strings.ToLower(method) {
	case "", "none":
		return noKozak{}, nil
	case "consensus":
		return ConsensusKozak{}, nil
	default:
		return nil, fmt.Errorf("unknown Kozak scoring method %q", method)
	}
}

// noKozak does not score; it always returns KozakNotComputed.
type noKozak struct{}

func (noKozak) Name() string { return "none" }

func (noKozak) Score(seq string, u model.UORFCoordinates) (float64, error) {
	if err := u.CheckWithin(len(seq)); err != nil {
		return 0, err
	}
	return KozakNotComputed, nil
}

// ConsensusKozak scores the fraction of the positions -6..-1 and +4
// (relative to the A of the start codon) that agree with the vertebrate
// consensus gccRccATGG. Positions before the start of the sequence count as
// mismatches.
type ConsensusKozak struct{}

// kozakConsensus maps an offset from the start codon to the accepted bases.
var kozakConsensus = []struct {
	offset int
	bases  string
}{
	{-6, "G"},
	{-5, "C"},
	{-4, "C"},
	{-3, "AG"},
	{-2, "C"},
	{-1, "C"},
	{+3, "G"},
}

func (ConsensusKozak) Name() string { return "consensus" }

func (ConsensusKozak) Score(seq string, u model.UORFCoordinates) (float64, error) {
	if err := u.CheckWithin(len(seq)); err != nil {
		return 0, err
	}
	matches := 0
	for _, k := range kozakConsensus {
		i := u.UORF.Start + k.offset
		if i < 0 || i >= len(seq) {
			continue
		}
		if strings.IndexByte(k.bases, upper(seq[i])) >= 0 {
			matches++
		}
	}
	return float64(matches) / float64(len(kozakConsensus)), nil
}

func upper(b byte) byte {
	if 'a' <= b && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
