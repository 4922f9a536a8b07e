package gtf

import (
	"github.com/inodb/utrfx/internal/genome"
	"github.com/inodb/utrfx/internal/model"
)

// BuildIndex indexes the 5'UTR regions of the given transcripts by
// transcript ID.
func BuildIndex(transcripts []model.TranscriptCoordinates) (*genome.RegionIndex, error) {
	x := genome.NewRegionIndex()
	for _, tx := range transcripts {
		for _, r := range tx.FiveUTR.Regions {
			if err := x.Add(tx.ID, r); err != nil {
				return nil, err
			}
		}
	}
	return x, nil
}

// FilterOverlapping returns the transcripts whose 5'UTR overlaps q, in the
// order they appear in transcripts.
func FilterOverlapping(transcripts []model.TranscriptCoordinates, q genome.GenomicRegion) ([]model.TranscriptCoordinates, error) {
	x, err := BuildIndex(transcripts)
	if err != nil {
		return nil, err
	}
	ids, err := x.Overlapping(q)
	if err != nil {
		return nil, err
	}

	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}

	var out []model.TranscriptCoordinates
	for _, tx := range transcripts {
		if keep[tx.ID] {
			out = append(out, tx)
		}
	}
	return out, nil
}
