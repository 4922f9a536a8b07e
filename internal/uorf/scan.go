// Package uorf finds upstream open reading frames in 5'UTR sequences and
// computes their sequence features.
package uorf

import (
	"strings"

	"github.com/inodb/utrfx/internal/model"
)

const startCodon = "ATG"

// IsStopCodon returns true for TAA, TAG and TGA.
func IsStopCodon(codon string) bool {
	switch codon {
	case "TAA", "TAG", "TGA":
		return true
	}
	return false
}

// Scan returns all uORFs of a 5'UTR sequence in order of their start.
//
// Starting from the beginning of the sequence, the next ATG is located and
// its frame is walked codon by codon until a stop codon. A terminated frame
// is emitted and scanning resumes right after its stop codon. A frame that
// runs off the end of the sequence is dropped and scanning resumes one codon
// past its ATG.
//
// fiveUTR is attached to each result for provenance only.
func Scan(seq string, fiveUTR *model.FiveUTRCoordinates) []model.UORFCoordinates {
	seq = UpperASCII(seq)

	var uorfs []model.UORFCoordinates
	pos := 0
	for pos <= len(seq)-3 {
		offset := strings.Index(seq[pos:], startCodon)
		if offset == -1 {
			break
		}
		start := pos + offset

		end, ok := findStop(seq, start)
		if !ok {
			pos = start + 3
			continue
		}

		uorfs = append(uorfs, model.UORFCoordinates{
			FiveUTR: fiveUTR,
			UORF:    model.Region{Start: start, End: end},
		})
		pos = end
	}
	return uorfs
}

// findStop walks the frame opened at start and returns the index just past
// the first in-frame stop codon.
func findStop(seq string, start int) (int, bool) {
	for i := start; i+3 <= len(seq); i += 3 {
		if IsStopCodon(seq[i : i+3]) {
			return i + 3, true
		}
	}
	return 0, false
}

// FivePrimeSequence returns the first fiveUTR.Length() bases of a transcript
// cDNA sequence, upper-cased. The transcript is assumed to start at its 5'
// end; a shorter transcript is returned whole.
func FivePrimeSequence(transcriptSeq string, fiveUTR *model.FiveUTRCoordinates) string {
	n := fiveUTR.Length()
	if n > len(transcriptSeq) {
		n = len(transcriptSeq)
	}
	return UpperASCII(transcriptSeq[:n])
}

// UpperASCII upper-cases the ASCII letters of seq byte by byte. Other bytes
// are kept as they are, so offsets into the result match offsets into seq.
func UpperASCII(seq string) string {
	i := 0
	for i < len(seq) && upper(seq[i]) == seq[i] {
		i++
	}
	if i == len(seq) {
		return seq
	}
	b := []byte(seq)
	for ; i < len(b); i++ {
		b[i] = upper(b[i])
	}
	return string(b)
}
