// Package genome provides the contig registry and the strand-aware genomic
// region model used to describe transcript 5'UTRs.
package genome

import "errors"

var (
	// ErrStructural is returned when a region cannot be constructed from the
	// given coordinates (negative values, end before start, non-numeric input).
	ErrStructural = errors.New("invalid coordinates")

	// ErrUnknownStrand is returned for strand symbols other than "+" and "-".
	ErrUnknownStrand = errors.New("unknown strand")

	// ErrUnknownContigLength is returned when negative-strand coordinates are
	// requested on a contig whose length is not known.
	ErrUnknownContigLength = errors.New("contig length unknown")
)
