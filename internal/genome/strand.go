package genome

import "fmt"

// Strand is the biological strand of a region.
type Strand int8

const (
	Positive Strand = 1
	Negative Strand = -1
)

// ParseStrand converts a GTF strand symbol to a Strand.
func ParseStrand(s string) (Strand, error) {
	switch s {
	case "+":
		return Positive, nil
	case "-":
		return Negative, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrand, s)
	}
}

// Opposite returns the other strand.
func (s Strand) Opposite() Strand {
	if s == Negative {
		return Positive
	}
	return Negative
}

// String returns "+" or "-".
func (s Strand) String() string {
	if s == Negative {
		return "-"
	}
	return "+"
}
