package genome

import "fmt"

// GenomicRegion is a 0-based, half-open interval on a contig.
//
// Start and End are always positive-strand coordinates. Strand is the
// biological strand the region is read on; StartOnStrand and EndOnStrand
// give the coordinates as seen from that strand.
type GenomicRegion struct {
	Contig *Contig
	Start  int
	End    int
	Strand Strand
}

// NewGenomicRegion creates a region from 0-based half-open coordinates.
func NewGenomicRegion(contig *Contig, start, end int, strand Strand) (GenomicRegion, error) {
	if contig == nil {
		return GenomicRegion{}, fmt.Errorf("%w: contig is required", ErrStructural)
	}
	if start < 0 {
		return GenomicRegion{}, fmt.Errorf("%w: start must be non-negative", ErrStructural)
	}
	if end < 0 {
		return GenomicRegion{}, fmt.Errorf("%w: end must be non-negative", ErrStructural)
	}
	if end < start {
		return GenomicRegion{}, fmt.Errorf("%w: end cannot be before start", ErrStructural)
	}
	if strand != Positive && strand != Negative {
		return GenomicRegion{}, fmt.Errorf("%w: %d", ErrUnknownStrand, strand)
	}
	return GenomicRegion{Contig: contig, Start: start, End: end, Strand: strand}, nil
}

// FromOneBased creates a region from 1-based, fully closed coordinates
// such as the start and end columns of a GTF file.
func FromOneBased(contig *Contig, start, end int, strand Strand) (GenomicRegion, error) {
	return NewGenomicRegion(contig, start-1, end, strand)
}

// Length returns the number of bases in the region.
func (r GenomicRegion) Length() int {
	return r.End - r.Start
}

// WithStrand returns the same bases read on the target strand.
func (r GenomicRegion) WithStrand(target Strand) GenomicRegion {
	r.Strand = target
	return r
}

// StartOnStrand returns the start coordinate of the region as seen from the
// given strand. Negative-strand coordinates count from the contig end.
func (r GenomicRegion) StartOnStrand(s Strand) (int, error) {
	if s == Positive {
		return r.Start, nil
	}
	n, err := r.contigLength()
	if err != nil {
		return 0, err
	}
	return n - r.End, nil
}

// EndOnStrand returns the end coordinate of the region as seen from the
// given strand.
func (r GenomicRegion) EndOnStrand(s Strand) (int, error) {
	if s == Positive {
		return r.End, nil
	}
	n, err := r.contigLength()
	if err != nil {
		return 0, err
	}
	return n - r.Start, nil
}

func (r GenomicRegion) contigLength() (int, error) {
	if r.Contig == nil || r.Contig.Length <= 0 {
		return 0, fmt.Errorf("%w: cannot mirror %s", ErrUnknownContigLength, r)
	}
	return r.Contig.Length, nil
}

// SameContig reports whether both regions are on the same contig.
func (r GenomicRegion) SameContig(other GenomicRegion) bool {
	if r.Contig == nil || other.Contig == nil {
		return false
	}
	return r.Contig == other.Contig || r.Contig.Name == other.Contig.Name
}

// OverlapsWith reports whether the two regions share at least one base.
// Regions that only touch (r.End == other.Start) do not overlap. Strand does
// not matter.
func (r GenomicRegion) OverlapsWith(other GenomicRegion) bool {
	return r.SameContig(other) && r.Start < other.End && other.Start < r.End
}

// DistanceTo returns the signed distance from r to other, measured along
// r's strand. It is zero when the regions overlap, positive when other lies
// downstream of r and negative when other lies upstream. A 5'UTR region
// therefore has a non-negative distance to the start codon of its transcript.
func (r GenomicRegion) DistanceTo(other GenomicRegion) (int, error) {
	if !r.SameContig(other) {
		return 0, fmt.Errorf("%w: regions on different contigs %s and %s", ErrStructural, r.Contig, other.Contig)
	}
	if r.OverlapsWith(other) {
		return 0, nil
	}
	if r.Strand == Negative {
		if other.End <= r.Start {
			return r.Start - other.End, nil
		}
		return r.End - other.Start, nil
	}
	if r.End <= other.Start {
		return other.Start - r.End, nil
	}
	return other.End - r.Start, nil
}

func (r GenomicRegion) String() string {
	name := "?"
	if r.Contig != nil {
		name = r.Contig.Name
	}
	return fmt.Sprintf("%s:%d-%d(%s)", name, r.Start, r.End, r.Strand)
}
