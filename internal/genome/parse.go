package genome

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRegionString parses a 1-based, closed region string such as
// "chr8:22114419-22115043" or "8:22114419-22115043". A bare contig name
// selects the whole contig. The region is returned on the positive strand.
func ParseRegionString(build *GenomeBuild, s string) (GenomicRegion, error) {
	name, span, hasSpan := strings.Cut(strings.TrimSpace(s), ":")
	contig := build.ContigByName(name)
	if contig == nil {
		return GenomicRegion{}, fmt.Errorf("%w: contig %q not in %s", ErrStructural, name, build.Name())
	}
	if !hasSpan {
		return NewGenomicRegion(contig, 0, contig.Length, Positive)
	}

	startStr, endStr, ok := strings.Cut(strings.ReplaceAll(span, ",", ""), "-")
	if !ok {
		return GenomicRegion{}, fmt.Errorf("%w: region %q must look like contig:start-end", ErrStructural, s)
	}
	start, err := strconv.Atoi(startStr)
	if err != nil {
		return GenomicRegion{}, fmt.Errorf("%w: start is not an int: %q", ErrStructural, startStr)
	}
	end, err := strconv.Atoi(endStr)
	if err != nil {
		return GenomicRegion{}, fmt.Errorf("%w: end is not an int: %q", ErrStructural, endStr)
	}
	if start < 1 {
		return GenomicRegion{}, fmt.Errorf("%w: start must be at least 1", ErrStructural)
	}
	return FromOneBased(contig, start, end, Positive)
}
