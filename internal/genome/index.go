package genome

import (
	"fmt"
	"sort"

	"github.com/biogo/store/interval"
)

// RegionIndex answers "which labelled regions overlap this region" queries.
// Regions are indexed by their positive-strand coordinates, one interval
// tree per contig.
// Add must not be called concurrently with Overlapping; once populated the
// index is safe for concurrent queries.
type RegionIndex struct {
	trees  map[string]*interval.IntTree
	nextID uintptr
}

type indexedRegion struct {
	start, end int
	uid        uintptr
	label      string
}

func (r indexedRegion) Overlap(b interval.IntRange) bool {
	return r.start < b.End && b.Start < r.end
}
func (r indexedRegion) ID() uintptr              { return r.uid }
func (r indexedRegion) Range() interval.IntRange { return interval.IntRange{Start: r.start, End: r.end} }

type indexQuery struct{ start, end int }

func (q indexQuery) Overlap(b interval.IntRange) bool {
	return q.start < b.End && b.Start < q.end
}

// NewRegionIndex creates an empty index.
func NewRegionIndex() *RegionIndex {
	return &RegionIndex{trees: make(map[string]*interval.IntTree)}
}

// Add indexes a region under the given label.
// Empty regions are ignored since they can never overlap anything.
func (x *RegionIndex) Add(label string, r GenomicRegion) error {
	if r.Length() == 0 {
		return nil
	}
	if r.Contig == nil {
		return fmt.Errorf("%w: contig is required", ErrStructural)
	}
	tree, ok := x.trees[r.Contig.Name]
	if !ok {
		tree = &interval.IntTree{}
		x.trees[r.Contig.Name] = tree
	}
	x.nextID++
	return tree.Insert(indexedRegion{start: r.Start, end: r.End, uid: x.nextID, label: label}, false)
}

// Len returns the number of indexed regions.
func (x *RegionIndex) Len() int {
	n := 0
	for _, t := range x.trees {
		n += t.Len()
	}
	return n
}

// Overlapping returns the sorted, de-duplicated labels of all indexed
// regions overlapping q, regardless of strand.
func (x *RegionIndex) Overlapping(q GenomicRegion) ([]string, error) {
	if q.Contig == nil {
		return nil, nil
	}
	tree, ok := x.trees[q.Contig.Name]
	if !ok {
		return nil, nil
	}
	seen := make(map[string]bool)
	var labels []string
	for _, hit := range tree.Get(indexQuery{start: q.Start, end: q.End}) {
		label := hit.(indexedRegion).label
		if !seen[label] {
			seen[label] = true
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	return labels, nil
}
