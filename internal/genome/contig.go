package genome

import (
	"fmt"
	"strings"
)

// Contig is a named reference sequence of a genome build.
// Contigs are created once per build and shared read-only by every region
// that references them.
type Contig struct {
	Name       string // Ensembl-style name (e.g., "22")
	UCSCName   string // UCSC-style name (e.g., "chr22")
	RefSeqName string // RefSeq accession (e.g., "NC_000022.11"), may be empty
	Length     int    // Length in bases, 0 if unknown
}

// Names returns all aliases the contig can be looked up by.
func (c *Contig) Names() []string {
	names := []string{c.Name}
	if c.UCSCName != "" {
		names = append(names, c.UCSCName)
	}
	if c.RefSeqName != "" {
		names = append(names, c.RefSeqName)
	}
	return names
}

func (c *Contig) String() string {
	return c.UCSCName
}

// GenomeBuild is an immutable catalog of contigs.
type GenomeBuild struct {
	name    string
	contigs []*Contig
	byName  map[string]*Contig
}

// NewGenomeBuild creates a build from its contigs, indexing every alias.
func NewGenomeBuild(name string, contigs []*Contig) *GenomeBuild {
	b := &GenomeBuild{
		name:    name,
		contigs: contigs,
		byName:  make(map[string]*Contig, 3*len(contigs)),
	}
	for _, c := range contigs {
		for _, alias := range c.Names() {
			b.byName[alias] = c
		}
	}
	return b
}

// Name returns the build name (e.g., "GRCh38").
func (b *GenomeBuild) Name() string {
	return b.name
}

// Contigs returns the contigs in karyotypic order.
func (b *GenomeBuild) Contigs() []*Contig {
	return b.contigs
}

// ContigByName resolves a contig by any of its aliases.
// Returns nil if the name is unknown so that callers can skip the record.
func (b *GenomeBuild) ContigByName(name string) *Contig {
	if c, ok := b.byName[name]; ok {
		return c
	}
	// "chrMT" style names are not standard UCSC but do occur in the wild.
	if strings.HasPrefix(name, "chr") {
		return b.byName[name[3:]]
	}
	return nil
}

// BuildByName returns GRCh37 or GRCh38 (case-insensitive).
func BuildByName(name string) (*GenomeBuild, error) {
	switch strings.ToUpper(name) {
	case "GRCH38", "HG38":
		return GRCh38, nil
	case "GRCH37", "HG19":
		return GRCh37, nil
	default:
		return nil, fmt.Errorf("unknown genome build %q", name)
	}
}
