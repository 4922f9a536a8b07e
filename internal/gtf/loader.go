// Package gtf reads transcript 5'UTR coordinates from GENCODE/Ensembl GTF files.
package gtf

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/utrfx/internal/genome"
	"github.com/inodb/utrfx/internal/model"
)

// Loader builds TranscriptCoordinates from the UTR and start_codon rows of a
// GTF file.
type Loader struct {
	path   string
	build  *genome.GenomeBuild
	logger *zap.Logger
}

// NewLoader creates a loader resolving contigs against the given build.
func NewLoader(path string, build *genome.GenomeBuild) *Loader {
	return &Loader{
		path:   path,
		build:  build,
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger used for skipped transcripts.
func (l *Loader) SetLogger(logger *zap.Logger) {
	l.logger = logger
}

// Load reads all transcripts with at least one 5'UTR region.
func (l *Loader) Load() ([]model.TranscriptCoordinates, error) {
	return l.load("")
}

// LoadContig reads only transcripts on the given contig.
func (l *Loader) LoadContig(name string) ([]model.TranscriptCoordinates, error) {
	c := l.build.ContigByName(name)
	if c == nil {
		return nil, fmt.Errorf("contig %q not in %s", name, l.build.Name())
	}
	return l.load(c.Name)
}

func (l *Loader) load(filterContig string) ([]model.TranscriptCoordinates, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open GTF file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f

	if strings.HasSuffix(l.path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return l.parseGTF(reader, filterContig)
}

// gtfFeature is the subset of a GTF line needed for 5'UTR assembly.
type gtfFeature struct {
	seqname     string
	featureType string
	start       int
	end         int
	strand      string
	attributes  map[string]string
}

// transcriptRows collects the rows of one transcript in file order.
type transcriptRows struct {
	seqname     string
	utrs        []*gtfFeature
	startCodons []*gtfFeature
}

// parseGTF groups UTR and start_codon rows by transcript and keeps the UTR
// rows lying upstream of the start codon.
func (l *Loader) parseGTF(reader io.Reader, filterContig string) ([]model.TranscriptCoordinates, error) {
	scanner := bufio.NewScanner(reader)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	rows := make(map[string]*transcriptRows)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if strings.HasPrefix(line, "#") || line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 9 {
			return nil, fmt.Errorf("line %d: %w: expected 9 fields, got %d", lineNum, genome.ErrStructural, len(fields))
		}
		if fields[2] != "UTR" && fields[2] != "start_codon" {
			continue
		}

		feat, err := parseLine(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		transcriptID := feat.attributes["transcript_id"]
		if transcriptID == "" {
			continue
		}

		tr, ok := rows[transcriptID]
		if !ok {
			tr = &transcriptRows{seqname: feat.seqname}
			rows[transcriptID] = tr
		}
		if feat.featureType == "UTR" {
			tr.utrs = append(tr.utrs, feat)
		} else {
			tr.startCodons = append(tr.startCodons, feat)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan GTF: %w", err)
	}

	ids := make([]string, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var transcripts []model.TranscriptCoordinates
	for _, id := range ids {
		tr := rows[id]
		if len(tr.utrs) == 0 {
			continue
		}

		contig := l.build.ContigByName(tr.seqname)
		if contig == nil {
			l.logger.Warn("contig not found, skipping transcript",
				zap.String("transcript_id", id),
				zap.String("contig", tr.seqname),
				zap.String("build", l.build.Name()))
			continue
		}
		if filterContig != "" && contig.Name != filterContig {
			continue
		}

		regions, err := fivePrimeRegions(contig, tr)
		if err != nil {
			return nil, fmt.Errorf("transcript %s: %w", id, err)
		}
		if len(regions) == 0 {
			l.logger.Debug("no 5'UTR regions", zap.String("transcript_id", id))
			continue
		}

		tx, err := model.NewTranscriptCoordinates(id, model.NewFiveUTRCoordinates(regions))
		if err != nil {
			return nil, err
		}
		transcripts = append(transcripts, tx)
	}

	return transcripts, nil
}

// fivePrimeRegions returns the UTR regions of a transcript that lie on the
// 5' side of its start codon, ordered 5' to 3'. A transcript without a start
// codon has no 5'UTR.
func fivePrimeRegions(contig *genome.Contig, tr *transcriptRows) ([]genome.GenomicRegion, error) {
	if len(tr.startCodons) == 0 {
		return nil, nil
	}

	var startCodon genome.GenomicRegion
	for i, sc := range tr.startCodons {
		r, err := toRegion(contig, sc)
		if err != nil {
			return nil, err
		}
		// A start codon split by an intron has two rows; keep the 5'-most part.
		if i == 0 || fivePrimeOf(r, startCodon) {
			startCodon = r
		}
	}

	var regions []genome.GenomicRegion
	for _, utr := range tr.utrs {
		r, err := toRegion(contig, utr)
		if err != nil {
			return nil, err
		}
		d, err := r.DistanceTo(startCodon)
		if err != nil {
			return nil, err
		}
		if d >= 0 {
			regions = append(regions, r)
		}
	}

	sort.Slice(regions, func(i, j int) bool {
		return fivePrimeOf(regions[i], regions[j])
	})
	return regions, nil
}

// fivePrimeOf reports whether a starts 5' of b on a's strand.
func fivePrimeOf(a, b genome.GenomicRegion) bool {
	if a.Strand == genome.Negative {
		return a.End > b.End
	}
	return a.Start < b.Start
}

// toRegion converts 1-based GTF coordinates to a region read on the
// feature strand. GTF coordinates are positive-strand for both strands.
func toRegion(contig *genome.Contig, feat *gtfFeature) (genome.GenomicRegion, error) {
	strand, err := genome.ParseStrand(feat.strand)
	if err != nil {
		return genome.GenomicRegion{}, err
	}
	return genome.FromOneBased(contig, feat.start, feat.end, strand)
}

// parseLine parses the columns of a single GTF line.
func parseLine(fields []string) (*gtfFeature, error) {
	start, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, fmt.Errorf("%w: start is not an int: %q", genome.ErrStructural, fields[3])
	}

	end, err := strconv.Atoi(fields[4])
	if err != nil {
		return nil, fmt.Errorf("%w: end is not an int: %q", genome.ErrStructural, fields[4])
	}

	return &gtfFeature{
		seqname:     fields[0],
		featureType: fields[2],
		start:       start,
		end:         end,
		strand:      fields[6],
		attributes:  parseAttributes(fields[8]),
	}, nil
}

// parseAttributes parses GTF attribute column.
// Format: key "value"; key "value"; ...
func parseAttributes(attrStr string) map[string]string {
	attrs := make(map[string]string)

	for _, part := range strings.Split(attrStr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key, value, ok := strings.Cut(part, " ")
		if !ok {
			continue
		}

		attrs[key] = strings.Trim(strings.TrimSpace(value), "\"")
	}

	return attrs
}
