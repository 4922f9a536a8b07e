package gtf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/inodb/utrfx/internal/genome"
	"github.com/inodb/utrfx/internal/model"
)

func findTranscript(t *testing.T, txs []model.TranscriptCoordinates, id string) model.TranscriptCoordinates {
	t.Helper()
	for _, tx := range txs {
		if tx.ID == id {
			return tx
		}
	}
	require.Failf(t, "transcript not found", "%s", id)
	return model.TranscriptCoordinates{}
}

func TestParseAttributes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[string]string
	}{
		{
			name:  "basic attributes",
			input: `gene_id "ENSG00000100266.18"; transcript_id "ENST00000432186.6"; gene_name "PACSIN2";`,
			expected: map[string]string{
				"gene_id":       "ENSG00000100266.18",
				"transcript_id": "ENST00000432186.6",
				"gene_name":     "PACSIN2",
			},
		},
		{
			name:  "with tags",
			input: `gene_id "ENSG00000133703"; tag "Ensembl_canonical"; tag "MANE_Select";`,
			expected: map[string]string{
				"gene_id": "ENSG00000133703",
				"tag":     "MANE_Select", // Last value wins
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseAttributes(tt.input)
			for key, want := range tt.expected {
				assert.Equal(t, want, result[key], "parseAttributes()[%q]", key)
			}
		})
	}
}

func TestLoader_LoadFile(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	loader := NewLoader("../../testdata/sample.gtf", genome.GRCh38)
	loader.SetLogger(zap.New(core))

	txs, err := loader.Load()
	require.NoError(t, err)

	// Dropped: no start codon, unknown contig, UTR downstream of start codon.
	require.Len(t, txs, 2)
	assert.Equal(t, "ENST00000432186.6", txs[0].ID)
	assert.Equal(t, "ENST00000703965.1", txs[1].ID)

	warnings := logs.FilterMessage("contig not found, skipping transcript").All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "chrUn_KI270742v1", warnings[0].ContextMap()["contig"])
}

func TestLoader_PositiveStrand(t *testing.T) {
	txs, err := NewLoader("../../testdata/sample.gtf", genome.GRCh38).Load()
	require.NoError(t, err)

	tx := findTranscript(t, txs, "ENST00000432186.6")
	require.Len(t, tx.FiveUTR.Regions, 2)
	one, two := tx.FiveUTR.Regions[0], tx.FiveUTR.Regions[1]

	assert.Equal(t, "22", one.Contig.Name)
	assert.Equal(t, 44668712, one.Start)
	assert.Equal(t, 44668805, one.End)
	assert.Equal(t, genome.Positive, one.Strand)

	assert.Equal(t, "22", two.Contig.Name)
	assert.Equal(t, 44702491, two.Start)
	assert.Equal(t, 44702501, two.End)
	assert.Equal(t, genome.Positive, two.Strand)

	assert.Equal(t, 93+10, tx.FiveUTR.Length())
}

func TestLoader_NegativeStrand(t *testing.T) {
	txs, err := NewLoader("../../testdata/sample.gtf", genome.GRCh38).Load()
	require.NoError(t, err)

	tx := findTranscript(t, txs, "ENST00000703965.1")
	require.Len(t, tx.FiveUTR.Regions, 2)

	// Coordinates stay positive-strand; order is 5' to 3' on the minus strand.
	four, three := tx.FiveUTR.Regions[0], tx.FiveUTR.Regions[1]

	assert.Equal(t, "22", three.Contig.Name)
	assert.Equal(t, 26837999, three.Start)
	assert.Equal(t, 26838057, three.End)
	assert.Equal(t, genome.Negative, three.Strand)

	assert.Equal(t, "22", four.Contig.Name)
	assert.Equal(t, 26841401, four.Start)
	assert.Equal(t, 26841576, four.End)
	assert.Equal(t, genome.Negative, four.Strand)

	assert.Equal(t, 58+175, tx.FiveUTR.Length())
}

func TestLoader_LoadContig(t *testing.T) {
	loader := NewLoader("../../testdata/sample.gtf", genome.GRCh38)

	txs, err := loader.LoadContig("chr22")
	require.NoError(t, err)
	assert.Len(t, txs, 2)

	txs, err = loader.LoadContig("1")
	require.NoError(t, err)
	assert.Empty(t, txs)

	_, err = loader.LoadContig("chrUn")
	assert.Error(t, err)
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader("../../testdata/does_not_exist.gtf", genome.GRCh38).Load()
	assert.Error(t, err)
}

func TestParseGTF_UnknownStrand(t *testing.T) {
	gtf := `chr1	HAVANA	UTR	100	200	.	.	.	transcript_id "ENST1";
chr1	HAVANA	start_codon	201	203	.	+	0	transcript_id "ENST1";
`
	_, err := NewLoader("", genome.GRCh38).parseGTF(strings.NewReader(gtf), "")
	assert.ErrorIs(t, err, genome.ErrUnknownStrand)
}

func TestParseGTF_Malformed(t *testing.T) {
	tests := []struct {
		name string
		gtf  string
	}{
		{"non-numeric start", "chr1\tHAVANA\tUTR\tabc\t200\t.\t+\t.\ttranscript_id \"ENST1\";\n"},
		{"end before start", "chr1\tHAVANA\tUTR\t300\t200\t.\t+\t.\ttranscript_id \"ENST1\";\nchr1\tHAVANA\tstart_codon\t400\t402\t.\t+\t0\ttranscript_id \"ENST1\";\n"},
		{"too few fields", "chr1\tHAVANA\tUTR\t100\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader("", genome.GRCh38).parseGTF(strings.NewReader(tt.gtf), "")
			assert.ErrorIs(t, err, genome.ErrStructural)
		})
	}
}

func TestParseGTF_IgnoresOtherFeatures(t *testing.T) {
	gtf := `chr1	HAVANA	exon	abc	def	.	?	.	transcript_id "ENST1";
chr1	HAVANA	UTR	100	200	.	+	.	transcript_id "ENST1";
chr1	HAVANA	start_codon	201	203	.	+	0	transcript_id "ENST1";
chr1	HAVANA	UTR	300	400	.	+	.	gene_id "ENSG1";
`
	txs, err := NewLoader("", genome.GRCh38).parseGTF(strings.NewReader(gtf), "")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, 101, txs[0].FiveUTR.Length())
}

func TestParseGTF_SplitStartCodon(t *testing.T) {
	gtf := `chr1	HAVANA	UTR	100	200	.	+	.	transcript_id "ENST1";
chr1	HAVANA	start_codon	201	202	.	+	0	transcript_id "ENST1";
chr1	HAVANA	start_codon	301	301	.	+	1	transcript_id "ENST1";
chr1	HAVANA	UTR	250	300	.	+	.	transcript_id "ENST1";
`
	txs, err := NewLoader("", genome.GRCh38).parseGTF(strings.NewReader(gtf), "")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	require.Len(t, txs[0].FiveUTR.Regions, 1)
	assert.Equal(t, 99, txs[0].FiveUTR.Regions[0].Start)
}

func TestParseGTF_NegativeStrandOrder(t *testing.T) {
	gtf := `chr1	HAVANA	UTR	150	200	.	-	.	transcript_id "ENST2";
chr1	HAVANA	UTR	300	350	.	-	.	transcript_id "ENST2";
chr1	HAVANA	start_codon	201	201	.	-	1	transcript_id "ENST2";
chr1	HAVANA	start_codon	298	299	.	-	0	transcript_id "ENST2";
chr1	HAVANA	UTR	400	500	.	-	.	transcript_id "ENST2";
`
	txs, err := NewLoader("", genome.GRCh38).parseGTF(strings.NewReader(gtf), "")
	require.NoError(t, err)
	require.Len(t, txs, 1)

	regions := txs[0].FiveUTR.Regions
	require.Len(t, regions, 2)
	assert.Equal(t, 399, regions[0].Start)
	assert.Equal(t, 500, regions[0].End)
	assert.Equal(t, 299, regions[1].Start)
	assert.Equal(t, 350, regions[1].End)
	for _, r := range regions {
		assert.Equal(t, genome.Negative, r.Strand)
	}
}

func TestFilterOverlapping(t *testing.T) {
	txs, err := NewLoader("../../testdata/sample.gtf", genome.GRCh38).Load()
	require.NoError(t, err)

	q, err := genome.FromOneBased(genome.GRCh38.ContigByName("22"), 26841000, 26841500, genome.Positive)
	require.NoError(t, err)

	got, err := FilterOverlapping(txs, q)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ENST00000703965.1", got[0].ID)

	q, err = genome.FromOneBased(genome.GRCh38.ContigByName("22"), 1, 1000, genome.Positive)
	require.NoError(t, err)
	got, err = FilterOverlapping(txs, q)
	require.NoError(t, err)
	assert.Empty(t, got)
}
