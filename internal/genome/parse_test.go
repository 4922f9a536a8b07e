package genome

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegionString(t *testing.T) {
	tests := []struct {
		in         string
		contig     string
		start, end int
	}{
		{"chr8:22114419-22115043", "8", 22114418, 22115043},
		{"8:1-10", "8", 0, 10},
		{"chrX:1,000-2,000", "X", 999, 2000},
		{"NC_000012.12:100-100", "12", 99, 100},
		{"chrM", "MT", 0, 16569},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, err := ParseRegionString(GRCh38, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.contig, r.Contig.Name)
			assert.Equal(t, tt.start, r.Start)
			assert.Equal(t, tt.end, r.End)
			assert.Equal(t, Positive, r.Strand)
		})
	}
}

func TestParseRegionString_Errors(t *testing.T) {
	for _, in := range []string{
		"chrUn_KI270742v1:1-10",
		"chr8:100",
		"chr8:a-10",
		"chr8:1-b",
		"chr8:0-10",
		"chr8:20-10",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseRegionString(GRCh38, in)
			assert.ErrorIs(t, err, ErrStructural)
		})
	}
}
