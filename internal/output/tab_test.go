package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/utrfx/internal/uorf"
)

func sampleFeatures() uorf.Features {
	return uorf.Features{
		TranscriptID:          "ENST00000381418.9",
		Start:                 510,
		End:                   576,
		Length:                66,
		GCContent:             54.0 / 66.0,
		GCDownstream:          0.7,
		IntercistonicDistance: 48,
		Kozak:                 uorf.KozakNotComputed,
		Context:               "ATGCCCTGA",
	}
}

func TestTabWriter_WriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Flush())

	assert.Equal(t,
		"transcript_id\tuorf_start\tuorf_end\tlength\tgc_content\tgc_downstream\tintercistonic_distance\tkozak\tcontext\n",
		buf.String())
}

func TestTabWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf)

	require.NoError(t, w.Write(sampleFeatures()))

	// Nothing is written until Flush.
	assert.Empty(t, buf.String())
	require.NoError(t, w.Flush())

	fields := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\t")
	require.Len(t, fields, len(Columns))
	assert.Equal(t, "ENST00000381418.9", fields[0])
	assert.Equal(t, "510", fields[1])
	assert.Equal(t, "576", fields[2])
	assert.Equal(t, "66", fields[3])
	assert.Equal(t, "0.818182", fields[4])
	assert.Equal(t, "0.700000", fields[5])
	assert.Equal(t, "48", fields[6])
	assert.Equal(t, "-", fields[7])
	assert.Equal(t, "ATGCCCTGA", fields[8])
}

func TestTabWriter_WriteKozak(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf)

	f := sampleFeatures()
	f.Kozak = 4.0 / 7.0
	require.NoError(t, w.Write(f))
	require.NoError(t, w.Flush())

	fields := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\t")
	assert.Equal(t, "0.571429", fields[7])
}

type failWriter struct{ FeatureWriter }

func (failWriter) Write(uorf.Features) error { return errors.New("broken pipe") }

func TestMultiWriter(t *testing.T) {
	var a, b bytes.Buffer
	m := NewMultiWriter(NewTabWriter(&a), NewTabWriter(&b))

	require.NoError(t, m.WriteHeader())
	require.NoError(t, m.Write(sampleFeatures()))
	require.NoError(t, m.Flush())

	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, 2, strings.Count(a.String(), "\n"))

	m = NewMultiWriter(NewTabWriter(&a), failWriter{})
	assert.EqualError(t, m.Write(sampleFeatures()), "broken pipe")
}
