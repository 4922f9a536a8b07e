package analyze

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/inodb/utrfx/internal/fasta"
	"github.com/inodb/utrfx/internal/genome"
	"github.com/inodb/utrfx/internal/model"
	"github.com/inodb/utrfx/internal/output"
	"github.com/inodb/utrfx/internal/uorf"
)

// mapSequences serves transcript sequences from a map.
type mapSequences map[string]string

func (m mapSequences) Sequence(_ context.Context, id string) (string, error) {
	if s, ok := m[id]; ok {
		return s, nil
	}
	return "", fmt.Errorf("%w: %s", fasta.ErrSequenceNotFound, id)
}

var _ output.FeatureWriter = (*collectWriter)(nil)

// collectWriter records written features.
type collectWriter struct {
	header   bool
	features []uorf.Features
	flushed  bool
	failOn   int
}

func (w *collectWriter) WriteHeader() error {
	w.header = true
	return nil
}

func (w *collectWriter) Write(f uorf.Features) error {
	if w.failOn > 0 && len(w.features)+1 == w.failOn {
		return errors.New("disk full")
	}
	w.features = append(w.features, f)
	return nil
}

func (w *collectWriter) Flush() error {
	w.flushed = true
	return nil
}

func testTranscript(t *testing.T, id string, length int) model.TranscriptCoordinates {
	t.Helper()
	c := genome.GRCh38.ContigByName("1")
	r, err := genome.NewGenomicRegion(c, 1000, 1000+length, genome.Positive)
	require.NoError(t, err)
	tx, err := model.NewTranscriptCoordinates(id, model.NewFiveUTRCoordinates([]genome.GenomicRegion{r}))
	require.NoError(t, err)
	return tx
}

func fixtureTranscript(t *testing.T) model.TranscriptCoordinates {
	t.Helper()
	r, err := genome.NewGenomicRegion(genome.GRCh38.ContigByName("8"), 22114419, 22115043, genome.Negative)
	require.NoError(t, err)
	tx, err := model.NewTranscriptCoordinates("ENST00000381418.9", model.NewFiveUTRCoordinates([]genome.GenomicRegion{r}))
	require.NoError(t, err)
	return tx
}

func TestAnalyzer_Analyze_Fixture(t *testing.T) {
	loader := fasta.NewLoader("../../testdata/ENST00000381418.fa")
	require.NoError(t, loader.Load())

	a := NewAnalyzer(TranscriptSource{Sequences: loader})
	a.SetKozakScorer(uorf.ConsensusKozak{})

	features, err := a.Analyze(context.Background(), fixtureTranscript(t))
	require.NoError(t, err)
	require.Len(t, features, 3)

	expected := []struct {
		start, end, dist int
	}{
		{16, 67, 557},
		{302, 407, 217},
		{510, 576, 48},
	}
	for i, e := range expected {
		f := features[i]
		assert.Equal(t, "ENST00000381418.9", f.TranscriptID)
		assert.Equal(t, e.start, f.Start)
		assert.Equal(t, e.end, f.End)
		assert.Equal(t, e.end-e.start, f.Length)
		assert.Equal(t, e.dist, f.IntercistonicDistance)
		assert.Len(t, f.Context, f.Length+20)
	}
	assert.InDelta(t, 32.0/51.0, features[0].GCContent, 1e-9)
	assert.InDelta(t, 0.7, features[2].GCDownstream, 1e-9)
	assert.InDelta(t, 4.0/7.0, features[2].Kozak, 1e-9)
}

func TestAnalyzer_Analyze_Options(t *testing.T) {
	src := TranscriptSource{Sequences: mapSequences{"T1": "ccATGTGAgggcccATGcc"}}
	a := NewAnalyzer(src)
	a.SetOptions(uorf.Options{DownstreamBases: 3, ContextBases: 2})

	features, err := a.Analyze(context.Background(), testTranscript(t, "T1", 12))
	require.NoError(t, err)
	require.Len(t, features, 1)

	f := features[0]
	assert.Equal(t, 2, f.Start)
	assert.Equal(t, 8, f.End)
	assert.Equal(t, "ATGTGAGG", f.Context)
	assert.InDelta(t, 1.0, f.GCDownstream, 1e-9)
	assert.Equal(t, 4, f.IntercistonicDistance)
	assert.Equal(t, uorf.KozakNotComputed, f.Kozak)
}

func TestAnalyzer_Analyze_MissingSequence(t *testing.T) {
	a := NewAnalyzer(TranscriptSource{Sequences: mapSequences{}})
	_, err := a.Analyze(context.Background(), testTranscript(t, "T1", 10))
	assert.ErrorIs(t, err, fasta.ErrSequenceNotFound)
}

func TestAnalyzer_GenomeSource(t *testing.T) {
	c := &genome.Contig{Name: "t1", UCSCName: "chrT1", Length: 24}
	g := fasta.NewMemoryGenome()
	// The negative strand reads CCCATGAAACCCTGAGGGAAAAAA.
	g.Add(c, "TTTTTTCCCTCAGGGTTTCATGGG")

	neg, err := genome.NewGenomicRegion(c, 0, 24, genome.Negative)
	require.NoError(t, err)
	tx, err := model.NewTranscriptCoordinates("T1", model.NewFiveUTRCoordinates([]genome.GenomicRegion{neg}))
	require.NoError(t, err)

	a := NewAnalyzer(GenomeSource{Genome: g})
	features, err := a.Analyze(context.Background(), tx)
	require.NoError(t, err)
	require.Len(t, features, 1)
	assert.Equal(t, 3, features[0].Start)
	assert.Equal(t, 15, features[0].End)
}

func TestAnalyzer_AnalyzeAll(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	src := TranscriptSource{Sequences: mapSequences{
		"T1": "ATGTAA",
		"T3": "GGATGCCCTAGATGAAATGA",
	}}
	a := NewAnalyzer(src)
	a.SetLogger(zap.New(core))

	txs := []model.TranscriptCoordinates{
		testTranscript(t, "T1", 6),
		testTranscript(t, "T2", 6),
		testTranscript(t, "T3", 20),
	}

	w := &collectWriter{}
	summary, err := a.AnalyzeAll(context.Background(), txs, w, 4)
	require.NoError(t, err)

	assert.Equal(t, Summary{Transcripts: 3, Failed: 1, UORFs: 3}, summary)
	assert.True(t, w.header)
	assert.True(t, w.flushed)

	var got []string
	for _, f := range w.features {
		got = append(got, fmt.Sprintf("%s:%d-%d", f.TranscriptID, f.Start, f.End))
	}
	assert.Equal(t, []string{"T1:0-6", "T3:2-11", "T3:11-20"}, got)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "failed to analyze transcript", entry.Message)
	assert.Equal(t, "T2", entry.ContextMap()["transcript_id"])
}

func TestAnalyzer_AnalyzeAll_OutputWriters(t *testing.T) {
	a := NewAnalyzer(TranscriptSource{Sequences: mapSequences{"T1": "ATGTAA"}})

	var buf bytes.Buffer
	w := &collectWriter{}
	summary, err := a.AnalyzeAll(context.Background(),
		[]model.TranscriptCoordinates{testTranscript(t, "T1", 6)},
		output.NewMultiWriter(output.NewTabWriter(&buf), w), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.UORFs)
	assert.True(t, w.flushed)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "T1\t0\t6\t"))
}

func TestAnalyzer_AnalyzeAll_WriterError(t *testing.T) {
	seqs := mapSequences{}
	var txs []model.TranscriptCoordinates
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("T%d", i)
		seqs[id] = "ATGTAA"
		txs = append(txs, testTranscript(t, id, 6))
	}

	a := NewAnalyzer(TranscriptSource{Sequences: seqs})
	w := &collectWriter{failOn: 5}
	_, err := a.AnalyzeAll(context.Background(), txs, w, 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.False(t, w.flushed)
}

func TestAnalyzer_AnalyzeAll_Cancelled(t *testing.T) {
	a := NewAnalyzer(TranscriptSource{Sequences: mapSequences{"T1": "ATGTAA"}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.AnalyzeAll(ctx, []model.TranscriptCoordinates{testTranscript(t, "T1", 6)}, &collectWriter{}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
