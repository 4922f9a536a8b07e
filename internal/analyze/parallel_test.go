package analyze

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeItems(t *testing.T, n int) (<-chan WorkItem, mapSequences) {
	t.Helper()
	seqs := mapSequences{}
	ch := make(chan WorkItem, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("ENST%011d", i)
		seqs[id] = "CCATGTGACC"
		ch <- WorkItem{Seq: i, Transcript: testTranscript(t, id, 10)}
	}
	close(ch)
	return ch, seqs
}

func TestParallelAnalyze_OrderPreservation(t *testing.T) {
	items, seqs := makeItems(t, 200)
	a := NewAnalyzer(TranscriptSource{Sequences: seqs})

	results := a.ParallelAnalyze(context.Background(), items, 8)

	var collected []int
	err := OrderedCollect(results, func(r WorkResult) error {
		require.NoError(t, r.Err)
		require.Len(t, r.Features, 1)
		assert.Equal(t, r.Transcript.ID, r.Features[0].TranscriptID)
		collected = append(collected, r.Seq)
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, collected, 200)
	for i, seq := range collected {
		assert.Equal(t, i, seq, "result %d out of order", i)
	}
}

func TestParallelAnalyze_SingleWorker(t *testing.T) {
	items, seqs := makeItems(t, 50)
	a := NewAnalyzer(TranscriptSource{Sequences: seqs})

	count := 0
	err := OrderedCollect(a.ParallelAnalyze(context.Background(), items, 1), func(r WorkResult) error {
		assert.Equal(t, count, r.Seq)
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 50, count)
}

func TestParallelAnalyze_DefaultWorkers(t *testing.T) {
	items, seqs := makeItems(t, 10)
	a := NewAnalyzer(TranscriptSource{Sequences: seqs})

	count := 0
	err := OrderedCollect(a.ParallelAnalyze(context.Background(), items, 0), func(WorkResult) error {
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 10, count)
}

func TestOrderedCollect_StopsOnError(t *testing.T) {
	items, seqs := makeItems(t, 100)
	a := NewAnalyzer(TranscriptSource{Sequences: seqs})

	seen := 0
	err := OrderedCollect(a.ParallelAnalyze(context.Background(), items, 4), func(r WorkResult) error {
		seen++
		if r.Seq == 9 {
			return fmt.Errorf("stop at %d", r.Seq)
		}
		return nil
	})
	assert.EqualError(t, err, "stop at 9")
	assert.Equal(t, 10, seen)
}

func TestOrderedCollect_Empty(t *testing.T) {
	ch := make(chan WorkResult)
	close(ch)
	called := false
	require.NoError(t, OrderedCollect(ch, func(WorkResult) error {
		called = true
		return nil
	}))
	assert.False(t, called)
}
