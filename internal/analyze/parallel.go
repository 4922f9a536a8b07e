package analyze

import (
	"context"
	"runtime"
	"sync"

	"github.com/inodb/utrfx/internal/model"
	"github.com/inodb/utrfx/internal/uorf"
)

// WorkItem holds a transcript ready for analysis.
type WorkItem struct {
	Seq        int
	Transcript model.TranscriptCoordinates
}

// WorkResult holds the uORF features of a single transcript.
type WorkResult struct {
	Seq        int
	Transcript model.TranscriptCoordinates
	Features   []uorf.Features
	Err        error
}

// ParallelAnalyze analyzes work items using a pool of workers.
// Results are sent to the returned channel in arrival order (not sequence order).
// Use OrderedCollect to consume results in sequence-number order.
// If workers is 0, runtime.NumCPU() is used.
func (a *Analyzer) ParallelAnalyze(ctx context.Context, items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for item := range items {
				var (
					features []uorf.Features
					err      = ctx.Err()
				)
				if err == nil {
					features, err = a.Analyze(ctx, item.Transcript)
				}
				results <- WorkResult{
					Seq:        item.Seq,
					Transcript: item.Transcript,
					Features:   features,
					Err:        err,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order,
// holding back results that arrive early. Blocks until the results channel
// is closed. If fn fails the remaining results are drained so workers can
// exit.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	early := make(map[int]WorkResult)
	next := 0

	for r := range results {
		early[r.Seq] = r

		for rr, ok := early[next]; ok; rr, ok = early[next] {
			delete(early, next)
			next++
			if err := fn(rr); err != nil {
				for range results {
				}
				return err
			}
		}
	}

	return nil
}
