// Package analyze finds uORFs in transcript 5'UTRs and computes their
// features.
package analyze

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/inodb/utrfx/internal/model"
	"github.com/inodb/utrfx/internal/output"
	"github.com/inodb/utrfx/internal/uorf"
)

// Analyzer scans transcripts for uORFs.
type Analyzer struct {
	source FiveUTRSource
	opts   uorf.Options
	scorer uorf.KozakScorer
	logger *zap.Logger
}

// NewAnalyzer creates an analyzer reading 5'UTR sequences from source.
func NewAnalyzer(source FiveUTRSource) *Analyzer {
	return &Analyzer{
		source: source,
		opts:   uorf.DefaultOptions(),
		logger: zap.NewNop(),
	}
}

// SetOptions sets the feature windows.
func (a *Analyzer) SetOptions(opts uorf.Options) {
	a.opts = opts
}

// SetKozakScorer sets the Kozak scorer. nil disables Kozak scoring.
func (a *Analyzer) SetKozakScorer(s uorf.KozakScorer) {
	a.scorer = s
}

// SetLogger sets the logger for warning and info messages.
func (a *Analyzer) SetLogger(l *zap.Logger) {
	a.logger = l
}

// Analyze returns the features of every uORF in the transcript's 5'UTR,
// ordered by start position.
func (a *Analyzer) Analyze(ctx context.Context, tx model.TranscriptCoordinates) ([]uorf.Features, error) {
	seq, err := a.source.FiveUTR(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("5'UTR sequence of %s: %w", tx.ID, err)
	}
	if len(seq) < tx.FiveUTR.Length() {
		a.logger.Debug("transcript shorter than its 5'UTR",
			zap.String("transcript_id", tx.ID),
			zap.Int("sequence_length", len(seq)),
			zap.Int("utr_length", tx.FiveUTR.Length()))
	}

	uorfs := uorf.Scan(seq, tx.FiveUTR)
	features := make([]uorf.Features, 0, len(uorfs))
	for _, u := range uorfs {
		f, err := uorf.Describe(tx.ID, seq, u, a.opts, a.scorer)
		if err != nil {
			return nil, fmt.Errorf("describe uORF %s of %s: %w", u.UORF, tx.ID, err)
		}
		features = append(features, f)
	}
	return features, nil
}

// Summary counts what AnalyzeAll processed.
type Summary struct {
	Transcripts int
	Failed      int
	UORFs       int
}

// AnalyzeAll analyzes all transcripts with a pool of workers and writes
// their features in input order. Transcripts that fail are logged and
// skipped. If workers is 0, runtime.NumCPU() is used.
func (a *Analyzer) AnalyzeAll(ctx context.Context, txs []model.TranscriptCoordinates, writer output.FeatureWriter, workers int) (Summary, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var summary Summary
	if err := writer.WriteHeader(); err != nil {
		return summary, fmt.Errorf("write header: %w", err)
	}

	items := make(chan WorkItem, 2*workers)
	go func() {
		defer close(items)
		for i, tx := range txs {
			select {
			case items <- WorkItem{Seq: i, Transcript: tx}:
			case <-ctx.Done():
				return
			}
		}
	}()

	results := a.ParallelAnalyze(ctx, items, workers)

	if err := OrderedCollect(results, func(r WorkResult) error {
		summary.Transcripts++
		if r.Err != nil {
			summary.Failed++
			a.logger.Warn("failed to analyze transcript",
				zap.String("transcript_id", r.Transcript.ID),
				zap.Error(r.Err))
			return nil
		}
		for _, f := range r.Features {
			if err := writer.Write(f); err != nil {
				return fmt.Errorf("write features: %w", err)
			}
			summary.UORFs++
		}
		return nil
	}); err != nil {
		return summary, err
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}

	if summary.Transcripts == 0 {
		a.logger.Info("0 transcripts processed")
	}

	return summary, writer.Flush()
}
