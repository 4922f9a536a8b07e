package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/utrfx/internal/analyze"
	"github.com/inodb/utrfx/internal/duckdb"
	"github.com/inodb/utrfx/internal/ensembl"
	"github.com/inodb/utrfx/internal/fasta"
	"github.com/inodb/utrfx/internal/genome"
	"github.com/inodb/utrfx/internal/gtf"
	"github.com/inodb/utrfx/internal/model"
	"github.com/inodb/utrfx/internal/output"
	"github.com/inodb/utrfx/internal/uorf"
)

type extractOptions struct {
	gtfPath     string
	fastaPath   string
	genomePath  string
	useEnsembl  bool
	region      string
	transcripts []string
	outputFile  string
	duckdbPath  string
}

func newExtractCmd(newLogger func() (*zap.Logger, error)) *cobra.Command {
	var opts extractOptions

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract uORF features for transcripts in a GTF file",
		Long: `Read transcript 5'UTRs from a GTF file, find their uORFs and write one
row of features per uORF. Sequences come from a transcript FASTA (--fasta),
a genome FASTA (--genome) or the Ensembl REST API (--ensembl).`,
		Example: `  utrfx extract --gtf gencode.v46.annotation.gtf.gz --fasta gencode.v46.pc_transcripts.fa.gz
  utrfx extract --gtf genes.gtf --ensembl --region chr8:22100000-22200000 -o uorfs.tsv
  utrfx extract --gtf genes.gtf --genome GRCh38.fa --duckdb uorfs.duckdb --kozak consensus`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(cmd.Flags(), map[string]string{
				"assembly":                  "assembly",
				"workers":                   "workers",
				"features.downstream_bases": "downstream-bases",
				"features.context_bases":    "context-bases",
				"kozak.method":              "kozak",
			}); err != nil {
				return err
			}

			logger, err := newLogger()
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			return runExtract(cmd.Context(), cmd.OutOrStdout(), logger, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.gtfPath, "gtf", "", "GTF annotation file (.gtf or .gtf.gz)")
	f.StringVar(&opts.fastaPath, "fasta", "", "Transcript cDNA FASTA file")
	f.StringVar(&opts.genomePath, "genome", "", "Genome FASTA file, held in memory")
	f.BoolVar(&opts.useEnsembl, "ensembl", false, "Fetch transcript sequences from the Ensembl REST API")
	f.StringVar(&opts.region, "region", "", "Only transcripts whose 5'UTR overlaps this region (e.g. chr8:22114419-22115043)")
	f.StringSliceVar(&opts.transcripts, "transcript", nil, "Only these transcript IDs (repeatable)")
	f.StringVarP(&opts.outputFile, "output", "o", "", "Output file (default: stdout)")
	f.StringVar(&opts.duckdbPath, "duckdb", "", "Also store features in this DuckDB database")
	f.String("assembly", "GRCh38", "Genome assembly: GRCh37 or GRCh38")
	f.Int("workers", 0, "Number of workers (default: number of CPUs)")
	f.Int("downstream-bases", 10, "Window for downstream GC content")
	f.Int("context-bases", 20, "Bases appended to each uORF in the context column")
	f.String("kozak", "none", "Kozak scoring method: none or consensus")
	_ = cmd.MarkFlagRequired("gtf")
	cmd.MarkFlagsMutuallyExclusive("fasta", "genome", "ensembl")
	cmd.MarkFlagsOneRequired("fasta", "genome", "ensembl")

	return cmd
}

func runExtract(ctx context.Context, stdout io.Writer, logger *zap.Logger, opts extractOptions) error {
	build, err := genome.BuildByName(viper.GetString("assembly"))
	if err != nil {
		return err
	}

	txs, err := loadTranscripts(build, logger, opts)
	if err != nil {
		return err
	}
	logger.Info("loaded transcripts",
		zap.String("gtf", opts.gtfPath),
		zap.String("assembly", build.Name()),
		zap.Int("count", len(txs)))

	source, sourceName, err := newFiveUTRSource(build, opts)
	if err != nil {
		return err
	}

	featureOpts := uorf.Options{
		DownstreamBases: viper.GetInt("features.downstream_bases"),
		ContextBases:    viper.GetInt("features.context_bases"),
	}
	kozakMethod := viper.GetString("kozak.method")
	scorer, err := uorf.NewKozakScorer(kozakMethod)
	if err != nil {
		return err
	}

	a := analyze.NewAnalyzer(source)
	a.SetOptions(featureOpts)
	a.SetKozakScorer(scorer)
	a.SetLogger(logger)

	out := stdout
	if opts.outputFile != "" {
		f, err := os.Create(opts.outputFile)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	writers := []output.FeatureWriter{output.NewTabWriter(out)}

	if opts.duckdbPath != "" {
		store, err := duckdb.Open(opts.duckdbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		gtfFingerprint, err := duckdb.StatFile(opts.gtfPath)
		if err != nil {
			return fmt.Errorf("stat GTF file: %w", err)
		}

		runID := uuid.New().String()
		if err := store.RecordRun(duckdb.Run{
			ID:              runID,
			StartedAt:       time.Now(),
			Assembly:        build.Name(),
			GTF:             gtfFingerprint,
			SequenceSource:  sourceName,
			DownstreamBases: featureOpts.DownstreamBases,
			ContextBases:    featureOpts.ContextBases,
			KozakMethod:     kozakMethod,
		}); err != nil {
			return err
		}
		logger.Info("storing features", zap.String("duckdb", opts.duckdbPath), zap.String("run_id", runID))
		writers = append(writers, duckdb.NewWriter(store, runID))
	}

	summary, err := a.AnalyzeAll(ctx, txs, output.NewMultiWriter(writers...), viper.GetInt("workers"))
	if err != nil {
		return err
	}

	logger.Info("extraction complete",
		zap.Int("transcripts", summary.Transcripts),
		zap.Int("failed", summary.Failed),
		zap.Int("uorfs", summary.UORFs))
	return nil
}

// loadTranscripts reads the GTF and applies the --region and --transcript
// filters.
func loadTranscripts(build *genome.GenomeBuild, logger *zap.Logger, opts extractOptions) ([]model.TranscriptCoordinates, error) {
	loader := gtf.NewLoader(opts.gtfPath, build)
	loader.SetLogger(logger)

	var (
		txs []model.TranscriptCoordinates
		err error
	)
	if opts.region != "" {
		region, perr := genome.ParseRegionString(build, opts.region)
		if perr != nil {
			return nil, perr
		}
		if txs, err = loader.LoadContig(region.Contig.Name); err != nil {
			return nil, err
		}
		if txs, err = gtf.FilterOverlapping(txs, region); err != nil {
			return nil, err
		}
	} else if txs, err = loader.Load(); err != nil {
		return nil, err
	}

	if len(opts.transcripts) == 0 {
		return txs, nil
	}

	want := make(map[string]bool, len(opts.transcripts))
	for _, id := range opts.transcripts {
		want[stripVersion(id)] = true
	}
	var kept []model.TranscriptCoordinates
	for _, tx := range txs {
		if want[stripVersion(tx.ID)] {
			kept = append(kept, tx)
		}
	}
	return kept, nil
}

// newFiveUTRSource returns the sequence source selected by the flags and a
// name for it recorded with stored runs.
func newFiveUTRSource(build *genome.GenomeBuild, opts extractOptions) (analyze.FiveUTRSource, string, error) {
	switch {
	case opts.fastaPath != "":
		loader := fasta.NewLoader(opts.fastaPath)
		if err := loader.Load(); err != nil {
			return nil, "", err
		}
		return analyze.TranscriptSource{Sequences: loader}, opts.fastaPath, nil
	case opts.genomePath != "":
		g, err := fasta.LoadMemoryGenome(opts.genomePath, build)
		if err != nil {
			return nil, "", err
		}
		return analyze.GenomeSource{Genome: g}, opts.genomePath, nil
	case opts.useEnsembl:
		c := newEnsemblClient(build.Name())
		return analyze.TranscriptSource{Sequences: c}, c.BaseURL(), nil
	}
	return nil, "", fmt.Errorf("one of --fasta, --genome or --ensembl is required")
}

func newEnsemblClient(assembly string) *ensembl.Client {
	if u := viper.GetString("ensembl.base_url"); u != "" {
		return ensembl.NewClientWithURL(u)
	}
	return ensembl.NewClient(assembly)
}

// stripVersion removes the version suffix from an Ensembl ID.
func stripVersion(id string) string {
	if idx := strings.LastIndex(id, "."); idx != -1 {
		return id[:idx]
	}
	return id
}
