package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/utrfx/internal/fasta"
	"github.com/inodb/utrfx/internal/model"
	"github.com/inodb/utrfx/internal/output"
	"github.com/inodb/utrfx/internal/uorf"
)

func newScanCmd() *cobra.Command {
	var fastaPath string

	cmd := &cobra.Command{
		Use:   "scan [sequence...]",
		Short: "Find uORFs in 5'UTR sequences",
		Long: `Scan raw 5'UTR sequences for uORFs without any annotation. Sequences
are given as arguments or as records of a FASTA file, each read 5' to 3'.`,
		Example: `  utrfx scan CCATGTGACC
  utrfx scan --fasta five_utrs.fa --kozak consensus`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(cmd.Flags(), map[string]string{
				"features.downstream_bases": "downstream-bases",
				"features.context_bases":    "context-bases",
				"kozak.method":              "kozak",
			}); err != nil {
				return err
			}

			var records []fasta.Record
			for i, s := range args {
				records = append(records, fasta.Record{Name: fmt.Sprintf("seq%d", i+1), Seq: s})
			}
			if fastaPath != "" {
				f, err := os.Open(fastaPath)
				if err != nil {
					return fmt.Errorf("open FASTA file: %w", err)
				}
				defer f.Close()
				fromFile, err := fasta.ReadRecords(f)
				if err != nil {
					return err
				}
				records = append(records, fromFile...)
			}
			if len(records) == 0 {
				return fmt.Errorf("no sequences given")
			}
			return runScan(cmd.OutOrStdout(), records)
		},
	}

	f := cmd.Flags()
	f.StringVar(&fastaPath, "fasta", "", "FASTA file of 5'UTR sequences")
	f.Int("downstream-bases", 10, "Window for downstream GC content")
	f.Int("context-bases", 20, "Bases appended to each uORF in the context column")
	f.String("kozak", "none", "Kozak scoring method: none or consensus")

	return cmd
}

func runScan(out io.Writer, records []fasta.Record) error {
	opts := uorf.Options{
		DownstreamBases: viper.GetInt("features.downstream_bases"),
		ContextBases:    viper.GetInt("features.context_bases"),
	}
	scorer, err := uorf.NewKozakScorer(viper.GetString("kozak.method"))
	if err != nil {
		return err
	}

	w := output.NewTabWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}

	// Raw sequences have no genomic coordinates.
	noCoords := model.NewFiveUTRCoordinates(nil)
	for _, r := range records {
		seq := uorf.UpperASCII(r.Seq)
		for _, u := range uorf.Scan(seq, noCoords) {
			f, err := uorf.Describe(r.Name, seq, u, opts, scorer)
			if err != nil {
				return err
			}
			if err := w.Write(f); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}
