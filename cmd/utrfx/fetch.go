package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newFetchCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "fetch <transcript-id>...",
		Short: "Download transcript cDNA from Ensembl into a FASTA file",
		Example: `  utrfx fetch ENST00000381418 -o ENST00000381418.fa
  utrfx fetch --assembly GRCh37 ENST00000311936 ENST00000256078 -o kras.fa`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(cmd.Flags(), map[string]string{"assembly": "assembly"}); err != nil {
				return err
			}
			c := newEnsemblClient(viper.GetString("assembly"))

			if outputFile == "" {
				return c.WriteFASTA(cmd.Context(), args, cmd.OutOrStdout())
			}
			if err := c.Download(cmd.Context(), args, outputFile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d sequences to %s\n", len(args), outputFile)
			return nil
		},
	}

	cmd.Flags().String("assembly", "GRCh38", "Genome assembly: GRCh37 or GRCh38")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output FASTA file (default: stdout)")

	return cmd
}
