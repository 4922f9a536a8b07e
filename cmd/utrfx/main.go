// Package main provides the utrfx command-line tool.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		verbose bool
	)

	root := &cobra.Command{
		Use:   "utrfx",
		Short: "Extract upstream open reading frames from 5'UTRs",
		Long: `utrfx finds upstream open reading frames (uORFs) in the 5'UTRs of
transcripts and computes their sequence features.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cfgFile)
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.utrfx.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	newLogger := func() (*zap.Logger, error) {
		if verbose {
			return zap.NewDevelopment()
		}
		return zap.NewProduction()
	}

	root.AddCommand(newExtractCmd(newLogger))
	root.AddCommand(newScanCmd())
	root.AddCommand(newDownloadCmd())
	root.AddCommand(newFetchCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// initConfig loads ~/.utrfx.yaml (or cfgFile) and UTRFX_* environment
// variables on top of the defaults.
func initConfig(cfgFile string) error {
	viper.SetDefault("assembly", "GRCh38")
	viper.SetDefault("workers", 0)
	viper.SetDefault("features.downstream_bases", 10)
	viper.SetDefault("features.context_bases", 20)
	viper.SetDefault("kozak.method", "none")
	viper.SetDefault("ensembl.base_url", "")

	viper.SetEnvPrefix("UTRFX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil // no home directory, run on defaults
		}
		viper.SetConfigFile(filepath.Join(home, ".utrfx.yaml"))
	}

	if err := viper.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", viper.ConfigFileUsed(), err)
	}
	return nil
}

// bindFlags binds config keys to the flags of the running command. Binding
// happens at run time because several commands share the same keys.
func bindFlags(fs *pflag.FlagSet, keys map[string]string) error {
	for key, flag := range keys {
		if err := viper.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag --%s: %w", flag, err)
		}
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "utrfx version %s (%s) built %s\n", version, commit, date)
		},
	}
}
