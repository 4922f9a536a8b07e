package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/inodb/utrfx/internal/genome"
	"github.com/inodb/utrfx/internal/uorf"
)

// configKey is a setting that can be stored in the config file. parse
// validates a command-line value and returns it in the type written to YAML.
type configKey struct {
	usage string
	parse func(value string) (any, error)
}

var configKeys = map[string]configKey{
	"assembly":                  {"genome build for GTF contigs and Ensembl (GRCh38, GRCh37)", parseAssembly},
	"workers":                   {"transcripts analyzed in parallel, 0 for one per CPU", parseCount},
	"features.downstream_bases": {"bases after a uORF stop codon in the downstream GC window", parseCount},
	"features.context_bases":    {"bases of sequence in the context column", parseCount},
	"kozak.method":              {"Kozak context scorer (none, consensus)", parseKozak},
	"ensembl.base_url":          {"Ensembl REST server, empty for the assembly default", parseBaseURL},
}

func configKeyNames() []string {
	names := make([]string, 0, len(configKeys))
	for k := range configKeys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func configKeysHelp() string {
	var b strings.Builder
	for _, k := range configKeyNames() {
		fmt.Fprintf(&b, "  %-26s %s\n", k, configKeys[k].usage)
	}
	return b.String()
}

func lookupConfigKey(key string) (configKey, error) {
	ck, ok := configKeys[strings.ToLower(key)]
	if !ok {
		return configKey{}, fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(configKeyNames(), ", "))
	}
	return ck, nil
}

func parseAssembly(value string) (any, error) {
	build, err := genome.BuildByName(value)
	if err != nil {
		return nil, err
	}
	return build.Name(), nil
}

func parseKozak(value string) (any, error) {
	if _, err := uorf.NewKozakScorer(value); err != nil {
		return nil, err
	}
	return strings.ToLower(value), nil
}

func parseCount(value string) (any, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("%q is not an integer", value)
	}
	if n < 0 {
		return nil, fmt.Errorf("%d must not be negative", n)
	}
	return n, nil
}

func parseBaseURL(value string) (any, error) {
	if value == "" {
		return value, nil
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%q is not an http(s) URL", value)
	}
	return strings.TrimSuffix(value, "/"), nil
}

func completeConfigKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return configKeyNames(), cobra.ShellCompDirectiveNoFileComp
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage utrfx configuration",
		Long: `Show, get, or set utrfx defaults. Values are stored in ~/.utrfx.yaml
unless --config names another file, and can be overridden per run by the
matching command-line flag or a UTRFX_ environment variable
(e.g. UTRFX_KOZAK_METHOD).

Keys:
` + configKeysHelp(),
		Example: `  utrfx config                                # show effective settings
  utrfx config set kozak.method consensus      # score Kozak context by default
  utrfx config set features.context_bases 30   # widen the context column
  utrfx config set assembly GRCh37             # resolve contigs on GRCh37
  utrfx config get workers`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "set <key> <value>",
		Short:             "Validate and store a default",
		Long:              "Validate a value for one of the keys below and write it to the config file.\n\nKeys:\n" + configKeysHelp(),
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeConfigKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "get <key>",
		Short:             "Print the effective value of a key",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeConfigKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd.OutOrStdout(), args[0])
		},
	}
}

func runConfigShow(out io.Writer) error {
	settings := make(map[string]any)
	for _, k := range configKeyNames() {
		setNested(settings, k, viper.Get(k))
	}

	b, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if f := viper.ConfigFileUsed(); f != "" {
		fmt.Fprintf(out, "# %s\n", f)
	}
	fmt.Fprint(out, string(b))
	return nil
}

// setNested stores value under a dotted key such as "kozak.method".
func setNested(m map[string]any, key string, value any) {
	section, leaf, ok := strings.Cut(key, ".")
	if !ok {
		m[key] = value
		return
	}
	sub, _ := m[section].(map[string]any)
	if sub == nil {
		sub = make(map[string]any)
		m[section] = sub
	}
	sub[leaf] = value
}

func runConfigSet(out io.Writer, key, value string) error {
	ck, err := lookupConfigKey(key)
	if err != nil {
		return err
	}
	key = strings.ToLower(key)
	v, err := ck.parse(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	viper.Set(key, v)

	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgFile = filepath.Join(home, ".utrfx.yaml")
	}

	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(out, "Set %s = %v in %s\n", key, v, cfgFile)
	return nil
}

func runConfigGet(out io.Writer, key string) error {
	if _, err := lookupConfigKey(key); err != nil {
		return err
	}
	fmt.Fprintln(out, viper.Get(strings.ToLower(key)))
	return nil
}
