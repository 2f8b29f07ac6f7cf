package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/3leaps/s3uri/internal/config"
)

var configShowEnv bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration s3uri would run with, after merging defaults, the
config file, environment variables and flags. Credentials are masked.

Examples:
  s3uri config
  s3uri config --region eu-west-1
  s3uri config --env            # List the environment variables consulted`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVar(&configShowEnv, "env", false, "List environment variables per key instead")
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if configShowEnv {
		return writeEnvVars(out)
	}

	cfg := config.GetConfig()
	if cfg == nil {
		return exitError(exitFailure, "Configuration not loaded", fmt.Errorf("config is nil"))
	}
	return writeConfig(out, config.ConfigFileUsed(), cfg)
}

func writeConfig(w io.Writer, file string, cfg *config.Config) error {
	if file != "" {
		if _, err := fmt.Fprintf(w, "# loaded from %s\n", file); err != nil {
			return err
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg.Masked()); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

func writeEnvVars(w io.Writer) error {
	vars := config.EnvVars()
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%-18s %s\n", k, strings.Join(vars[k], ", ")); err != nil {
			return err
		}
	}
	return nil
}
