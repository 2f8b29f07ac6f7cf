// Package cmd implements the s3uri command line.
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/3leaps/s3uri/internal/config"
	"github.com/3leaps/s3uri/internal/observability"
	"github.com/fulmenhq/gofulmen/foundry"
)

// VersionInfo describes the running build.
type VersionInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

var versionInfo = VersionInfo{
	Version:   "dev",
	Commit:    "unknown",
	BuildDate: "unknown",
}

// SetVersionInfo records build metadata injected by main.
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
	rootCmd.Version = version
}

var (
	configFile     string
	region         string
	profile        string
	endpoint       string
	forcePathStyle bool
	imdsRegion     bool
	debug          bool
	logLevel       string
)

var rootCmd = &cobra.Command{
	Use:   "s3uri [s3://bucket/prefix]",
	Short: "Browse S3 interactively and print a console URL",
	Long: `Pick a bucket, then descend through folders and objects one level at a
time with a fuzzy finder. When an object or an empty folder is chosen the
AWS console URL for it is printed to stdout.

Examples:
  s3uri                               # Choose a bucket, then browse from its root
  s3uri --bucket logs                 # Browse a known bucket
  s3uri s3://logs/2024/               # Start inside a folder
  s3uri --include '**/*.parquet'      # Only offer matching objects
  s3uri --endpoint http://localhost:9000 --force-path-style`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              runBrowse,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Config file (default $XDG_CONFIG_HOME/s3uri/config.yaml)")
	pf.StringVarP(&region, "region", "r", "", "AWS region")
	pf.StringVarP(&profile, "profile", "p", "", "AWS profile")
	pf.StringVar(&endpoint, "endpoint", "", "Custom S3 endpoint")
	pf.BoolVar(&forcePathStyle, "force-path-style", false, "Use path-style addressing (MinIO, localstack)")
	pf.BoolVar(&imdsRegion, "imds-region", false, "Fall back to EC2 instance metadata for the region")
	pf.BoolVar(&debug, "debug", false, "Enable debug logging")
	pf.StringVar(&logLevel, "log-level", "", "Log level (debug|info|warn|error)")

	registerBrowseFlags(rootCmd)
}

// loadConfig runs before every command: it resolves the effective
// configuration and initialises the CLI logger from it.
func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Context(), config.Options{
		ConfigFile: configFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Invalid configuration", err)
	}

	if err := observability.InitCLILoggerWithLevel(cmd.Root().Name(), cfg.LogLevel()); err != nil {
		return exitError(exitFailure, "Cannot initialise logging", err)
	}
	if file := config.ConfigFileUsed(); file != "" {
		observability.CLILogger.Debug("Loaded config file", zap.String("path", file))
	}
	return nil
}

// Execute runs the root command. The returned error carries an exit code
// readable with ExitCode.
func Execute() error {
	return rootCmd.Execute()
}
