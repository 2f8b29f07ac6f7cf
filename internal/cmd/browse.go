package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/3leaps/s3uri/internal/config"
	"github.com/3leaps/s3uri/internal/observability"
	"github.com/3leaps/s3uri/internal/picker"
	"github.com/3leaps/s3uri/pkg/browse"
	"github.com/3leaps/s3uri/pkg/match"
	"github.com/3leaps/s3uri/pkg/provider"
	"github.com/3leaps/s3uri/pkg/provider/s3"
)

// ErrNoRegion indicates no region could be resolved from any source.
var ErrNoRegion = errors.New("no AWS region configured")

var (
	browseBucket      string
	browsePrefix      string
	browseDelimiter   string
	browseMaxKeys     int
	browseListTimeout time.Duration
	browseIncludes    []string
	browseExcludes    []string
)

func registerBrowseFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&browseBucket, "bucket", "b", "", "Bucket to browse (skips bucket selection)")
	f.StringVar(&browsePrefix, "prefix", "", "Prefix to start browsing from")
	f.StringVar(&browseDelimiter, "delimiter", browse.DefaultDelimiter, "Delimiter that separates folders")
	f.IntVar(&browseMaxKeys, "max-keys", s3.DefaultMaxKeys, "Max entries listed per level (1-1000)")
	f.DurationVar(&browseListTimeout, "list-timeout", browse.DefaultListTimeout, "Timeout for each listing call")
	f.StringSliceVar(&browseIncludes, "include", nil, "Only offer objects matching these globs")
	f.StringSliceVar(&browseExcludes, "exclude", nil, "Never offer objects matching these globs")
}

// store is what the browse flow needs from a provider.
type store interface {
	provider.BucketLister
	provider.DelimiterLister
	Region() string
	Close() error
}

// browser wires a run's collaborators. Tests replace open and selector.
type browser struct {
	open     func(ctx context.Context, cfg s3.Config) (store, error)
	selector browse.Selector
	stdout   io.Writer
	logger   browse.Logger
}

func openS3(ctx context.Context, cfg s3.Config) (store, error) {
	p, err := s3.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.GetConfig()
	if cfg == nil {
		return exitError(foundry.ExitInvalidArgument, "Configuration not loaded", errors.New("config is nil"))
	}

	bucket, start := cfg.Bucket, cfg.Prefix
	if len(args) == 1 {
		loc, err := ParseURI(args[0])
		if err != nil {
			return exitError(foundry.ExitInvalidArgument, "Invalid location", err)
		}
		bucket, start = loc.Bucket, loc.Key
	}

	sessionID := uuid.New().String()
	b := &browser{
		open:     openS3,
		selector: picker.New(),
		stdout:   cmd.OutOrStdout(),
		logger:   observability.CLILogger.WithFields(map[string]any{"session_id": sessionID}),
	}
	return b.run(ctx, cfg, bucket, start)
}

// run executes one browse session and prints the console URL.
func (b *browser) run(ctx context.Context, cfg *config.Config, bucket, start string) error {
	filter, err := match.New(cfg.MatchConfig())
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Invalid match patterns", err)
	}

	st, err := b.open(ctx, cfg.S3Config())
	if err != nil {
		var cfgErr *s3.ConfigError
		if errors.As(err, &cfgErr) {
			return exitError(foundry.ExitInvalidArgument, "Invalid S3 configuration", err)
		}
		return exitError(foundry.ExitExternalServiceUnavailable, "Failed to connect to storage provider", err)
	}
	defer func() { _ = st.Close() }()

	region := st.Region()
	if region == "" {
		return exitError(foundry.ExitInvalidArgument, "Cannot build console URL",
			fmt.Errorf("%w: set --region, AWS_REGION or a profile region", ErrNoRegion))
	}
	b.logger.Debug("Provider ready",
		zap.String("region", region),
		zap.String("endpoint", cfg.Endpoint))

	if bucket == "" {
		bucket, err = b.chooseBucket(ctx, st)
		if err != nil {
			return err
		}
	}

	gateway := browse.NewGateway(st,
		browse.WithDelimiter(cfg.Delimiter),
		browse.WithMaxKeys(cfg.MaxKeys),
		browse.WithListTimeout(cfg.ListTimeout),
		browse.WithLogger(b.logger),
	)
	nav := browse.NewNavigator(browse.NewResolver(gateway, filter, b.logger), b.selector, region, cfg.Delimiter, b.logger)

	result, err := nav.Run(ctx, bucket, start)
	if err != nil {
		return classifyBrowseError(ctx, bucket, err)
	}

	b.logger.Debug("Browse complete",
		zap.String("bucket", result.Container),
		zap.String("prefix", result.State.Prefix),
		zap.Bool("directory", result.State.IsDirectory),
		zap.Int("prompts", result.Prompts))

	if _, err := fmt.Fprintf(b.stdout, "URI: %s\n", result.URL); err != nil {
		return exitError(foundry.ExitFileWriteError, "Failed to write result", err)
	}
	return nil
}

func (b *browser) chooseBucket(ctx context.Context, st store) (string, error) {
	buckets := browse.ListContainers(ctx, st, b.logger)
	idx, err := browse.SelectContainer(ctx, b.selector, buckets)
	if err != nil {
		if errors.Is(err, browse.ErrNoContainers) {
			return "", exitError(foundry.ExitFileNotFound, "No buckets to browse", err)
		}
		return "", classifyBrowseError(ctx, "", err)
	}
	return buckets[idx], nil
}

func classifyBrowseError(ctx context.Context, bucket string, err error) error {
	switch {
	case errors.Is(err, browse.ErrCancelled), ctx.Err() != nil:
		return exitError(foundry.ExitSignalInt, "Browse cancelled", err)
	case errors.Is(err, browse.ErrEmptyContainer):
		return exitError(foundry.ExitFileNotFound, "Nothing to browse in bucket "+bucket, err)
	case errors.Is(err, browse.ErrNoItems), errors.Is(err, browse.ErrInvalidSelection):
		return exitError(foundry.ExitInvalidArgument, "Selection failed", err)
	default:
		return exitError(exitFailure, "Browse failed", err)
	}
}
