package browse

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/3leaps/s3uri/pkg/provider"
)

// ErrNoContainers indicates there is no bucket to browse.
var ErrNoContainers = errors.New("no buckets available")

// ListContainers enumerates bucket names once.
//
// Service errors are logged and yield an empty slice; the caller treats an
// empty result as fatal.
func ListContainers(ctx context.Context, lister provider.BucketLister, logger Logger) []string {
	logger = orNop(logger)

	buckets, err := lister.ListBuckets(ctx)
	if err != nil {
		logger.Warn("Listing buckets failed",
			zap.String("reason", provider.Reason(err)),
			zap.Error(err))
		return nil
	}

	names := make([]string, 0, len(buckets))
	for _, b := range buckets {
		names = append(names, b.Name)
	}
	return names
}

// SelectContainer asks selector to pick one of containers and returns its index.
func SelectContainer(ctx context.Context, selector Selector, containers []string) (int, error) {
	if len(containers) == 0 {
		return -1, ErrNoContainers
	}

	idx, err := selector.Select(ctx, "Bucket", containers, 0)
	if err != nil {
		return -1, err
	}
	if idx < 0 || idx >= len(containers) {
		return -1, fmt.Errorf("%w: bucket index %d of %d", ErrInvalidSelection, idx, len(containers))
	}
	return idx, nil
}
