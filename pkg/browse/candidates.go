package browse

import (
	"context"

	"go.uber.org/zap"

	"github.com/3leaps/s3uri/pkg/match"
)

// Candidate is one selectable entry of a level.
type Candidate struct {
	// Key is the full key or prefix within the bucket.
	Key string

	// Dir is true for groups (keys ending in the delimiter).
	Dir bool
}

// String returns the display label of the candidate.
func (c Candidate) String() string {
	return c.Key
}

// Lister is the listing side of a Gateway.
type Lister interface {
	List(ctx context.Context, container, prefix string) Listing
}

// Resolver turns one listing into an ordered candidate list.
type Resolver struct {
	lister Lister
	filter *match.Matcher
	logger Logger
}

// NewResolver creates a Resolver. filter applies to leaves only and may be
// nil; a nil logger discards diagnostics.
func NewResolver(lister Lister, filter *match.Matcher, logger Logger) *Resolver {
	return &Resolver{lister: lister, filter: filter, logger: orNop(logger)}
}

// Resolve returns the candidates at prefix: groups first, then leaves, each
// in listing order. An empty slice means the level has nothing to show.
func (r *Resolver) Resolve(ctx context.Context, container, prefix string) []Candidate {
	listing := r.lister.List(ctx, container, prefix)

	out := make([]Candidate, 0, len(listing.Groups)+len(listing.Leaves))
	for _, g := range listing.Groups {
		out = append(out, Candidate{Key: g, Dir: true})
	}
	hidden := 0
	for _, l := range listing.Leaves {
		if !r.filter.Match(l) {
			hidden++
			continue
		}
		out = append(out, Candidate{Key: l})
	}

	if len(out) == 0 && hidden > 0 {
		r.logger.Debug("Every object at this level was filtered out; treating it as empty",
			zap.String("bucket", container),
			zap.String("prefix", prefix),
			zap.Int("filtered", hidden))
	}
	return out
}

// Labels returns the display labels of candidates, in order.
func Labels(candidates []Candidate) []string {
	labels := make([]string, len(candidates))
	for i, c := range candidates {
		labels[i] = c.String()
	}
	return labels
}
