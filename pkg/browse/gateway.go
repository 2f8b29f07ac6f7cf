package browse

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/3leaps/s3uri/pkg/provider"
)

// DefaultDelimiter groups keys into directory-like levels.
const DefaultDelimiter = "/"

// DefaultListTimeout bounds a single listing call.
const DefaultListTimeout = 30 * time.Second

// Listing is one level of a bucket below a prefix.
type Listing struct {
	// Groups are the immediate child prefixes, each ending in the delimiter.
	Groups []string

	// Leaves are object keys directly under the prefix. Folder marker
	// objects (keys ending in the delimiter) are never included.
	Leaves []string

	// Truncated reports that the store held more than one page.
	Truncated bool
}

// Empty reports whether the level has nothing to show.
func (l Listing) Empty() bool {
	return len(l.Groups) == 0 && len(l.Leaves) == 0
}

// Gateway lists a single level of a bucket.
//
// Gateway never fails: listing errors are logged and reported as an empty
// Listing so the caller's empty-level policy applies uniformly.
type Gateway struct {
	lister    provider.DelimiterLister
	delimiter string
	maxKeys   int
	timeout   time.Duration
	logger    Logger
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithDelimiter sets the grouping delimiter. Empty keeps the default.
func WithDelimiter(d string) GatewayOption {
	return func(g *Gateway) {
		if d != "" {
			g.delimiter = d
		}
	}
}

// WithMaxKeys caps the page size requested from the store.
func WithMaxKeys(n int) GatewayOption {
	return func(g *Gateway) { g.maxKeys = n }
}

// WithListTimeout bounds each listing call. Zero or negative disables the bound.
func WithListTimeout(d time.Duration) GatewayOption {
	return func(g *Gateway) { g.timeout = d }
}

// WithLogger sets the logger used for listing diagnostics.
func WithLogger(l Logger) GatewayOption {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGateway creates a Gateway over lister.
func NewGateway(lister provider.DelimiterLister, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		lister:    lister,
		delimiter: DefaultDelimiter,
		timeout:   DefaultListTimeout,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Delimiter returns the grouping delimiter in use.
func (g *Gateway) Delimiter() string {
	return g.delimiter
}

// List returns one page of the level below prefix in container.
func (g *Gateway) List(ctx context.Context, container, prefix string) Listing {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	res, err := g.lister.ListWithDelimiter(ctx, provider.ListWithDelimiterOptions{
		Bucket:    container,
		Prefix:    prefix,
		Delimiter: g.delimiter,
		MaxKeys:   g.maxKeys,
	})
	if err != nil {
		g.logger.Warn("Listing failed; treating level as empty",
			zap.String("bucket", container),
			zap.String("prefix", prefix),
			zap.String("reason", provider.Reason(err)),
			zap.Error(err))
		return Listing{}
	}
	if res == nil {
		return Listing{}
	}

	listing := Listing{
		Groups:    make([]string, 0, len(res.CommonPrefixes)),
		Leaves:    make([]string, 0, len(res.Objects)),
		Truncated: res.IsTruncated,
	}
	listing.Groups = append(listing.Groups, res.CommonPrefixes...)
	for _, obj := range res.Objects {
		if strings.HasSuffix(obj.Key, g.delimiter) {
			continue
		}
		listing.Leaves = append(listing.Leaves, obj.Key)
	}

	if listing.Truncated {
		g.logger.Debug("Listing truncated to first page",
			zap.String("bucket", container),
			zap.String("prefix", prefix),
			zap.Int("groups", len(listing.Groups)),
			zap.Int("leaves", len(listing.Leaves)))
	}

	return listing
}
