package browse

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrEmptyContainer indicates the bucket root lists nothing at all.
var ErrEmptyContainer = errors.New("bucket is empty")

// CandidateResolver produces the candidates of one level.
type CandidateResolver interface {
	Resolve(ctx context.Context, container, prefix string) []Candidate
}

// Result is the outcome of a completed navigation.
type Result struct {
	// Container is the bucket that was browsed.
	Container string

	// State is the terminal traversal state.
	State State

	// URL is the console URL for State.
	URL string

	// Prompts counts the selections the operator made.
	Prompts int
}

// Navigator drives the select-and-descend loop.
//
// It is single-threaded: each iteration performs at most one listing and at
// most one prompt, in that order.
type Navigator struct {
	resolver  CandidateResolver
	selector  Selector
	region    string
	delimiter string
	logger    Logger
}

// NewNavigator creates a Navigator. An empty delimiter uses DefaultDelimiter;
// a nil logger discards diagnostics.
func NewNavigator(resolver CandidateResolver, selector Selector, region, delimiter string, logger Logger) *Navigator {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	return &Navigator{
		resolver:  resolver,
		selector:  selector,
		region:    region,
		delimiter: delimiter,
		logger:    orNop(logger),
	}
}

// Run navigates container starting at start ("" for the bucket root) until
// a console URL can be produced.
//
// Errors: ErrCancelled from the selector, ErrEmptyContainer when the root
// has nothing to show, ErrInvalidSelection for an out-of-range pick, and the
// context error when ctx ends between steps.
func (n *Navigator) Run(ctx context.Context, container, start string) (*Result, error) {
	state := State{Prefix: start}
	prompts := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidates := n.resolver.Resolve(ctx, container, state.Prefix)

		switch {
		case len(candidates) > 0:
			idx, err := n.selector.Select(ctx, n.prompt(container, state.Prefix), Labels(candidates), 0)
			if err != nil {
				return nil, err
			}
			if idx < 0 || idx >= len(candidates) {
				return nil, fmt.Errorf("%w: index %d of %d", ErrInvalidSelection, idx, len(candidates))
			}
			prompts++
			state = state.Select(candidates[idx])
			n.logger.Debug("Selected",
				zap.String("prefix", state.Prefix),
				zap.Bool("directory", state.IsDirectory))

		case state.Prefix == "":
			return nil, fmt.Errorf("%w: %s", ErrEmptyContainer, container)

		default:
			state = state.Settle(n.delimiter)
			n.logger.Debug("Level is empty; settling",
				zap.String("prefix", state.Prefix),
				zap.Bool("directory", state.IsDirectory))
		}

		if url := ConsoleURIWithDelimiter(container, state.Prefix, n.region, state.IsDirectory, n.delimiter); url != "" {
			return &Result{
				Container: container,
				State:     state,
				URL:       url,
				Prompts:   prompts,
			}, nil
		}
	}
}

func (n *Navigator) prompt(container, prefix string) string {
	return container + n.delimiter + prefix
}
