// Package browse implements one-level-at-a-time navigation of an object
// store bucket and the console URL that ends it.
//
// The pieces, leaf first: Gateway lists one level of a bucket, Resolver turns
// that listing into ordered candidates, Navigator drives the prompt loop, and
// ConsoleURI renders the final state. Interactive selection is abstracted by
// Selector so the loop can run against a terminal picker or a script.
package browse

import (
	"context"
	"errors"
)

// Selector presents items to an operator and blocks until one is chosen.
//
// Select returns the index of the chosen item. It returns ErrCancelled when
// the operator aborts and ErrNoItems when items is empty. defaultIndex is
// where the cursor starts; it is clamped into range.
type Selector interface {
	Select(ctx context.Context, prompt string, items []string, defaultIndex int) (int, error)
}

// Selection errors.
var (
	// ErrCancelled indicates the operator aborted a selection prompt.
	ErrCancelled = errors.New("selection cancelled")

	// ErrNoItems indicates a selector was asked to choose from nothing.
	ErrNoItems = errors.New("nothing to select")

	// ErrInvalidSelection indicates a selector returned an out-of-range index.
	ErrInvalidSelection = errors.New("selection out of range")
)

// SelectorFunc adapts a plain function to the Selector interface.
type SelectorFunc func(ctx context.Context, prompt string, items []string, defaultIndex int) (int, error)

// Select calls f.
func (f SelectorFunc) Select(ctx context.Context, prompt string, items []string, defaultIndex int) (int, error) {
	return f(ctx, prompt, items, defaultIndex)
}

// ClampIndex keeps i within [0, n). n must be positive.
func ClampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
