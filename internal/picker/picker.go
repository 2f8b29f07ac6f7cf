// Package picker is a terminal fuzzy-selection prompt built on bubbletea.
//
// The picker renders on stderr so that stdout carries only the program's
// result line.
package picker

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/3leaps/s3uri/pkg/browse"
)

// DefaultHeight is the number of rows shown at once.
const DefaultHeight = 15

// Picker implements browse.Selector with an interactive fuzzy finder.
type Picker struct {
	in     io.Reader
	out    io.Writer
	height int
}

var _ browse.Selector = (*Picker)(nil)

// Option configures a Picker.
type Option func(*Picker)

// WithInput sets the key input source. Defaults to os.Stdin.
func WithInput(r io.Reader) Option {
	return func(p *Picker) { p.in = r }
}

// WithOutput sets where the prompt is drawn. Defaults to os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(p *Picker) { p.out = w }
}

// WithHeight sets the number of visible rows.
func WithHeight(n int) Option {
	return func(p *Picker) { p.height = n }
}

// New creates a Picker.
func New(opts ...Option) *Picker {
	p := &Picker{
		in:     os.Stdin,
		out:    os.Stderr,
		height: DefaultHeight,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Select blocks until the operator chooses an item or aborts.
func (p *Picker) Select(ctx context.Context, prompt string, items []string, defaultIndex int) (int, error) {
	if len(items) == 0 {
		return -1, browse.ErrNoItems
	}

	m := newModel(prompt, items, browse.ClampIndex(defaultIndex, len(items)), p.height)
	prog := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := prog.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return -1, ctxErr
		}
		return -1, fmt.Errorf("picker: %w", err)
	}

	return outcome(final)
}

// outcome extracts the selection from the model a program finished with.
func outcome(final tea.Model) (int, error) {
	fm, ok := final.(model)
	if !ok {
		return -1, fmt.Errorf("picker: unexpected final model %T", final)
	}
	if fm.cancelled || fm.chosen < 0 {
		return -1, browse.ErrCancelled
	}
	return fm.chosen, nil
}
