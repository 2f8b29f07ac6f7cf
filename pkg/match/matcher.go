// Package match filters object keys with doublestar glob patterns.
package match

import (
	"errors"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Matcher evaluates include and exclude patterns against object keys.
//
// An empty Matcher (no includes, no excludes) matches everything. With
// includes set, a key must match at least one; it must never match an
// exclude. Patterns match the full key, so "**/*.log" is the usual way to
// say "any .log file at any depth".
//
// The Matcher is safe for concurrent use after creation.
type Matcher struct {
	includes []string
	excludes []string
}

// Config configures a Matcher.
type Config struct {
	// Includes are glob patterns that keys must match (at least one).
	// Empty means every key is included.
	Includes []string

	// Excludes are glob patterns that keys must not match (any).
	Excludes []string
}

// ErrInvalidPattern is returned when a pattern cannot be compiled.
var ErrInvalidPattern = errors.New("invalid glob pattern")

// PatternError wraps pattern-related errors with context.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return "pattern " + e.Pattern + ": " + e.Err.Error()
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// New creates a Matcher, validating every pattern up front.
func New(cfg Config) (*Matcher, error) {
	includes, err := compile(cfg.Includes)
	if err != nil {
		return nil, err
	}
	excludes, err := compile(cfg.Excludes)
	if err != nil {
		return nil, err
	}
	return &Matcher{includes: includes, excludes: excludes}, nil
}

func compile(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return nil, &PatternError{Pattern: p, Err: ErrInvalidPattern}
		}
		out = append(out, p)
	}
	return out, nil
}

// Empty reports whether the matcher accepts every key.
func (m *Matcher) Empty() bool {
	return m == nil || (len(m.includes) == 0 && len(m.excludes) == 0)
}

// Match reports whether key passes the include and exclude patterns.
// A nil Matcher matches everything.
func (m *Matcher) Match(key string) bool {
	if m.Empty() {
		return true
	}

	for _, p := range m.excludes {
		if ok, _ := doublestar.Match(p, key); ok {
			return false
		}
	}

	if len(m.includes) == 0 {
		return true
	}
	for _, p := range m.includes {
		if ok, _ := doublestar.Match(p, key); ok {
			return true
		}
	}
	return false
}

// Patterns returns the compiled include and exclude patterns.
func (m *Matcher) Patterns() (includes, excludes []string) {
	if m == nil {
		return nil, nil
	}
	return append([]string(nil), m.includes...), append([]string(nil), m.excludes...)
}
