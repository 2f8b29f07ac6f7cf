package browse

import "strings"

// State is the traversal position. Values are immutable; transitions
// return a new State.
type State struct {
	// Prefix is the current key or prefix within the bucket.
	Prefix string

	// IsDirectory records whether Prefix names a folder.
	IsDirectory bool
}

// Select moves to the chosen candidate.
func (s State) Select(c Candidate) State {
	return State{Prefix: c.Key, IsDirectory: c.Dir}
}

// Settle resolves a level that listed nothing.
//
// A prefix ending in delimiter is an empty folder: the delimiter is stripped
// and the folder itself becomes the target. Any other prefix is already a
// bare object key.
func (s State) Settle(delimiter string) State {
	if strings.HasSuffix(s.Prefix, delimiter) {
		return State{Prefix: strings.TrimSuffix(s.Prefix, delimiter), IsDirectory: true}
	}
	return State{Prefix: s.Prefix, IsDirectory: false}
}

// Terminal reports whether the state can be rendered as a console URL.
func (s State) Terminal(delimiter string) bool {
	return s.Prefix != "" && !strings.HasSuffix(s.Prefix, delimiter)
}
