package compiler

import "slices"

// Chain is the ordered set of absolute paths currently being expanded on one
// descent from the root. It is never mutated in place: With returns an
// extended copy, so sibling imports always start from the same state.
//
// The zero value is an empty chain.
type Chain struct {
	paths []string
}

// NewChain returns a chain containing paths in order.
func NewChain(paths ...string) Chain {
	return Chain{paths: slices.Clone(paths)}
}

// With returns a copy of the chain extended with path.
func (c Chain) With(path string) Chain {
	next := make([]string, len(c.paths), len(c.paths)+1)
	copy(next, c.paths)
	return Chain{paths: append(next, path)}
}

// Contains reports whether path is already being expanded.
func (c Chain) Contains(path string) bool {
	return slices.Contains(c.paths, path)
}

// Len returns the depth of the chain.
func (c Chain) Len() int {
	return len(c.paths)
}

// Paths returns a copy of the chain from the root to the innermost file.
func (c Chain) Paths() []string {
	return slices.Clone(c.paths)
}
