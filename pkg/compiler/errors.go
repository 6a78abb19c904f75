package compiler

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFileNotFound is matched by every *FileNotFoundError via errors.Is.
var ErrFileNotFound = errors.New("file not found")

// FileNotFoundError reports a root or imported file that does not resolve to
// an existing readable file. It aborts the entire compilation.
type FileNotFoundError struct {
	// Path is the resolved absolute path that could not be read.
	Path string

	// From is the file containing the directive that referenced Path.
	// Empty when Path is the compilation root.
	From string

	// Line is the 1-based line of the directive in From.
	Line int

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *FileNotFoundError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("the file %s does not exist", e.Path))
	if e.From != "" {
		sb.WriteString(fmt.Sprintf(" (imported from %s:%d)", e.From, e.Line))
	}
	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *FileNotFoundError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrFileNotFound) succeed.
func (e *FileNotFoundError) Is(target error) bool {
	return target == ErrFileNotFound
}

// Cycle describes a directive that was skipped because its target is already
// being expanded. Cycles are diagnostics, not errors.
type Cycle struct {
	// Path is the resolved target of the skipped directive.
	Path string `json:"path"`

	// From is the file containing the directive.
	From string `json:"from"`

	// Line is the 1-based line of the directive in From.
	Line int `json:"line"`

	// Chain is the descent from the root to From at the time of detection.
	Chain []string `json:"chain"`
}

// String renders the cycle as a readable arrow chain.
func (c Cycle) String() string {
	return strings.Join(append(append([]string{}, c.Chain...), c.Path), " -> ")
}

// CycleReporter receives cycle diagnostics as they are detected.
type CycleReporter func(Cycle)
