package compiler

import (
	"regexp"
	"strings"
)

// directivePattern matches a trimmed line that is exactly @import(PATH).
// PATH runs up to the first ')' and must not be empty.
var directivePattern = regexp.MustCompile(`^@import\(([^)]+)\)$`)

// ParseDirective reports whether line is an import directive and returns the
// referenced path. Leading and trailing whitespace is ignored for matching
// only; lines that merely resemble a directive are literal text.
func ParseDirective(line string) (string, bool) {
	m := directivePattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return m[1], true
}
