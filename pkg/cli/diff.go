package cli

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffOp marks a changed line.
type DiffOp byte

const (
	DiffRemoved DiffOp = '-'
	DiffAdded   DiffOp = '+'
)

// DiffLine is one line removed from the old text or added in the new one.
type DiffLine struct {
	Op   DiffOp
	Text string
}

// LineDiff compares old and new line by line and returns the changed lines
// in order. Equal texts yield nil.
func LineDiff(old, new string) []DiffLine {
	if old == new {
		return nil
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, new)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []DiffLine
	for _, d := range diffs {
		var op DiffOp
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			op = DiffRemoved
		case diffmatchpatch.DiffInsert:
			op = DiffAdded
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out = append(out, DiffLine{Op: op, Text: strings.TrimSuffix(line, "\n")})
		}
	}
	return out
}

// Diff prints changed lines, removals in red and additions in green.
func (p *Printer) Diff(lines []DiffLine) {
	for _, l := range lines {
		if l.Op == DiffRemoved {
			failureColor.Fprintf(p.out, "- %s\n", l.Text)
		} else {
			successColor.Fprintf(p.out, "+ %s\n", l.Text)
		}
	}
}
