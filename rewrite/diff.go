package rewrite

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

const diffContext = 3

// unifiedDiff returns the unified diff from before to after, or "" when
// they are equal.
func unifiedDiff(name string, before, after []byte) (string, error) {
	if string(before) == string(after) {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(string(before)),
		B:        splitLines(string(after)),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  diffContext,
	})
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] += "\n"
	}
	return lines
}
