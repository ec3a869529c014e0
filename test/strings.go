package test

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Stripped normalizes a string for comparisons by removing ANSI sequences and
// carriage returns, then trimming surrounding whitespace and each line.
func Stripped(s string) string {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.TrimSpace(s)

	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	return strings.Join(lines, "\n")
}
