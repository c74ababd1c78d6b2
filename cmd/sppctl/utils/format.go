package utils

import (
	"regexp"
	"strings"
)

var (
	spaceRun     = regexp.MustCompile(`\s+`)
	spacedSemi   = regexp.MustCompile(`\s?;\s?`)
	percentValue = regexp.MustCompile(`^\d+(\.\d+)?%$`)
)

// CleanCommand collapses whitespace runs to one space and removes the spaces
// around ";" so that "sec 1 ; add ring:0" and "sec 1;add ring:0" are the same
// command.
func CleanCommand(line string) string {
	line = spaceRun.ReplaceAllString(line, " ")
	return spacedSemi.ReplaceAllString(line, ";")
}

// SplitCommand returns the first word of line and the untouched remainder.
func SplitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	if i := strings.IndexAny(line, " \t;"); i >= 0 {
		if line[i] == ';' {
			return line[:i], line[i:]
		}
		return line[:i], strings.TrimSpace(line[i+1:])
	}
	return line, ""
}

// IsPercent reports whether s is a size such as "60%" or "62.5%".
func IsPercent(s string) bool {
	return percentValue.MatchString(s)
}
