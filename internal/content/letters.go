package content

import (
	"strings"
	"unicode"
)

// Letters splits a word into letter units: a base character followed by any
// combining marks (harakat, shadda, sukun) that belong to it.
func Letters(word string) []string {
	var out []string
	for _, r := range word {
		if unicode.Is(unicode.Mn, r) && len(out) > 0 {
			out[len(out)-1] += string(r)
			continue
		}
		out = append(out, string(r))
	}
	return out
}

// StripMarks removes combining marks, leaving the bare letters.
func StripMarks(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, s)
}

// Normalize prepares free-typed input for comparison: trims spaces and drops
// combining marks.
func Normalize(s string) string {
	return StripMarks(strings.TrimSpace(s))
}
