package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// SignificantLength returns the number of non-whitespace characters in s
// after NFC normalization, so a base letter and its combining accent count
// once.
func SignificantLength(s string) int {
	n := 0
	for _, r := range norm.NFC.String(s) {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// LineLength returns the significant length of the concatenation of the
// given span texts, each trimmed of surrounding whitespace.
func LineLength(spans []string) int {
	n := 0
	for _, s := range spans {
		n += SignificantLength(strings.TrimSpace(s))
	}
	return n
}

// CollapseWhitespace trims s and replaces every run of whitespace with a
// single space.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
