package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// zeroWidthReplacer strips zero-width characters that NFKC leaves alone.
var zeroWidthReplacer = strings.NewReplacer(
	"\u200B", "", // zero-width space
	"\uFEFF", "", // byte order mark
)

// hyphenJoinRe matches a word broken across a line with a trailing hyphen,
// e.g. "broad- band" once the line break has been flattened to whitespace.
var hyphenJoinRe = regexp.MustCompile(`(\w)-\s+(\w)`)

// Normalize cleans a single cell or line of extracted text: NFKC folding
// (which maps non-breaking space variants to plain spaces), zero-width
// character removal, hyphenation joins, and whitespace collapsing.
func Normalize(s string) string {
	s = zeroWidthReplacer.Replace(s)
	s = norm.NFKC.String(s)
	// A join can expose another break (short middle fragments), so
	// repeat until stable.
	for {
		joined := hyphenJoinRe.ReplaceAllString(s, "$1$2")
		if joined == s {
			break
		}
		s = joined
	}
	return strings.Join(strings.Fields(s), " ")
}

// joinHeader flattens a header row into one normalized lowercase string
// for whole-header keyword checks.
func joinHeader(header []string) string {
	parts := make([]string, 0, len(header))
	for _, cell := range header {
		if cell == "" {
			continue
		}
		if n := Normalize(cell); n != "" {
			parts = append(parts, n)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}
