package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// Organization-name line length bounds.
const (
	minOrgNameLength = 5
	maxOrgNameLength = 150
)

// organizationKeywords mark a line as an organization name outright.
var organizationKeywords = []string{
	"llc", "inc", "corp", "corporation", "company",
	"cooperative", "co-op", "coop", "authority", "association",
	"university", "college", "foundation", "institute", "agency",
	"commission", "council", "department", "telephone", "telecom",
	"communications", "broadband", "electric", "utility", "utilities",
	"tribe", "tribal", "nation",
}

// acronymRe matches a parenthesized all-caps acronym, e.g. "(NTIA)".
var acronymRe = regexp.MustCompile(`\([A-Z]{2,}\)`)

// OrgNameDetector judges whether a line of freeform text looks like an
// organization name.
type OrgNameDetector struct{}

// NewOrgNameDetector creates a detector.
func NewOrgNameDetector() *OrgNameDetector {
	return &OrgNameDetector{}
}

// IsOrganizationName reports whether a line qualifies: plausible length,
// and either an organizational keyword, a parenthesized acronym, or a
// title-case shape (2-10 words, at least 70% capitalized, not shouting).
func (d *OrgNameDetector) IsOrganizationName(line string) bool {
	line = Normalize(line)
	if len(line) < minOrgNameLength || len(line) > maxOrgNameLength {
		return false
	}

	lowered := strings.ToLower(line)
	for _, kw := range organizationKeywords {
		if containsWord(lowered, kw) {
			return true
		}
	}

	if acronymRe.MatchString(line) {
		return true
	}

	return d.isTitleCase(line)
}

// isTitleCase applies the shape heuristic for names with no keyword or
// acronym signal.
func (d *OrgNameDetector) isTitleCase(line string) bool {
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 10 {
		return false
	}
	if line == strings.ToUpper(line) {
		return false
	}

	capitalized := 0
	for _, w := range words {
		r := []rune(w)[0]
		if unicode.IsUpper(r) {
			capitalized++
		}
	}
	return float64(capitalized)/float64(len(words)) >= 0.7
}

// containsWord reports a whole-word, punctuation-tolerant match of w in
// the lowercased text s.
func containsWord(s, w string) bool {
	for _, field := range strings.Fields(s) {
		field = strings.Trim(field, ".,;:()")
		if field == w {
			return true
		}
	}
	return false
}
