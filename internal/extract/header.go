package extract

import (
	"regexp"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// DefaultMinSimilarity is the fuzzy-match threshold for partner header
// variants when no explicit pattern matches.
const DefaultMinSimilarity = 0.75

// descriptionRe is the strict gate: a table without a whole-word
// "description" header cell is never a candidate.
var descriptionRe = regexp.MustCompile(`(?i)\bdescription\b`)

// partnerHeaderRes are the explicit entity-column header patterns, tried
// before any fuzzy fallback.
var partnerHeaderRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bpartner(s)?\b`),
	regexp.MustCompile(`(?i)\bpartnership(s)?\b`),
	regexp.MustCompile(`(?i)\bprovider(s)?\b`),
}

// fuzzyHeaderTargets are the reference words for the fuzzy fallback.
var fuzzyHeaderTargets = []string{"partner", "partners", "partnership", "provider"}

// Similarity scores how alike two strings are on a 0..1 scale. It is an
// optional capability: a nil Similarity disables the fuzzy header fallback
// and the classifier simply becomes stricter.
type Similarity interface {
	Score(a, b string) float64
}

// LevenshteinSimilarity implements Similarity with a normalized
// Levenshtein ratio.
type LevenshteinSimilarity struct {
	metric *metrics.Levenshtein
}

// NewLevenshteinSimilarity creates the default Similarity implementation.
func NewLevenshteinSimilarity() *LevenshteinSimilarity {
	return &LevenshteinSimilarity{metric: metrics.NewLevenshtein()}
}

// Score returns the normalized similarity between a and b.
func (l *LevenshteinSimilarity) Score(a, b string) float64 {
	return strutil.Similarity(a, b, l.metric)
}

// HeaderClassifier decides whether a header row qualifies a table as an
// entity/description candidate and, if so, which columns hold each field.
type HeaderClassifier struct {
	sim           Similarity
	minSimilarity float64
}

// NewHeaderClassifier creates a classifier. sim may be nil, in which case
// only the explicit header patterns are used.
func NewHeaderClassifier(sim Similarity, minSimilarity float64) *HeaderClassifier {
	if minSimilarity <= 0 {
		minSimilarity = DefaultMinSimilarity
	}
	return &HeaderClassifier{sim: sim, minSimilarity: minSimilarity}
}

// Classify resolves the description and entity column indexes for a header
// row. ok is false when either column cannot be resolved; the description
// column is a strict requirement, the entity column falls back to fuzzy
// matching when a Similarity is configured. The two columns are always
// distinct: a cell that carries both tokens serves as the description.
func (hc *HeaderClassifier) Classify(header []string) (descIdx, entityIdx int, ok bool) {
	descIdx = hc.DescriptionIndex(header)
	if descIdx < 0 {
		return -1, -1, false
	}
	entityIdx = hc.EntityIndex(header, descIdx)
	if entityIdx < 0 {
		return -1, -1, false
	}
	return descIdx, entityIdx, true
}

// DescriptionIndex returns the first column whose header contains the
// whole word "description", or -1.
func (hc *HeaderClassifier) DescriptionIndex(header []string) int {
	for i, cell := range header {
		if cell == "" {
			continue
		}
		if descriptionRe.MatchString(Normalize(cell)) {
			return i
		}
	}
	return -1
}

// EntityIndex returns the first column whose header matches a partner or
// provider pattern, trying the fuzzy fallback when configured, or -1.
// The exclude index (typically the resolved description column) never
// qualifies; pass -1 to consider every column.
func (hc *HeaderClassifier) EntityIndex(header []string, exclude int) int {
	for i, cell := range header {
		if i == exclude || cell == "" {
			continue
		}
		text := Normalize(cell)
		for _, re := range partnerHeaderRes {
			if re.MatchString(text) {
				return i
			}
		}
	}
	if hc.sim == nil {
		return -1
	}
	for i, cell := range header {
		if i == exclude || cell == "" {
			continue
		}
		text := strings.ToLower(Normalize(cell))
		for _, target := range fuzzyHeaderTargets {
			if hc.sim.Score(text, target) >= hc.minSimilarity {
				return i
			}
		}
	}
	return -1
}
