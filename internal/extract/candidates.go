package extract

import (
	"regexp"
	"sort"

	"github.com/beadscan/beadscan/internal/document"
)

// Header-quality score components. The description header is mandatory, so
// every candidate starts from the base; partner wording raises confidence
// that this is the table we want rather than some other described listing.
const (
	baseHeaderScore        = 10
	partnerHeaderBonus     = 2
	partnershipHeaderBonus = 1

	// contentCountWeight keeps row volume a tiebreak-magnitude signal:
	// it can separate equally-worded headers but never outweigh a
	// header-quality delta.
	contentCountWeight = 0.01
)

var (
	partnersWordRe     = regexp.MustCompile(`(?i)\bpartners?\b`)
	partnershipsWordRe = regexp.MustCompile(`(?i)\bpartnerships?\b`)
)

// Candidate is a table grid judged structurally eligible to be the target
// entity/description table, with enough bookkeeping to extract from it and
// to stitch continuations after it.
type Candidate struct {
	Page         int
	TableIndex   int
	Grid         document.Grid
	EntityCol    int
	DescCol      int
	Columns      int
	ContentCount int
	HeaderScore  int
	Score        float64
}

// CandidateScorer finds and scores qualifying tables across a document.
type CandidateScorer struct {
	classifier *HeaderClassifier
}

// NewCandidateScorer creates a scorer using the given header classifier.
func NewCandidateScorer(classifier *HeaderClassifier) *CandidateScorer {
	return &CandidateScorer{classifier: classifier}
}

// ScorePage evaluates every grid on one page and returns the qualifying
// candidates. Grids with fewer than two rows carry no data and are skipped.
func (cs *CandidateScorer) ScorePage(page int, grids []document.Grid) []Candidate {
	var candidates []Candidate
	for idx, grid := range grids {
		if len(grid) < 2 {
			continue
		}
		header := grid.Header()
		descIdx, entityIdx, ok := cs.classifier.Classify(header)
		if !ok {
			continue
		}

		contentCount := 0
		for _, row := range grid.DataRows() {
			if cellAt(row, entityIdx) != "" || cellAt(row, descIdx) != "" {
				contentCount++
			}
		}

		headerScore := baseHeaderScore
		headerText := joinHeader(header)
		if partnersWordRe.MatchString(headerText) {
			headerScore += partnerHeaderBonus
		}
		if partnershipsWordRe.MatchString(headerText) {
			headerScore += partnershipHeaderBonus
		}

		candidates = append(candidates, Candidate{
			Page:         page,
			TableIndex:   idx,
			Grid:         grid,
			EntityCol:    entityIdx,
			DescCol:      descIdx,
			Columns:      grid.Columns(),
			ContentCount: contentCount,
			HeaderScore:  headerScore,
			Score:        float64(headerScore) + contentCountWeight*float64(contentCount),
		})
	}
	return candidates
}

// Best picks the winning candidate: highest score, earliest page on ties,
// earliest table on the page after that. Selection is deterministic.
func (cs *CandidateScorer) Best(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		if sorted[i].Page != sorted[j].Page {
			return sorted[i].Page < sorted[j].Page
		}
		return sorted[i].TableIndex < sorted[j].TableIndex
	})
	return sorted[0], true
}

// cellAt reads a normalized cell, treating out-of-range indexes as empty.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return Normalize(row[idx])
}
