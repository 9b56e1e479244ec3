package extract

import (
	"log"
	"strings"

	"github.com/beadscan/beadscan/internal/document"
)

// PageSource provides per-page table grids and plain text for a single
// document. Pages are 1-based. Implementations may fail per page; the
// pipeline treats a failed page as contentless.
type PageSource interface {
	PageCount() int
	ExtractTables(page int) ([]document.Grid, error)
	ExtractText(page int) (string, error)
}

// Options configures the extraction pipeline.
type Options struct {
	// Similarity enables the fuzzy header fallback. Nil disables it.
	Similarity Similarity
	// MinSimilarity is the fuzzy acceptance threshold (default 0.75).
	MinSimilarity float64
	// SpecialCaseLabels lists document labels (matched as lowercase
	// substrings) eligible for the special-case provider-table matcher.
	SpecialCaseLabels []string
	// SpecialCaseWords overrides the required header words of the
	// special-case matcher.
	SpecialCaseWords []string
}

// Service runs the full table-selection pipeline for one document at a
// time. It keeps no state between documents, so one Service is safe to
// share across documents processed in parallel.
type Service struct {
	classifier        *HeaderClassifier
	scorer            *CandidateScorer
	rows              *RowExtractor
	continuation      *ContinuationMatcher
	special           *SpecialCaseMatcher
	segmenter         *TextSegmenter
	assembler         *Assembler
	specialCaseLabels []string
}

// NewService creates a service with all pipeline components.
func NewService(opts Options) *Service {
	classifier := NewHeaderClassifier(opts.Similarity, opts.MinSimilarity)
	rows := NewRowExtractor()

	labels := make([]string, len(opts.SpecialCaseLabels))
	for i, l := range opts.SpecialCaseLabels {
		labels[i] = strings.ToLower(l)
	}

	return &Service{
		classifier:        classifier,
		scorer:            NewCandidateScorer(classifier),
		rows:              rows,
		continuation:      NewContinuationMatcher(classifier, rows),
		special:           NewSpecialCaseMatcher(opts.SpecialCaseWords...),
		segmenter:         NewTextSegmenter(NewOrgNameDetector()),
		assembler:         NewAssembler(),
		specialCaseLabels: labels,
	}
}

// ExtractFile opens a PDF and runs the pipeline. Open failures degrade to
// an empty result so that a batch over many documents keeps moving.
func (s *Service) ExtractFile(path, label string) Result {
	doc, err := document.Open(path)
	if err != nil {
		log.Printf("error opening %s: %v", path, err)
		return Result{}
	}
	defer doc.Close()
	return s.Extract(doc, label)
}

// Extract runs the document-level policy: the strict best-match pipeline
// first, then the special-case matcher for eligible labels, then the text
// fallback over table-less pages.
func (s *Service) Extract(src PageSource, label string) Result {
	result := s.extractBestTable(src)
	if !result.Empty() {
		return result
	}

	if s.specialCaseEligible(label) {
		log.Printf("%s: no strict partners table found, trying special-case matcher", label)
		records, pages := s.special.Extract(src)
		result = s.assembler.Assemble(records, pages)
		if !result.Empty() {
			return result
		}
	}

	records, pages := s.segmenter.SegmentPages(src)
	return s.assembler.Assemble(records, pages)
}

// extractBestTable scans the whole document for candidates, extracts the
// best one, and stitches consecutive continuations after it.
func (s *Service) extractBestTable(src PageSource) Result {
	var candidates []Candidate
	for page := 1; page <= src.PageCount(); page++ {
		grids, err := src.ExtractTables(page)
		if err != nil {
			log.Printf("page %d: table extraction failed: %v", page, err)
			continue
		}
		candidates = append(candidates, s.scorer.ScorePage(page, grids)...)
	}

	best, ok := s.scorer.Best(candidates)
	if !ok {
		return Result{}
	}
	log.Printf("selected best table: page %d, table %d, entity_col=%d, desc_col=%d, score=%.2f",
		best.Page, best.TableIndex+1, best.EntityCol, best.DescCol, best.Score)

	records := s.rows.Extract(best.Grid, best.EntityCol, best.DescCol)
	pages := []int{best.Page}

	contRecords, contPages := s.continuation.Extend(src, best)
	records = append(records, contRecords...)
	pages = append(pages, contPages...)

	return s.assembler.Assemble(records, pages)
}

// specialCaseEligible reports whether a document label opts in to the
// special-case matcher.
func (s *Service) specialCaseEligible(label string) bool {
	lowered := strings.ToLower(label)
	for _, l := range s.specialCaseLabels {
		if l != "" && strings.Contains(lowered, l) {
			return true
		}
	}
	return false
}
