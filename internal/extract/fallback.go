package extract

import (
	"log"
	"strings"
)

// Text-fallback tuning. Lines shorter than minLineLength are noise; lines
// longer than minDescriptionLine are worth accumulating as description
// text; maxDescriptionLength caps runaway accumulation when no clear next
// entity appears.
const (
	minLineLength        = 5
	minDescriptionLine   = 20
	maxDescriptionLength = 500
)

// noiseKeywords disqualify a line from the fallback segmenter: they mark
// structural scaffolding rather than content.
var noiseKeywords = []string{"table", "section", "appendix", "figure", "page"}

// TextSegmenter recovers entity/description pairs from freeform page text
// when no table grid is available. An organization-looking line starts a
// new entity; the long lines after it accumulate as its description until
// the next entity or the length cap.
type TextSegmenter struct {
	detector *OrgNameDetector
}

// NewTextSegmenter creates a segmenter using the given detector.
func NewTextSegmenter(detector *OrgNameDetector) *TextSegmenter {
	return &TextSegmenter{detector: detector}
}

// Segment splits one page's text into entity/description pairs.
func (ts *TextSegmenter) Segment(text string) []PartnerRecord {
	var records []PartnerRecord
	var entity string
	var desc strings.Builder

	emit := func() {
		if entity == "" {
			return
		}
		records = append(records, PartnerRecord{
			Partner:     entity,
			Description: strings.TrimSpace(desc.String()),
		})
		entity = ""
		desc.Reset()
	}

	for _, raw := range strings.Split(text, "\n") {
		line := Normalize(raw)
		if len(line) < minLineLength || isNoiseLine(line) {
			continue
		}

		if ts.detector.IsOrganizationName(line) {
			emit()
			entity = line
			continue
		}

		if entity != "" && len(line) > minDescriptionLine {
			if desc.Len() > 0 {
				desc.WriteString(" ")
			}
			desc.WriteString(line)
			if desc.Len() > maxDescriptionLength {
				emit()
			}
		}
	}
	emit()

	return records
}

// SegmentPages runs the segmenter over every page that produced no usable
// table grid, returning recovered records and the pages they came from.
func (ts *TextSegmenter) SegmentPages(src PageSource) ([]PartnerRecord, []int) {
	var records []PartnerRecord
	var pagesUsed []int

	for page := 1; page <= src.PageCount(); page++ {
		if grids, err := src.ExtractTables(page); err == nil && len(grids) > 0 {
			continue
		}
		text, err := src.ExtractText(page)
		if err != nil {
			log.Printf("page %d: text extraction failed during fallback scan: %v", page, err)
			continue
		}
		pageRecords := ts.Segment(text)
		if len(pageRecords) > 0 {
			records = append(records, pageRecords...)
			pagesUsed = append(pagesUsed, page)
		}
	}

	return records, pagesUsed
}

// isNoiseLine reports whether a line names document structure instead of
// content.
func isNoiseLine(line string) bool {
	lowered := strings.ToLower(line)
	for _, kw := range noiseKeywords {
		if containsWord(lowered, kw) {
			return true
		}
	}
	return false
}
