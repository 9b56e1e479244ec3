package extract

import (
	"log"
	"strings"
)

// specialDescriptionSeparator joins the non-entity columns of a
// special-case row into one description field.
const specialDescriptionSeparator = " | "

// DefaultSpecialCaseWords is the header word set for award-style provider
// tables (Provider / Award Amount / Locations Served and variants).
var DefaultSpecialCaseWords = []string{"provider", "award", "locations"}

// SpecialCaseMatcher handles documents whose partner listing deviates from
// the entity/description schema. It accepts any table whose header
// contains every required word, with no scoring and no continuation
// logic: column 0 is the entity and the remaining columns become the
// description. Matching tables may sit on non-contiguous pages.
type SpecialCaseMatcher struct {
	required []string
}

// NewSpecialCaseMatcher creates a matcher for the given required header
// words; with none given it uses DefaultSpecialCaseWords.
func NewSpecialCaseMatcher(words ...string) *SpecialCaseMatcher {
	if len(words) == 0 {
		words = DefaultSpecialCaseWords
	}
	lowered := make([]string, len(words))
	for i, w := range words {
		lowered[i] = strings.ToLower(w)
	}
	return &SpecialCaseMatcher{required: lowered}
}

// Extract scans every page and table independently and collects rows from
// every matching table. Per-page extraction failures are logged and the
// page is treated as contentless.
func (m *SpecialCaseMatcher) Extract(src PageSource) ([]PartnerRecord, []int) {
	var records []PartnerRecord
	var pagesUsed []int

	for page := 1; page <= src.PageCount(); page++ {
		grids, err := src.ExtractTables(page)
		if err != nil {
			log.Printf("page %d: table extraction failed during special-case scan: %v", page, err)
			continue
		}
		for _, grid := range grids {
			if len(grid) < 2 {
				continue
			}
			if !m.headerMatches(grid.Header()) {
				continue
			}
			log.Printf("found special-case provider table on page %d", page)
			pagesUsed = append(pagesUsed, page)
			for _, row := range grid.DataRows() {
				if len(row) == 0 {
					continue
				}
				entity := Normalize(row[0])
				if entity == "" {
					continue
				}
				var parts []string
				for _, cell := range row[1:] {
					if n := Normalize(cell); n != "" {
						parts = append(parts, n)
					}
				}
				records = append(records, PartnerRecord{
					Partner:     entity,
					Description: strings.Join(parts, specialDescriptionSeparator),
				})
			}
		}
	}

	return records, pagesUsed
}

// headerMatches reports whether the header text contains every required
// word.
func (m *SpecialCaseMatcher) headerMatches(header []string) bool {
	text := joinHeader(header)
	for _, word := range m.required {
		if !strings.Contains(text, word) {
			return false
		}
	}
	return true
}
