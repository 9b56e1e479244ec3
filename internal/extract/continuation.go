package extract

import (
	"log"

	"github.com/beadscan/beadscan/internal/document"
)

// ContinuationMatcher walks forward from a selected table's page and
// stitches in tables that continue it on strictly consecutive pages. The
// first page without an acceptable continuation ends the walk for good; a
// matching table after a gap is never included.
type ContinuationMatcher struct {
	classifier *HeaderClassifier
	rows       *RowExtractor
}

// NewContinuationMatcher creates a continuation matcher sharing the
// pipeline's header classifier and row extractor.
func NewContinuationMatcher(classifier *HeaderClassifier, rows *RowExtractor) *ContinuationMatcher {
	return &ContinuationMatcher{classifier: classifier, rows: rows}
}

// Extend collects rows from continuation tables after the selected
// candidate. It returns the stitched rows and the pages they came from.
func (cm *ContinuationMatcher) Extend(src PageSource, selected Candidate) ([]PartnerRecord, []int) {
	var allRows []PartnerRecord
	var pagesUsed []int

	numPages := src.PageCount()
	for page := selected.Page + 1; page <= numPages; page++ {
		grids, err := src.ExtractTables(page)
		if err != nil {
			log.Printf("page %d: table extraction failed during continuation scan: %v", page, err)
			break
		}

		rows, ok := cm.matchPage(grids, selected)
		if !ok {
			break
		}
		allRows = append(allRows, rows...)
		pagesUsed = append(pagesUsed, page)
	}

	return allRows, pagesUsed
}

// matchPage finds the first table on a page that continues the selected
// table and extracts its rows. ok is false when no table matches or the
// matching table yields no rows.
func (cm *ContinuationMatcher) matchPage(grids []document.Grid, selected Candidate) ([]PartnerRecord, bool) {
	widest := selected.EntityCol
	if selected.DescCol > widest {
		widest = selected.DescCol
	}

	for _, grid := range grids {
		if len(grid) < 1 {
			continue
		}
		header := grid.Header()

		if descriptionRe.MatchString(joinHeader(header)) {
			// Repeated header: re-resolve the columns locally.
			localDesc := cm.classifier.DescriptionIndex(header)
			localEntity := cm.classifier.EntityIndex(header, localDesc)

			// The entity header may be truncated or reworded on a
			// continuation page; when the table is wide enough to hold
			// both original columns, reuse them positionally.
			if localEntity < 0 && len(header) >= widest+1 {
				localEntity = selected.EntityCol
				if localDesc < 0 {
					localDesc = selected.DescCol
				}
			}
			if localEntity < 0 {
				continue
			}
			if rows := cm.rows.Extract(grid, localEntity, localDesc); len(rows) > 0 {
				return rows, true
			}
			return nil, false
		}

		// Silent continuation: no header to verify against, so fall back
		// to structural similarity. The table must be at least as wide as
		// the original table and must carry something in the original
		// entity column (or the first column).
		entityLikeCount := 0
		for _, row := range grid.DataRows() {
			if len(row) == 0 {
				continue
			}
			if cellAt(row, selected.EntityCol) != "" {
				entityLikeCount++
			} else if cellAt(row, 0) != "" {
				entityLikeCount++
			}
		}
		if entityLikeCount >= 1 && len(header) >= selected.Columns {
			if rows := cm.rows.Extract(grid, selected.EntityCol, selected.DescCol); len(rows) > 0 {
				return rows, true
			}
			return nil, false
		}
	}
	return nil, false
}
