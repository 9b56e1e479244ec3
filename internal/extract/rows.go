package extract

import (
	"strings"

	"github.com/beadscan/beadscan/internal/document"
)

// RowExtractor converts a qualified grid into partner records given
// resolved column indexes.
type RowExtractor struct{}

// NewRowExtractor creates a row extractor.
func NewRowExtractor() *RowExtractor {
	return &RowExtractor{}
}

// Extract reads the entity and description cells of every data row.
// Out-of-range indexes read as empty. When the description cell is blank
// but the row extends past the description column, the remaining non-empty
// cells are joined with single spaces; inconsistent column splitting often
// spills a description into the columns to its right.
func (re *RowExtractor) Extract(grid document.Grid, entityCol, descCol int) []PartnerRecord {
	var records []PartnerRecord
	for _, row := range grid.DataRows() {
		if len(row) == 0 {
			continue
		}
		entity := cellAt(row, entityCol)
		desc := cellAt(row, descCol)

		if desc == "" && descCol >= 0 && len(row) > descCol {
			var parts []string
			for _, cell := range row[descCol:] {
				if n := Normalize(cell); n != "" {
					parts = append(parts, n)
				}
			}
			desc = strings.Join(parts, " ")
		}

		if entity != "" || desc != "" {
			records = append(records, PartnerRecord{Partner: entity, Description: desc})
		}
	}
	return records
}
