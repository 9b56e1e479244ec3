package document

// Grid is one table segmented out of a page: rows of cell text in reading
// order. Row 0 is conventionally the header. Rows are not guaranteed to be
// rectangular; a row may carry fewer cells than the header.
type Grid [][]string

// Header returns the first row, or nil for an empty grid.
func (g Grid) Header() []string {
	if len(g) == 0 {
		return nil
	}
	return g[0]
}

// DataRows returns every row after the header.
func (g Grid) DataRows() [][]string {
	if len(g) < 2 {
		return nil
	}
	return g[1:]
}

// Columns returns the width of the header row.
func (g Grid) Columns() int {
	return len(g.Header())
}