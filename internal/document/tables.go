package document

import "sort"

// Geometry tuning for grid segmentation, in text-space points.
const (
	// fragmentGlueWidth merges adjacent fragments when font size is
	// unknown.
	fragmentGlueWidth = 6.0
	// fragmentGlueRatio scales the merge distance with the font size.
	fragmentGlueRatio = 0.75
	// wordGapRatio inserts a space between merged fragments that sit a
	// visible word gap apart.
	wordGapRatio = 0.2
)

// textChunk is one visually separated run of text on a row.
type textChunk struct {
	x    float64
	w    float64
	text string
}

// textRow is one baseline of chunks, sorted by X.
type textRow []textChunk

// gridBuilder segments rows of text chunks into table grids: consecutive
// multi-chunk rows form a block, and chunk left edges within a block are
// clustered into column boundaries.
type gridBuilder struct {
	// columnTolerance is the maximum left-edge drift for chunks sharing
	// a column.
	columnTolerance float64
	// minRows is the minimum block height to report a grid.
	minRows int
	// minColumns is the minimum chunk count for a row to look tabular.
	minColumns int
}

// newGridBuilder creates a builder with defaults suited to letter-size
// report layouts.
func newGridBuilder() *gridBuilder {
	return &gridBuilder{
		columnTolerance: 10.0,
		minRows:         2,
		minColumns:      2,
	}
}

// buildGrids walks the page's rows top to bottom and emits one grid per
// run of consecutive tabular rows.
func (b *gridBuilder) buildGrids(rows []textRow) []Grid {
	var grids []Grid
	var block []textRow

	flush := func() {
		if len(block) >= b.minRows {
			if grid := b.blockToGrid(block); len(grid) >= b.minRows {
				grids = append(grids, grid)
			}
		}
		block = nil
	}

	for _, row := range rows {
		if len(row) >= b.minColumns {
			block = append(block, row)
			continue
		}
		flush()
	}
	flush()

	return grids
}

// blockToGrid clusters the block's chunk left edges into columns and
// assigns every chunk to its column slot. Rows may come out ragged when a
// trailing cell is empty.
func (b *gridBuilder) blockToGrid(block []textRow) Grid {
	columns := b.clusterColumns(block)
	if len(columns) < b.minColumns {
		return nil
	}

	grid := make(Grid, 0, len(block))
	for _, row := range block {
		cells := make([]string, len(columns))
		for _, chunk := range row {
			idx := b.columnIndex(columns, chunk.x)
			if cells[idx] != "" {
				cells[idx] += " "
			}
			cells[idx] += chunk.text
		}
		// Trim trailing empties so short rows stay short.
		last := len(cells)
		for last > 0 && cells[last-1] == "" {
			last--
		}
		grid = append(grid, cells[:last])
	}
	return grid
}

// clusterColumns finds the distinct column left edges across a block.
func (b *gridBuilder) clusterColumns(block []textRow) []float64 {
	var edges []float64
	for _, row := range block {
		for _, chunk := range row {
			edges = append(edges, chunk.x)
		}
	}
	sort.Float64s(edges)

	var columns []float64
	for _, edge := range edges {
		if len(columns) == 0 || edge-columns[len(columns)-1] > b.columnTolerance {
			columns = append(columns, edge)
		}
	}
	return columns
}

// columnIndex returns the column whose left edge is closest to x.
func (b *gridBuilder) columnIndex(columns []float64, x float64) int {
	best := 0
	for i := 1; i < len(columns); i++ {
		if abs(x-columns[i]) < abs(x-columns[best]) {
			best = i
		}
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
