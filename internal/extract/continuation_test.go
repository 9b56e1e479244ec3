package extract

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beadscan/beadscan/internal/document"
)

func newTestContinuation() *ContinuationMatcher {
	classifier := NewHeaderClassifier(nil, 0)
	return NewContinuationMatcher(classifier, NewRowExtractor())
}

// selectedAt builds the candidate the continuation walk starts from.
func selectedAt(page int) Candidate {
	return Candidate{Page: page, EntityCol: 0, DescCol: 1, Columns: 2}
}

// silentGrid is a continuation table with no repeated header: its first
// row is plain data.
func silentGrid(rows ...[]string) document.Grid {
	return document.Grid(rows)
}

func TestContinuation_StrictlyConsecutive(t *testing.T) {
	cm := newTestContinuation()

	match := silentGrid(
		[]string{"Carry Over Co", "started on the previous page"},
		[]string{"Next Org", "more of the same table"},
	)
	src := &fakeSource{
		pages: 6,
		tables: map[int][]document.Grid{
			3: {match},
			4: {match},
			// page 5 has nothing table-like
			6: {match},
		},
	}

	rows, pages := cm.Extend(src, selectedAt(3))
	// Page 6 matches structurally but sits after the page-5 gap, so it
	// is never stitched.
	assert.Equal(t, []int{4}, pages)
	require.Len(t, rows, 1)
	assert.Equal(t, "Next Org", rows[0].Partner)
}

func TestContinuation_RepeatedHeader(t *testing.T) {
	cm := newTestContinuation()

	src := &fakeSource{
		pages: 2,
		tables: map[int][]document.Grid{
			2: {{
				{"Partner", "Description"},
				{"Acme Co", "continued rows"},
			}},
		},
	}

	rows, pages := cm.Extend(src, selectedAt(1))
	assert.Equal(t, []int{2}, pages)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme Co", rows[0].Partner)
}

func TestContinuation_RepeatedHeaderPositionalFallback(t *testing.T) {
	cm := newTestContinuation()

	// The repeated header kept the description token but lost the
	// recognizable entity wording; with enough columns the original
	// indexes are reused positionally.
	src := &fakeSource{
		pages: 2,
		tables: map[int][]document.Grid{
			2: {{
				{"(continued)", "Description"},
				{"Acme Co", "still the same table"},
			}},
		},
	}

	rows, pages := cm.Extend(src, selectedAt(1))
	assert.Equal(t, []int{2}, pages)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme Co", rows[0].Partner)
}

func TestContinuation_RepeatedHeaderTooNarrowForFallback(t *testing.T) {
	cm := newTestContinuation()

	selected := Candidate{Page: 1, EntityCol: 2, DescCol: 3, Columns: 4}
	src := &fakeSource{
		pages: 2,
		tables: map[int][]document.Grid{
			2: {{
				{"Notes", "Description"},
				{"x", "y"},
			}},
		},
	}

	rows, pages := cm.Extend(src, selected)
	assert.Empty(t, pages)
	assert.Empty(t, rows)
}

func TestContinuation_SilentRequiresEnoughColumns(t *testing.T) {
	cm := newTestContinuation()

	src := &fakeSource{
		pages: 2,
		tables: map[int][]document.Grid{
			2: {silentGrid(
				[]string{"single column"},
				[]string{"not wide enough"},
			)},
		},
	}

	rows, pages := cm.Extend(src, selectedAt(1))
	assert.Empty(t, pages)
	assert.Empty(t, rows)
}

func TestContinuation_SilentRequiresOriginalWidth(t *testing.T) {
	cm := newTestContinuation()

	// The original table carried a third column beyond entity and
	// description; a narrower follow-on table is not a continuation.
	selected := Candidate{Page: 1, EntityCol: 0, DescCol: 1, Columns: 3}
	src := &fakeSource{
		pages: 2,
		tables: map[int][]document.Grid{
			2: {silentGrid(
				[]string{"Org A", "row one"},
				[]string{"Org B", "row two"},
			)},
		},
	}

	rows, pages := cm.Extend(src, selected)
	assert.Empty(t, pages)
	assert.Empty(t, rows)
}

func TestContinuation_StopsOnExtractionFailure(t *testing.T) {
	cm := newTestContinuation()

	match := silentGrid(
		[]string{"Org A", "row"},
		[]string{"Org B", "row"},
	)
	src := &fakeSource{
		pages:    4,
		errPages: map[int]error{2: fmt.Errorf("page 2: broken content stream")},
		tables: map[int][]document.Grid{
			3: {match},
		},
	}

	rows, pages := cm.Extend(src, selectedAt(1))
	assert.Empty(t, pages)
	assert.Empty(t, rows)
}

func TestContinuation_FirstMatchingTableOnPageWins(t *testing.T) {
	cm := newTestContinuation()

	narrow := silentGrid([]string{"only one"})
	match := silentGrid(
		[]string{"Org A", "row one"},
		[]string{"Org B", "row two"},
	)
	src := &fakeSource{
		pages: 2,
		tables: map[int][]document.Grid{
			2: {narrow, match},
		},
	}

	rows, pages := cm.Extend(src, selectedAt(1))
	assert.Equal(t, []int{2}, pages)
	require.Len(t, rows, 1)
	assert.Equal(t, "Org B", rows[0].Partner)
}
