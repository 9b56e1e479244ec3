package xlsx

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/beadscan/beadscan/internal/extract"
)

func TestWriter_WriteAndReadBack(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	result := extract.Result{
		Records: []extract.PartnerRecord{
			{Partner: "Acme Co", Description: "Fiber buildout"},
			{Partner: "Beta LLC", Description: "Middle mile"},
		},
		Pages: []int{3, 4},
	}

	outPath, err := w.Write("New Hampshire", result)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "New_Hampshire_partners.xlsx"), outPath)

	f, err := excelize.OpenFile(outPath)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	header, err := f.GetCellValue(SheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Partner", header)

	partner, err := f.GetCellValue(SheetName, "A3")
	require.NoError(t, err)
	assert.Equal(t, "Beta LLC", partner)

	desc, err := f.GetCellValue(SheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Fiber buildout", desc)
}

func TestWriter_EmptyResultRejected(t *testing.T) {
	w := NewWriter(t.TempDir())

	_, err := w.Write("Kansas", extract.Result{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to write")
}

func TestWriter_CreatesOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w := NewWriter(dir)

	result := extract.Result{
		Records: []extract.PartnerRecord{{Partner: "Acme Co", Description: "x"}},
		Pages:   []int{1},
	}
	outPath, err := w.Write("Kansas", result)
	require.NoError(t, err)
	assert.FileExists(t, outPath)
}

func TestOutputFileName(t *testing.T) {
	assert.Equal(t, "Kansas_partners.xlsx", OutputFileName("Kansas"))
	assert.Equal(t, "New_Hampshire_partners.xlsx", OutputFileName("New Hampshire"))
}
