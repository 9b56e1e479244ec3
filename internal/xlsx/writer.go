package xlsx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/beadscan/beadscan/internal/extract"
)

// SheetName is the single sheet every workbook carries.
const SheetName = "Partners"

// outputDirPerm is the permission for a created output directory.
const outputDirPerm = 0o750

// Writer serializes extraction results into Excel workbooks, one per
// document.
type Writer struct {
	outputDir string
}

// NewWriter creates a writer targeting the given output directory. The
// directory is created on first use.
func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

// Write saves one document's records as <label>_partners.xlsx and returns
// the written path.
func (w *Writer) Write(label string, result extract.Result) (string, error) {
	if result.Empty() {
		return "", fmt.Errorf("nothing to write for %q", label)
	}
	if err := os.MkdirAll(w.outputDir, outputDirPerm); err != nil {
		return "", fmt.Errorf("cannot create output directory %s: %w", w.outputDir, err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return "", fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetCellValue(SheetName, "A1", "Partner"); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellValue(SheetName, "B1", "Description"); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	for i, rec := range result.Records {
		rowNum := i + 2
		partnerCell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return "", fmt.Errorf("failed to address row %d: %w", rowNum, err)
		}
		descCell, err := excelize.CoordinatesToCellName(2, rowNum)
		if err != nil {
			return "", fmt.Errorf("failed to address row %d: %w", rowNum, err)
		}
		if err := f.SetCellValue(SheetName, partnerCell, rec.Partner); err != nil {
			return "", fmt.Errorf("failed to write row %d: %w", rowNum, err)
		}
		if err := f.SetCellValue(SheetName, descCell, rec.Description); err != nil {
			return "", fmt.Errorf("failed to write row %d: %w", rowNum, err)
		}
	}

	outPath := filepath.Join(w.outputDir, OutputFileName(label))
	if err := f.SaveAs(outPath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return outPath, nil
}

// OutputFileName derives the workbook file name for a document label.
func OutputFileName(label string) string {
	return strings.ReplaceAll(label, " ", "_") + "_partners.xlsx"
}
