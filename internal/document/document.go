package document

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// Document is an opened PDF exposing per-page text and table grids. It
// owns the underlying file handle until Close.
type Document struct {
	file    *os.File
	reader  *pdf.Reader
	builder *gridBuilder
}

// Open opens and parses a PDF file.
func Open(path string) (*Document, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return &Document{
		file:    f,
		reader:  reader,
		builder: newGridBuilder(),
	}, nil
}

// Close releases the underlying file handle.
func (d *Document) Close() error {
	return d.file.Close()
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.reader.NumPage()
}

// ExtractText returns the plain text of one page (1-based).
func (d *Document) ExtractText(pageNum int) (string, error) {
	page, err := d.page(pageNum)
	if err != nil {
		return "", err
	}
	content, err := page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("page %d: failed to extract text: %w", pageNum, err)
	}
	return content, nil
}

// ExtractTables segments the positioned text of one page (1-based) into
// zero or more table grids.
func (d *Document) ExtractTables(pageNum int) ([]Grid, error) {
	page, err := d.page(pageNum)
	if err != nil {
		return nil, err
	}
	pdfRows, err := page.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("page %d: failed to extract positioned text: %w", pageNum, err)
	}

	rows := make([]textRow, 0, len(pdfRows))
	for _, r := range pdfRows {
		if row := mergeFragments(r.Content); len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return d.builder.buildGrids(rows), nil
}

// page fetches and checks one page object.
func (d *Document) page(pageNum int) (pdf.Page, error) {
	if pageNum < 1 || pageNum > d.reader.NumPage() {
		return pdf.Page{}, fmt.Errorf("invalid page number %d (document has %d pages)",
			pageNum, d.reader.NumPage())
	}
	page := d.reader.Page(pageNum)
	if page.V.IsNull() {
		return pdf.Page{}, fmt.Errorf("page %d has no content", pageNum)
	}
	return page, nil
}

// mergeFragments joins a row's raw text fragments into visually separated
// chunks. Fragments closer than the glue distance belong to the same cell
// text; anything wider starts a new chunk.
func mergeFragments(fragments []pdf.Text) textRow {
	var row textRow
	var current *textChunk

	for _, frag := range fragments {
		if frag.S == "" {
			continue
		}
		glue := fragmentGlueWidth
		if frag.FontSize > 0 {
			glue = frag.FontSize * fragmentGlueRatio
		}
		if current != nil && frag.X-(current.x+current.w) <= glue {
			if frag.X-(current.x+current.w) > frag.FontSize*wordGapRatio {
				current.text += " "
			}
			current.text += frag.S
			current.w = frag.X + frag.W - current.x
			continue
		}
		row = append(row, textChunk{x: frag.X, w: frag.W, text: frag.S})
		current = &row[len(row)-1]
	}
	return row
}
