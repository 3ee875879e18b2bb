// Package export renders a document's chapters to downloadable formats.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/dgallion1/bookseg/internal/store"
)

const sheetName = "Chapters"

var columns = []string{"Order", "Part", "Number", "Title", "Level", "Tokens", "Content"}

// Excel writes the chapters as a single-sheet workbook, one row per
// chapter in reading order.
func Excel(w io.Writer, doc store.Document, chapters []store.Chapter) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)
	if err := f.SetDocProps(&excelize.DocProperties{Title: doc.Title}); err != nil {
		return fmt.Errorf("set properties: %w", err)
	}

	for i, name := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for row, ch := range chapters {
		values := []any{ch.Ord, ch.Part, ch.Number, ch.Title, ch.Level, ch.TokenCount, ch.Content}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	// Wide title and content columns so the sheet is readable as-is.
	if err := f.SetColWidth(sheetName, "D", "D", 40); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "G", "G", 80); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
