// Package export builds spreadsheet artifacts from report data.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SheetSpec describes one sheet of a workbook: a title, a header row and
// the data rows below it.
type SheetSpec struct {
	Title  string
	Header []string
	Rows   [][]string
}

// BuildWorkbook renders the sheets into a single xlsx file.
func BuildWorkbook(sheets []SheetSpec) (*excelize.File, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook needs at least one sheet")
	}

	f := excelize.NewFile()
	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	for i, sheet := range sheets {
		name := sheet.Title
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("new sheet: %w", err)
			}
		}

		for col, header := range sheet.Header {
			cell := fmt.Sprintf("%s1", columnName(col+1))
			if err := f.SetCellStr(name, cell, header); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
		end := columnName(len(sheet.Header)) + "1"
		_ = f.SetCellStyle(name, "A1", end, bold)
		_ = f.AutoFilter(name, "A1:"+end, nil)

		for r, row := range sheet.Rows {
			for c, value := range row {
				cell := fmt.Sprintf("%s%d", columnName(c+1), r+2)
				if err := f.SetCellStr(name, cell, value); err != nil {
					return nil, fmt.Errorf("set cell %s: %w", cell, err)
				}
			}
		}

		// Width from the header and the first rows, clamped to keep the
		// sheet readable.
		for c := 1; c <= len(sheet.Header); c++ {
			widest := len(sheet.Header[c-1])
			for r := 0; r < minInt(50, len(sheet.Rows)); r++ {
				if l := len(sheet.Rows[r][c-1]); l > widest {
					widest = l
				}
			}
			width := float64(widest) * 0.9
			if width < 12 {
				width = 12
			}
			if width > 40 {
				width = 40
			}
			_ = f.SetColWidth(name, columnName(c), columnName(c), width)
		}
	}

	return f, nil
}

// WorkbookBytes serializes the workbook into an in-memory xlsx payload.
func WorkbookBytes(sheets []SheetSpec) ([]byte, error) {
	f, err := BuildWorkbook(sheets)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func columnName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
