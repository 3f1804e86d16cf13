package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the single worksheet in XLSX exports.
const SheetName = "Export"

// headerRow is the 1-based row holding column headers; rows above it carry
// the title block.
const headerRow = 5

// Built-in Excel number formats.
const (
	numFmtAmount  = 4 // #,##0.00
	numFmtDecimal = 2 // 0.00
)

// WriteXLSX writes t as a single-sheet workbook with fixed column widths, a
// bold header row and numeric cells.
func WriteXLSX(w io.Writer, t *Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("xlsx rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx header style: %w", err)
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: numFmtAmount})
	if err != nil {
		return fmt.Errorf("xlsx amount style: %w", err)
	}
	decimal, err := f.NewStyle(&excelize.Style{NumFmt: numFmtDecimal})
	if err != nil {
		return fmt.Errorf("xlsx decimal style: %w", err)
	}
	boldAmount, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: numFmtAmount})
	if err != nil {
		return fmt.Errorf("xlsx footer style: %w", err)
	}

	set := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(SheetName, cell, v)
	}

	if err := set(1, 1, t.Title); err != nil {
		return fmt.Errorf("xlsx title: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "A1", bold); err != nil {
		return fmt.Errorf("xlsx title style: %w", err)
	}
	if err := set(1, 2, "Generated At"); err != nil {
		return err
	}
	if err := set(2, 2, t.GeneratedAt.Format(time.RFC3339)); err != nil {
		return err
	}
	if err := set(1, 3, "Rows"); err != nil {
		return err
	}
	if err := set(2, 3, len(t.Rows)); err != nil {
		return err
	}

	for i, col := range t.Columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("xlsx column %d: %w", i+1, err)
		}
		if err := f.SetColWidth(SheetName, name, name, col.Width); err != nil {
			return fmt.Errorf("xlsx column width: %w", err)
		}
		if err := set(i+1, headerRow, col.Header); err != nil {
			return fmt.Errorf("xlsx header: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(t.Columns), headerRow)
	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	if err := f.SetCellStyle(SheetName, first, last, bold); err != nil {
		return fmt.Errorf("xlsx header style: %w", err)
	}

	writeRow := func(rowNum int, cells []Cell, footer bool) error {
		for i, col := range t.Columns {
			if i >= len(cells) {
				break
			}
			c := cells[i]
			cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
			if err != nil {
				return err
			}
			if !c.IsNum {
				if c.Text == "" {
					continue
				}
				if err := f.SetCellStr(SheetName, cell, c.Text); err != nil {
					return err
				}
				if footer {
					if err := f.SetCellStyle(SheetName, cell, cell, bold); err != nil {
						return err
					}
				}
				continue
			}
			v := c.Num.Round2().InexactFloat64()
			if err := f.SetCellFloat(SheetName, cell, v, -1, 64); err != nil {
				return err
			}
			style := decimal
			switch {
			case footer:
				style = boldAmount
			case col.Kind == KindAmount:
				style = amount
			}
			if err := f.SetCellStyle(SheetName, cell, cell, style); err != nil {
				return err
			}
		}
		return nil
	}

	rowNum := headerRow + 1
	for _, cells := range t.Rows {
		if err := writeRow(rowNum, cells, false); err != nil {
			return fmt.Errorf("xlsx row %d: %w", rowNum, err)
		}
		rowNum++
	}
	if t.Footer != nil {
		if err := writeRow(rowNum, t.Footer, true); err != nil {
			return fmt.Errorf("xlsx footer: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
