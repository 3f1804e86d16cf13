package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads the first worksheet of an inventory workbook. The first
// non-empty row is the header.
func ParseXLSX(r io.Reader, maxRows int) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("reading xlsx rows: %w", err)
	}

	start := 0
	for start < len(rows) && isBlank(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil, ErrEmptyFile
	}

	b, err := newBuilder(rows[start], maxRows)
	if err != nil {
		return nil, err
	}
	for i := start + 1; i < len(rows); i++ {
		if err := b.add(i+1, rows[i]); err != nil {
			return nil, err
		}
	}
	return b.finish()
}
