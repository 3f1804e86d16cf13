package importer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCSV reads an inventory CSV. A leading UTF-8 BOM is ignored.
func ParseCSV(r io.Reader, maxRows int) (*Result, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && string(head) == string(utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	b, err := newBuilder(header, maxRows)
	if err != nil {
		return nil, err
	}

	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				line = perr.StartLine
			} else {
				line++
			}
			b.result.TotalRows++
			b.result.Errors = append(b.result.Errors, RowError{Row: line, Message: "malformed row: " + err.Error()})
			continue
		}
		// Blank lines are skipped by the reader, so take the position from it.
		line, _ = cr.FieldPos(0)
		if err := b.add(line, record); err != nil {
			return nil, err
		}
	}
	return b.finish()
}
