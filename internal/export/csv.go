package export

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"
)

// BOM is the UTF-8 byte order mark. Excel on Windows needs it to detect UTF-8.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes t as CSV: a BOM, a header block (title, generation time,
// row count, blank line), the column header and the rows. Every field is
// double-quoted.
func WriteCSV(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(BOM); err != nil {
		return err
	}

	writeRecord(bw, []string{t.Title})
	writeRecord(bw, []string{"Generated At", t.GeneratedAt.Format(time.RFC3339)})
	writeRecord(bw, []string{"Rows", strconv.Itoa(len(t.Rows))})
	bw.WriteString("\r\n")

	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Header
	}
	writeRecord(bw, header)

	for _, row := range t.Rows {
		writeRecord(bw, t.format(row))
	}
	if t.Footer != nil {
		writeRecord(bw, t.format(t.Footer))
	}
	return bw.Flush()
}

func (t *Table) format(row []Cell) []string {
	out := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		if i < len(row) {
			out[i] = plain(row[i], col.Kind)
		}
	}
	return out
}

func writeRecord(w *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			w.WriteByte(',')
		}
		w.WriteByte('"')
		w.WriteString(strings.ReplaceAll(f, `"`, `""`))
		w.WriteByte('"')
	}
	w.WriteString("\r\n")
}
