package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"ledgerbook/internal/domain"
	"ledgerbook/internal/port"
)

// Exporter writes tables in any supported format.
type Exporter struct {
	pdf port.PDFRenderer
}

// NewExporter creates an Exporter. pdf may be nil, in which case PDF exports
// fail with ErrPDFUnavailable.
func NewExporter(pdf port.PDFRenderer) *Exporter {
	return &Exporter{pdf: pdf}
}

// ErrPDFUnavailable is returned when no PDF renderer is configured.
var ErrPDFUnavailable = fmt.Errorf("%w: pdf renderer not configured", domain.ErrUnsupportedExportFormat)

// Write renders t in format to w.
func (e *Exporter) Write(ctx context.Context, w io.Writer, format domain.ExportFormat, t *Table) error {
	switch format {
	case domain.ExportFormatCSV:
		return WriteCSV(w, t)
	case domain.ExportFormatXLSX:
		return WriteXLSX(w, t)
	case domain.ExportFormatPDF:
		return e.writePDF(ctx, w, t)
	default:
		return domain.ErrUnsupportedExportFormat
	}
}

// Bytes renders t in format and returns the encoded file.
func (e *Exporter) Bytes(ctx context.Context, format domain.ExportFormat, t *Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Write(ctx, &buf, format, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Exporter) writePDF(ctx context.Context, w io.Writer, t *Table) error {
	if e.pdf == nil {
		return ErrPDFUnavailable
	}
	page, err := RenderHTML(t)
	if err != nil {
		return err
	}
	data, err := e.pdf.RenderPDF(ctx, page, true)
	if err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename replaces characters outside [a-zA-Z0-9_-] with _,
// collapses runs of underscores and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "export"
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.{ext}.
func BuildFilename(name string, format domain.ExportFormat, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), now.Format("2006-01-02"), format)
}
