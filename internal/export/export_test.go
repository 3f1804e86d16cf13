package export_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ledgerbook/internal/calc"
	"ledgerbook/internal/domain"
	"ledgerbook/internal/export"
)

var generatedAt = time.Date(2025, 4, 1, 10, 30, 0, 0, time.UTC)

func sampleDocs() []domain.Document {
	return []domain.Document{
		{
			DocumentType: domain.DocTypeInvoice,
			Number:       "INV-001",
			DocumentDate: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
			PartyName:    `Sharma "& Sons"`,
			Items: domain.LineItems{
				{Description: "Widget", Quantity: calc.NewNumber(2), UnitPrice: calc.NewNumber(500), GSTPercent: calc.NewNumber(18), DiscountPercent: calc.NewNumber(10)},
				{Description: "  ", Quantity: calc.NewNumber(5), UnitPrice: calc.NewNumber(100)},
				{Description: "Gadget", Quantity: calc.NewNumber(1), UnitPrice: calc.NewNumber(1000), GSTPercent: calc.NewNumber(18)},
			},
		},
	}
}

func TestDocumentTable_UsesRowCalculator(t *testing.T) {
	tbl := export.DocumentTable("Invoices", sampleDocs(), generatedAt)

	require.Len(t, tbl.Rows, 2, "blank description rows are not exported")
	widget := tbl.Rows[0]
	assert.Equal(t, "Widget", widget[5].Text)
	assert.Equal(t, "900.00", widget[10].Num.Fixed2())
	assert.Equal(t, "162.00", widget[12].Num.Fixed2())
	assert.Equal(t, "1062.00", widget[13].Num.Fixed2())

	require.NotNil(t, tbl.Footer)
	assert.Equal(t, "1900.00", tbl.Footer[10].Num.Fixed2())
	assert.Equal(t, "342.00", tbl.Footer[12].Num.Fixed2())
	assert.Equal(t, "2242.00", tbl.Footer[13].Num.Fixed2())
}

func TestDocumentTable_Empty(t *testing.T) {
	tbl := export.DocumentTable("Expenses", nil, generatedAt)
	assert.Empty(t, tbl.Rows)
	assert.Nil(t, tbl.Footer)
}

func TestInventoryTable_StockValue(t *testing.T) {
	tbl := export.InventoryTable("Inventory", []domain.InventoryItem{
		{Name: "Bolt", Quantity: calc.NewNumber(12.5), UnitPrice: calc.NewNumber(4)},
		{Name: "Nut", Quantity: calc.NewNumber(3), UnitPrice: calc.NewNumber(1.25)},
	}, generatedAt)

	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "50.00", tbl.Rows[0][6].Num.Fixed2())
	assert.Equal(t, "53.75", tbl.Footer[6].Num.Fixed2())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, export.DocumentTable("Invoices", sampleDocs(), generatedAt)))

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, export.BOM))

	lines := strings.Split(strings.TrimSuffix(string(out[len(export.BOM):]), "\r\n"), "\r\n")
	require.Len(t, lines, 8)
	assert.Equal(t, `"Invoices"`, lines[0])
	assert.Equal(t, `"Generated At","2025-04-01T10:30:00Z"`, lines[1])
	assert.Equal(t, `"Rows","2"`, lines[2])
	assert.Equal(t, "", lines[3])
	assert.True(t, strings.HasPrefix(lines[4], `"Date","Number","Type","Party"`))
	assert.Contains(t, lines[5], `"Sharma ""& Sons"""`)
	assert.Contains(t, lines[5], `"900.00","18","162.00","1062.00"`)
	assert.True(t, strings.HasPrefix(lines[7], `"Total"`))
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteXLSX(&buf, export.DocumentTable("Invoices", sampleDocs(), generatedAt)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{export.SheetName}, f.GetSheetList())

	title, err := f.GetCellValue(export.SheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Invoices", title)

	header, err := f.GetCellValue(export.SheetName, "N5")
	require.NoError(t, err)
	assert.Equal(t, "Gross Total", header)

	gross, err := f.GetCellValue(export.SheetName, "N6", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1062", gross)

	width, err := f.GetColWidth(export.SheetName, "F")
	require.NoError(t, err)
	assert.Equal(t, float64(30), width)
}

func TestRenderHTML(t *testing.T) {
	page, err := export.RenderHTML(export.DocumentTable("Invoices", sampleDocs(), generatedAt))
	require.NoError(t, err)

	assert.Contains(t, page, "size: A4 landscape")
	assert.Contains(t, page, "<thead>")
	assert.Contains(t, page, "1,062.00")
	assert.Contains(t, page, "Sharma &#34;&amp; Sons&#34;")
	assert.Equal(t, 14, strings.Count(page, "<col style="))
}

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "1,234.50", export.FormatINR(1234.5))
	assert.Equal(t, "0.00", export.FormatINR(0))
}

type fakeRenderer struct {
	html      string
	landscape bool
	err       error
}

func (f *fakeRenderer) RenderPDF(_ context.Context, html string, landscape bool) ([]byte, error) {
	f.html, f.landscape = html, landscape
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4"), nil
}

func TestExporter_PDF(t *testing.T) {
	r := &fakeRenderer{}
	e := export.NewExporter(r)

	data, err := e.Bytes(context.Background(), domain.ExportFormatPDF, export.DocumentTable("Invoices", sampleDocs(), generatedAt))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
	assert.True(t, r.landscape)
	assert.Contains(t, r.html, "INV-001")
}

func TestExporter_PDFFailureIsReported(t *testing.T) {
	e := export.NewExporter(&fakeRenderer{err: assert.AnError})
	_, err := e.Bytes(context.Background(), domain.ExportFormatPDF, export.DocumentTable("x", nil, generatedAt))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestExporter_NoRenderer(t *testing.T) {
	e := export.NewExporter(nil)
	_, err := e.Bytes(context.Background(), domain.ExportFormatPDF, export.DocumentTable("x", nil, generatedAt))
	assert.ErrorIs(t, err, domain.ErrUnsupportedExportFormat)
}

func TestExporter_UnknownFormat(t *testing.T) {
	e := export.NewExporter(nil)
	_, err := e.Bytes(context.Background(), "docx", export.DocumentTable("x", nil, generatedAt))
	assert.ErrorIs(t, err, domain.ErrUnsupportedExportFormat)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "Sales_Q1_2025", export.SanitizeFilename("Sales (Q1) 2025"))
	assert.Equal(t, "export", export.SanitizeFilename("///"))
	assert.Len(t, export.SanitizeFilename(strings.Repeat("a", 150)), 100)
}

func TestBuildFilename(t *testing.T) {
	assert.Equal(t, "purchases_2025-04-01.xlsx", export.BuildFilename("purchases", domain.ExportFormatXLSX, generatedAt))
}
