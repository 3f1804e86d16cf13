package importer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ledgerbook/internal/domain"
	"ledgerbook/internal/importer"
)

func TestParseCSV(t *testing.T) {
	in := "\xEF\xBB\xBFItem Name,HSN Code,Qty,Rate,GST %,Unit\n" +
		"Bolt,7318,\"1,200\",4.50,18%,pcs\n" +
		"Nut,7318,-3,1,18,pcs\n" +
		"\n" +
		",7318,1,1,18,pcs\n" +
		"bolt,7318,5,4,18,pcs\n" +
		"Washer,73AB,abc,1,5,pcs\n"

	res, err := importer.ParseCSV(strings.NewReader(in), 0)
	require.NoError(t, err)

	assert.Equal(t, 5, res.TotalRows)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Bolt", res.Items[0].Name)
	assert.Equal(t, "1200.00", res.Items[0].Quantity.Fixed2())
	assert.Equal(t, "4.50", res.Items[0].UnitPrice.Fixed2())
	assert.Equal(t, "18.00", res.Items[0].GSTPercent.Fixed2())
	assert.True(t, res.Items[1].Quantity.IsZero(), "negative stock is clamped")

	byRow := map[int][]importer.RowError{}
	for _, e := range res.Errors {
		byRow[e.Row] = append(byRow[e.Row], e)
	}
	require.Len(t, byRow[5], 1)
	assert.Equal(t, "name", byRow[5][0].Column)
	assert.Equal(t, "is required", byRow[5][0].Message)

	require.Len(t, byRow[6], 1)
	assert.Equal(t, "duplicate of row 2", byRow[6][0].Message)

	require.Len(t, byRow[7], 2)
	cols := []string{byRow[7][0].Column, byRow[7][1].Column}
	assert.ElementsMatch(t, []string{"hsn_code", "quantity"}, cols)
}

func TestParseCSV_MissingNameColumn(t *testing.T) {
	_, err := importer.ParseCSV(strings.NewReader("sku,qty\nA1,3\n"), 0)
	assert.ErrorIs(t, err, importer.ErrMissingNameColumn)
}

func TestParseCSV_Empty(t *testing.T) {
	_, err := importer.ParseCSV(strings.NewReader(""), 0)
	assert.ErrorIs(t, err, domain.ErrEmptyImport)

	_, err = importer.ParseCSV(strings.NewReader("name,qty\n\n"), 0)
	assert.ErrorIs(t, err, domain.ErrEmptyImport)
}

func TestParseCSV_TooManyRows(t *testing.T) {
	_, err := importer.ParseCSV(strings.NewReader("name\na\nb\nc\n"), 2)
	assert.ErrorIs(t, err, importer.ErrTooManyRows)
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Name", "HSN", "Quantity", "Unit Price", "GST"},
		{"Cable", "8544", 10, 120.5, 18},
		{"", "", "", "", ""},
		{"Switch", "85", 2, 300, 18},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	res, err := importer.ParseXLSX(&buf, 100)
	require.NoError(t, err)

	assert.Equal(t, 2, res.TotalRows)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Cable", res.Items[0].Name)
	assert.Equal(t, "120.50", res.Items[0].UnitPrice.Fixed2())

	require.Len(t, res.Errors, 1)
	assert.Equal(t, 5, res.Errors[0].Row)
	assert.Equal(t, "hsn_code", res.Errors[0].Column)
}

func TestParse_UnsupportedExtension(t *testing.T) {
	_, err := importer.Parse("stock.pdf", strings.NewReader(""), 0)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestRowError_Error(t *testing.T) {
	e := importer.RowError{Row: 3, Column: "quantity", Message: "must be a number"}
	assert.Equal(t, `row 3, column "quantity": must be a number`, e.Error())
}
