// Package export renders document and inventory listings as CSV, XLSX and
// PDF. Every format consumes the same Table so the amounts agree across
// formats and with the amounts shown while editing.
package export

import (
	"time"

	"ledgerbook/internal/calc"
	"ledgerbook/internal/domain"
)

// Kind controls how a column is formatted.
type Kind int

const (
	KindText Kind = iota
	KindAmount
	KindQuantity
	KindPercent
)

// Column describes one table column. Width is in spreadsheet character units
// and is reused as a relative width for PDF layout.
type Column struct {
	Header string
	Width  float64
	Kind   Kind
}

// Cell is either text or a number.
type Cell struct {
	Text  string
	Num   calc.Number
	IsNum bool
}

// TextCell returns a text cell.
func TextCell(s string) Cell { return Cell{Text: s} }

// NumCell returns a numeric cell.
func NumCell(n calc.Number) Cell { return Cell{Num: n, IsNum: true} }

// Table is a format-neutral export.
type Table struct {
	Title       string
	GeneratedAt time.Time
	Columns     []Column
	Rows        [][]Cell
	// Footer is an optional totals row with one cell per column.
	Footer []Cell
}

var documentColumns = []Column{
	{Header: "Date", Width: 12},
	{Header: "Number", Width: 14},
	{Header: "Type", Width: 12},
	{Header: "Party", Width: 24},
	{Header: "Party GSTIN", Width: 17},
	{Header: "Description", Width: 30},
	{Header: "HSN", Width: 10},
	{Header: "Qty", Width: 8, Kind: KindQuantity},
	{Header: "Unit Price", Width: 12, Kind: KindAmount},
	{Header: "Discount %", Width: 10, Kind: KindPercent},
	{Header: "Taxable Value", Width: 14, Kind: KindAmount},
	{Header: "GST %", Width: 8, Kind: KindPercent},
	{Header: "GST Amount", Width: 12, Kind: KindAmount},
	{Header: "Gross Total", Width: 14, Kind: KindAmount},
}

// DocumentTable builds one row per counted line item. Row amounts come from
// calc.CalculateRow and the footer sums them at full precision.
func DocumentTable(title string, docs []domain.Document, now time.Time) *Table {
	t := &Table{Title: title, GeneratedAt: now, Columns: documentColumns}

	var taxable, gst, gross calc.Number
	for i := range docs {
		doc := &docs[i]
		for _, raw := range doc.Items {
			item := calc.Sanitize(raw)
			if !item.Counts() {
				continue
			}
			amt := calc.CalculateRow(item)
			taxable = calc.NumberFromDecimal(taxable.Add(amt.TaxableValue.Decimal))
			gst = calc.NumberFromDecimal(gst.Add(amt.GSTAmount.Decimal))
			gross = calc.NumberFromDecimal(gross.Add(amt.GrossTotal.Decimal))

			t.Rows = append(t.Rows, []Cell{
				TextCell(doc.DocumentDate.Format("2006-01-02")),
				TextCell(doc.Number),
				TextCell(doc.DocumentType.Label()),
				TextCell(doc.PartyName),
				TextCell(doc.PartyGSTIN),
				TextCell(item.Description),
				TextCell(item.HSNCode),
				NumCell(item.Quantity),
				NumCell(item.UnitPrice),
				NumCell(item.DiscountPercent),
				NumCell(amt.TaxableValue),
				NumCell(item.GSTPercent),
				NumCell(amt.GSTAmount),
				NumCell(amt.GrossTotal),
			})
		}
	}

	if len(t.Rows) > 0 {
		t.Footer = []Cell{
			TextCell("Total"), {}, {}, {}, {}, {}, {}, {}, {}, {},
			NumCell(taxable), {}, NumCell(gst), NumCell(gross),
		}
	}
	return t
}

var inventoryColumns = []Column{
	{Header: "Name", Width: 30},
	{Header: "HSN", Width: 10},
	{Header: "Unit", Width: 8},
	{Header: "Quantity", Width: 10, Kind: KindQuantity},
	{Header: "Unit Price", Width: 12, Kind: KindAmount},
	{Header: "GST %", Width: 8, Kind: KindPercent},
	{Header: "Stock Value", Width: 14, Kind: KindAmount},
}

// InventoryTable builds one row per inventory item. Stock value is quantity
// times unit price before tax.
func InventoryTable(title string, items []domain.InventoryItem, now time.Time) *Table {
	t := &Table{Title: title, GeneratedAt: now, Columns: inventoryColumns}

	var total calc.Number
	for i := range items {
		it := &items[i]
		value := calc.CalculateRow(calc.LineItem{
			Description: it.Name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}).TaxableValue
		total = calc.NumberFromDecimal(total.Add(value.Decimal))

		t.Rows = append(t.Rows, []Cell{
			TextCell(it.Name),
			TextCell(it.HSNCode),
			TextCell(it.Unit),
			NumCell(it.Quantity),
			NumCell(it.UnitPrice),
			NumCell(it.GSTPercent),
			NumCell(value),
		})
	}
	if len(t.Rows) > 0 {
		t.Footer = []Cell{TextCell("Total"), {}, {}, {}, {}, {}, NumCell(total)}
	}
	return t
}

// plain formats a cell for machine-readable outputs: amounts with two
// decimals, other numbers without trailing zeros.
func plain(c Cell, k Kind) string {
	if !c.IsNum {
		return c.Text
	}
	if k == KindAmount {
		return c.Num.Fixed2()
	}
	return c.Num.Round2().String()
}
