package calc

import (
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Adjustments are document-level amounts applied after row totals.
// Discount is an absolute currency amount.
type Adjustments struct {
	Shipping Number `json:"shipping"`
	Discount Number `json:"discount"`
}

// Totals is the tax breakdown and payable amount of a document.
type Totals struct {
	Subtotal Number `json:"subtotal"`
	TotalGST Number `json:"total_gst"`
	CGST     Number `json:"cgst"`
	SGST     Number `json:"sgst"`
	IGST     Number `json:"igst"`
	Shipping Number `json:"shipping"`
	Discount Number `json:"discount"`
	Total    Number `json:"total"`
}

// Aggregate reduces rows and adjustments into document totals. Rows with a
// blank description are ignored. GST is always split evenly between CGST and
// SGST; IGST is zero. The result is at full precision.
func Aggregate(items []LineItem, adj Adjustments) Totals {
	sumTaxable := decimal.Zero
	sumGST := decimal.Zero
	for i := range items {
		if !items[i].Counts() {
			continue
		}
		row := CalculateRow(items[i])
		sumTaxable = sumTaxable.Add(row.TaxableValue.Decimal)
		sumGST = sumGST.Add(row.GSTAmount.Decimal)
	}

	half := sumGST.Div(two)
	total := sumTaxable.Add(sumGST).Add(adj.Shipping.Decimal).Sub(adj.Discount.Decimal)

	return Totals{
		Subtotal: Number{sumTaxable},
		TotalGST: Number{sumGST},
		CGST:     Number{half},
		SGST:     Number{half},
		IGST:     Zero,
		Shipping: adj.Shipping,
		Discount: adj.Discount,
		Total:    Number{total},
	}
}

// Rounded returns the totals rounded to two decimal places for display and
// storage.
func (t Totals) Rounded() Totals {
	return Totals{
		Subtotal: t.Subtotal.Round2(),
		TotalGST: t.TotalGST.Round2(),
		CGST:     t.CGST.Round2(),
		SGST:     t.SGST.Round2(),
		IGST:     t.IGST.Round2(),
		Shipping: t.Shipping.Round2(),
		Discount: t.Discount.Round2(),
		Total:    t.Total.Round2(),
	}
}

// Adjustments returns the document-level adjustments carried by the totals.
func (t Totals) Adjustments() Adjustments {
	return Adjustments{Shipping: t.Shipping, Discount: t.Discount}
}
