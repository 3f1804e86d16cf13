package calc

import (
	"strings"
)

// LineItem is a single row on a document.
type LineItem struct {
	Description     string `json:"description"`
	HSNCode         string `json:"hsn_code"`
	Unit            string `json:"unit,omitempty"`
	Quantity        Number `json:"quantity"`
	UnitPrice       Number `json:"unit_price"`
	GSTPercent      Number `json:"gst_percent"`
	DiscountPercent Number `json:"discount_percent"`
}

// Counts reports whether the row takes part in document totals.
func (li LineItem) Counts() bool {
	return strings.TrimSpace(li.Description) != ""
}

// Sanitize clamps a row at an input boundary: negative quantities, prices and
// percentages become zero and the discount percentage is capped at 100.
func Sanitize(li LineItem) LineItem {
	li.Description = strings.TrimSpace(li.Description)
	li.HSNCode = strings.TrimSpace(li.HSNCode)
	li.Quantity = li.Quantity.NonNegative()
	li.UnitPrice = li.UnitPrice.NonNegative()
	li.GSTPercent = li.GSTPercent.NonNegative()
	li.DiscountPercent = li.DiscountPercent.NonNegative()
	if li.DiscountPercent.GreaterThan(hundred) {
		li.DiscountPercent = Number{hundred}
	}
	return li
}

// SanitizeAll applies Sanitize to every row and returns a new slice.
func SanitizeAll(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i := range items {
		out[i] = Sanitize(items[i])
	}
	return out
}

// RowAmounts are the derived monetary values of one row.
type RowAmounts struct {
	Base           Number `json:"base"`
	DiscountAmount Number `json:"discount_amount"`
	TaxableValue   Number `json:"taxable_value"`
	GSTAmount      Number `json:"gst_amount"`
	GrossTotal     Number `json:"gross_total"`
}

// Rounded returns the amounts rounded to two decimal places.
func (r RowAmounts) Rounded() RowAmounts {
	return RowAmounts{
		Base:           r.Base.Round2(),
		DiscountAmount: r.DiscountAmount.Round2(),
		TaxableValue:   r.TaxableValue.Round2(),
		GSTAmount:      r.GSTAmount.Round2(),
		GrossTotal:     r.GrossTotal.Round2(),
	}
}

// CalculateRow derives the amounts of a single row at full precision.
// It is defined for every numeric input and has no side effects.
func CalculateRow(li LineItem) RowAmounts {
	base := li.Quantity.Mul(li.UnitPrice.Decimal)
	discount := base.Mul(li.DiscountPercent.Decimal).Div(hundred)
	taxable := base.Sub(discount)
	gst := taxable.Mul(li.GSTPercent.Decimal).Div(hundred)
	return RowAmounts{
		Base:           Number{base},
		DiscountAmount: Number{discount},
		TaxableValue:   Number{taxable},
		GSTAmount:      Number{gst},
		GrossTotal:     Number{taxable.Add(gst)},
	}
}
