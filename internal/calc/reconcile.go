package calc

import "fmt"

// DefaultTolerance is the largest accepted difference between submitted and
// recomputed totals.
var DefaultTolerance = NewNumber(0.01)

// Mismatch describes one total that disagrees with the recomputed value.
type Mismatch struct {
	Field     string `json:"field"`
	Submitted Number `json:"submitted"`
	Computed  Number `json:"computed"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: submitted %s, computed %s", m.Field, m.Submitted.Fixed2(), m.Computed.Fixed2())
}

// Reconcile compares client-submitted totals against recomputed ones and
// returns every field whose difference exceeds tolerance.
func Reconcile(submitted, computed Totals, tolerance Number) []Mismatch {
	pairs := []struct {
		field string
		a, b  Number
	}{
		{"subtotal", submitted.Subtotal, computed.Subtotal},
		{"total_gst", submitted.TotalGST, computed.TotalGST},
		{"cgst", submitted.CGST, computed.CGST},
		{"sgst", submitted.SGST, computed.SGST},
		{"igst", submitted.IGST, computed.IGST},
		{"total", submitted.Total, computed.Total},
	}

	var out []Mismatch
	for _, p := range pairs {
		diff := p.a.Sub(p.b.Decimal).Abs()
		if diff.GreaterThan(tolerance.Decimal) {
			out = append(out, Mismatch{Field: p.field, Submitted: p.a, Computed: p.b})
		}
	}
	return out
}
