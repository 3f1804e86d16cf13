// Package wizard models the multi-step document form: navigation between
// steps, per-step field data, and propagation of recomputed totals from the
// items step into the summary step.
package wizard

import (
	"encoding/json"
	"errors"
	"fmt"

	"ledgerbook/internal/calc"
)

// Step keys shared by every document type.
const (
	StepParty   = "party"
	StepItems   = "items"
	StepSummary = "summary"
)

// Field keys inside the items step.
const (
	FieldItems    = "items"
	FieldShipping = "shipping"
	FieldDiscount = "discount"
)

// Summary field keys written after every recompute.
var summaryFields = []string{"subtotal", "total_gst", "cgst", "sgst", "igst", "shipping", "discount", "total"}

var ErrUnknownStep = errors.New("unknown wizard step")

// State is the serializable form of a Form.
type State struct {
	DocumentType string                    `json:"document_type"`
	Current      int                       `json:"current"`
	Data         map[string]map[string]any `json:"data"`
	Overrides    []string                  `json:"overrides,omitempty"`
}

// Form is the state of one wizard session. A Form is not safe for
// concurrent use.
type Form struct {
	docType   string
	steps     []string
	current   int
	data      map[string]map[string]any
	computed  calc.Totals
	overrides map[string]bool
}

// New creates a form for docType seeded with one empty row.
func New(docType string) *Form {
	f := &Form{
		docType:   docType,
		steps:     []string{StepParty, StepItems, StepSummary},
		data:      make(map[string]map[string]any),
		overrides: make(map[string]bool),
	}
	for _, s := range f.steps {
		f.data[s] = make(map[string]any)
	}
	f.data[StepItems][FieldItems] = []calc.LineItem{{}}
	f.data[StepItems][FieldShipping] = calc.Zero
	f.data[StepItems][FieldDiscount] = calc.Zero
	f.recompute()
	return f
}

// Restore rebuilds a form from a saved State.
func Restore(st State) *Form {
	f := New(st.DocumentType)
	for key, fields := range st.Data {
		if _, ok := f.data[key]; !ok {
			continue
		}
		for k, v := range fields {
			f.data[key][k] = v
		}
	}
	if st.Current >= 0 && st.Current < len(f.steps) {
		f.current = st.Current
	}
	f.recompute()
	for _, k := range st.Overrides {
		if v, ok := st.Data[StepSummary][k]; ok {
			f.data[StepSummary][k] = calc.ToNumber(v).Round2()
			f.overrides[k] = true
		}
	}
	return f
}

// DocumentType returns the document type the form was opened for.
func (f *Form) DocumentType() string { return f.docType }

// Steps returns the ordered step keys.
func (f *Form) Steps() []string {
	return append([]string(nil), f.steps...)
}

// Current returns the zero-based index of the active step.
func (f *Form) Current() int { return f.current }

// CurrentKey returns the key of the active step.
func (f *Form) CurrentKey() string { return f.steps[f.current] }

// GoNext advances one step and reports whether it moved.
func (f *Form) GoNext() bool {
	if f.current >= len(f.steps)-1 {
		return false
	}
	f.current++
	return true
}

// GoBack returns to the previous step and reports whether it moved.
func (f *Form) GoBack() bool {
	if f.current == 0 {
		return false
	}
	f.current--
	return true
}

// StepData returns a copy of the per-step field data.
func (f *Form) StepData() map[string]map[string]any {
	out := make(map[string]map[string]any, len(f.data))
	for key, fields := range f.data {
		cp := make(map[string]any, len(fields))
		for k, v := range fields {
			cp[k] = v
		}
		out[key] = cp
	}
	return out
}

// UpdateStep merges partial into the fields of step key. Changes to the items
// step recompute the totals and overwrite the summary step, discarding any
// manual overrides. Changes to the summary step are kept as overrides until
// the next recompute.
func (f *Form) UpdateStep(key string, partial map[string]any) error {
	fields, ok := f.data[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStep, key)
	}
	for k, v := range partial {
		fields[k] = v
	}

	switch key {
	case StepItems:
		f.recompute()
	case StepSummary:
		for k := range partial {
			if isSummaryField(k) {
				fields[k] = calc.ToNumber(partial[k])
				f.overrides[k] = true
			}
		}
	}
	return nil
}

// Items returns the sanitized rows of the items step.
func (f *Form) Items() []calc.LineItem {
	return toLineItems(f.data[StepItems][FieldItems])
}

// Adjustments returns the document-level shipping and discount.
func (f *Form) Adjustments() calc.Adjustments {
	return calc.Adjustments{
		Shipping: calc.ToNumber(f.data[StepItems][FieldShipping]).NonNegative(),
		Discount: calc.ToNumber(f.data[StepItems][FieldDiscount]).NonNegative(),
	}
}

// Computed returns the totals produced by the last recompute.
func (f *Form) Computed() calc.Totals { return f.computed }

// Summary returns the totals as currently shown in the summary step,
// including manual overrides.
func (f *Form) Summary() calc.Totals {
	s := f.data[StepSummary]
	return calc.Totals{
		Subtotal: calc.ToNumber(s["subtotal"]),
		TotalGST: calc.ToNumber(s["total_gst"]),
		CGST:     calc.ToNumber(s["cgst"]),
		SGST:     calc.ToNumber(s["sgst"]),
		IGST:     calc.ToNumber(s["igst"]),
		Shipping: calc.ToNumber(s["shipping"]),
		Discount: calc.ToNumber(s["discount"]),
		Total:    calc.ToNumber(s["total"]),
	}
}

// Snapshot returns the sanitized rows, adjustments and the totals shown in
// the summary step, ready for submission.
func (f *Form) Snapshot() ([]calc.LineItem, calc.Adjustments, calc.Totals) {
	return f.Items(), f.Adjustments(), f.Summary()
}

// Overridden reports whether any summary field was edited by hand since the
// last recompute.
func (f *Form) Overridden() bool { return len(f.overrides) > 0 }

// State returns a serializable snapshot of the form.
func (f *Form) State() State {
	st := State{
		DocumentType: f.docType,
		Current:      f.current,
		Data:         f.StepData(),
	}
	for _, k := range summaryFields {
		if f.overrides[k] {
			st.Overrides = append(st.Overrides, k)
		}
	}
	return st
}

func (f *Form) recompute() {
	items := calc.SanitizeAll(f.Items())
	f.data[StepItems][FieldItems] = items

	f.computed = calc.Aggregate(items, f.Adjustments())
	r := f.computed.Rounded()
	summary := f.data[StepSummary]
	summary["subtotal"] = r.Subtotal
	summary["total_gst"] = r.TotalGST
	summary["cgst"] = r.CGST
	summary["sgst"] = r.SGST
	summary["igst"] = r.IGST
	summary["shipping"] = r.Shipping
	summary["discount"] = r.Discount
	summary["total"] = r.Total
	f.overrides = make(map[string]bool)
}

func isSummaryField(k string) bool {
	for _, f := range summaryFields {
		if f == k {
			return true
		}
	}
	return false
}

func toLineItems(v any) []calc.LineItem {
	switch items := v.(type) {
	case nil:
		return nil
	case []calc.LineItem:
		return items
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out []calc.LineItem
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
