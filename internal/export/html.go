package export

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var inPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR formats an amount with Indian digit grouping and two decimals.
func FormatINR(v float64) string {
	return inPrinter.Sprint(number.Decimal(v, number.Scale(2)))
}

type htmlCell struct {
	Text  string
	Align string
}

type htmlView struct {
	Title       string
	GeneratedAt string
	RowCount    int
	Widths      []string
	Headers     []htmlCell
	Rows        [][]htmlCell
	Footer      []htmlCell
}

var pageTemplate = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
  @page { size: A4 landscape; margin: 10mm; }
  body { font-family: Arial, sans-serif; font-size: 9px; color: #222; }
  h1 { font-size: 14px; margin: 0 0 4px 0; }
  .meta { color: #666; margin-bottom: 8px; }
  table { width: 100%; border-collapse: collapse; table-layout: fixed; }
  thead { display: table-header-group; }
  tfoot { display: table-row-group; }
  tr { page-break-inside: avoid; }
  th, td { border: 1px solid #ccc; padding: 3px 4px; overflow-wrap: anywhere; }
  th { background: #f0f0f0; text-align: left; }
  td.num, th.num { text-align: right; }
  tfoot td { font-weight: bold; background: #fafafa; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="meta">Generated {{.GeneratedAt}} &middot; {{.RowCount}} rows</div>
<table>
<colgroup>{{range .Widths}}<col style="width: {{.}}">{{end}}</colgroup>
<thead><tr>{{range .Headers}}<th class="{{.Align}}">{{.Text}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td class="{{.Align}}">{{.Text}}</td>{{end}}</tr>
{{end}}</tbody>
{{if .Footer}}<tfoot><tr>{{range .Footer}}<td class="{{.Align}}">{{.Text}}</td>{{end}}</tr></tfoot>{{end}}
</table>
</body>
</html>`))

// RenderHTML lays t out as a landscape HTML table with fixed column widths
// and a header repeated on every printed page.
func RenderHTML(t *Table) (string, error) {
	view := htmlView{
		Title:       t.Title,
		GeneratedAt: t.GeneratedAt.Format(time.RFC1123),
		RowCount:    len(t.Rows),
	}

	var totalWidth float64
	for _, c := range t.Columns {
		totalWidth += c.Width
	}
	for _, c := range t.Columns {
		w := 100.0 / float64(len(t.Columns))
		if totalWidth > 0 {
			w = c.Width / totalWidth * 100
		}
		view.Widths = append(view.Widths, fmt.Sprintf("%.2f%%", w))
		view.Headers = append(view.Headers, htmlCell{Text: c.Header, Align: align(c.Kind)})
	}

	for _, row := range t.Rows {
		view.Rows = append(view.Rows, t.htmlRow(row))
	}
	if t.Footer != nil {
		view.Footer = t.htmlRow(t.Footer)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("rendering export html: %w", err)
	}
	return buf.String(), nil
}

func (t *Table) htmlRow(row []Cell) []htmlCell {
	out := make([]htmlCell, len(t.Columns))
	for i, col := range t.Columns {
		if i >= len(row) {
			continue
		}
		c := row[i]
		out[i].Align = align(col.Kind)
		switch {
		case !c.IsNum:
			out[i].Text = c.Text
		case col.Kind == KindAmount:
			out[i].Text = FormatINR(c.Num.Round2().InexactFloat64())
		default:
			out[i].Text = c.Num.Round2().String()
		}
	}
	return out
}

func align(k Kind) string {
	if k == KindText {
		return ""
	}
	return "num"
}
