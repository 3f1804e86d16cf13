// Package importer reads inventory spreadsheets (CSV or XLSX) into inventory
// items. Bad rows are reported individually and never abort the import.
package importer

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"ledgerbook/internal/calc"
	"ledgerbook/internal/domain"
)

var (
	ErrEmptyFile         = fmt.Errorf("%w: file has no header", domain.ErrEmptyImport)
	ErrMissingNameColumn = errors.New("import file has no name column")
	ErrTooManyRows       = errors.New("import file has too many rows")
)

// RowError describes a problem with one row. Row is the 1-based line in the
// file, counting the header as row 1.
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column %q: %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// Result holds the parsed items and the rows that were rejected.
type Result struct {
	Items     []domain.InventoryItem `json:"-"`
	Errors    []RowError             `json:"errors"`
	TotalRows int                    `json:"total_rows"`
}

// Parse dispatches on the file extension.
func Parse(filename string, r io.Reader, maxRows int) (*Result, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ParseCSV(r, maxRows)
	case ".xlsx":
		return ParseXLSX(r, maxRows)
	default:
		return nil, domain.ErrUnsupportedFileType
	}
}

type inventoryRow struct {
	Name       string `validate:"required,max=255"`
	HSNCode    string `validate:"omitempty,numeric,min=4,max=8"`
	Unit       string `validate:"max=16"`
	Quantity   string `validate:"omitempty,number_like"`
	UnitPrice  string `validate:"omitempty,number_like"`
	GSTPercent string `validate:"omitempty,number_like"`
}

var fieldColumns = map[string]string{
	"Name":       "name",
	"HSNCode":    "hsn_code",
	"Unit":       "unit",
	"Quantity":   "quantity",
	"UnitPrice":  "unit_price",
	"GSTPercent": "gst_percent",
}

var headerAliases = map[string]string{
	"name":        "name",
	"item":        "name",
	"item name":   "name",
	"product":     "name",
	"description": "name",
	"hsn":         "hsn_code",
	"hsn code":    "hsn_code",
	"hsn_code":    "hsn_code",
	"unit":        "unit",
	"uom":         "unit",
	"quantity":    "quantity",
	"qty":         "quantity",
	"stock":       "quantity",
	"unit price":  "unit_price",
	"unit_price":  "unit_price",
	"price":       "unit_price",
	"rate":        "unit_price",
	"gst":         "gst_percent",
	"gst %":       "gst_percent",
	"gst_percent": "gst_percent",
	"gst rate":    "gst_percent",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("number_like", func(fl validator.FieldLevel) bool {
		s := cleanNumber(fl.Field().String())
		_, err := calc.ParseStrict(s)
		return err == nil
	})
	return v
}

func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	return strings.TrimSpace(s)
}

// builder turns raw string rows into items.
type builder struct {
	index   map[string]int
	seen    map[string]int
	maxRows int
	result  *Result
}

func newBuilder(header []string, maxRows int) (*builder, error) {
	idx := make(map[string]int)
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if col, ok := headerAliases[key]; ok {
			if _, dup := idx[col]; !dup {
				idx[col] = i
			}
		}
	}
	if _, ok := idx["name"]; !ok {
		return nil, ErrMissingNameColumn
	}
	return &builder{
		index:   idx,
		seen:    make(map[string]int),
		maxRows: maxRows,
		result:  &Result{},
	}, nil
}

func (b *builder) cell(record []string, col string) string {
	i, ok := b.index[col]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// add processes one data row; line is its 1-based position in the file.
func (b *builder) add(line int, record []string) error {
	if isBlank(record) {
		return nil
	}
	b.result.TotalRows++
	if b.maxRows > 0 && b.result.TotalRows > b.maxRows {
		return fmt.Errorf("%w: limit is %d", ErrTooManyRows, b.maxRows)
	}

	row := inventoryRow{
		Name:       b.cell(record, "name"),
		HSNCode:    b.cell(record, "hsn_code"),
		Unit:       b.cell(record, "unit"),
		Quantity:   b.cell(record, "quantity"),
		UnitPrice:  b.cell(record, "unit_price"),
		GSTPercent: b.cell(record, "gst_percent"),
	}

	if err := validate.Struct(row); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				b.result.Errors = append(b.result.Errors, RowError{
					Row:     line,
					Column:  fieldColumns[fe.Field()],
					Message: validationMessage(fe),
					Value:   fmt.Sprint(fe.Value()),
				})
			}
			return nil
		}
		return err
	}

	key := strings.ToLower(row.Name)
	if first, dup := b.seen[key]; dup {
		b.result.Errors = append(b.result.Errors, RowError{
			Row:     line,
			Column:  "name",
			Message: fmt.Sprintf("duplicate of row %d", first),
			Value:   row.Name,
		})
		return nil
	}
	b.seen[key] = line

	b.result.Items = append(b.result.Items, domain.InventoryItem{
		Name:       row.Name,
		HSNCode:    row.HSNCode,
		Unit:       row.Unit,
		Quantity:   calc.ToNumber(cleanNumber(row.Quantity)).NonNegative(),
		UnitPrice:  calc.ToNumber(cleanNumber(row.UnitPrice)).NonNegative(),
		GSTPercent: calc.ToNumber(cleanNumber(row.GSTPercent)).NonNegative(),
	})
	return nil
}

func (b *builder) finish() (*Result, error) {
	if b.result.TotalRows == 0 {
		return nil, domain.ErrEmptyImport
	}
	return b.result, nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "numeric":
		return "must contain digits only"
	case "number_like":
		return "must be a number"
	default:
		return "is invalid"
	}
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
