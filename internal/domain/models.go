package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"ledgerbook/internal/calc"
	"ledgerbook/internal/wizard"
)

// Business is the tenant that owns documents, inventory and users.
type Business struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	GSTIN         string    `db:"gstin" json:"gstin"`
	GSTRegistered bool      `db:"gst_registered" json:"gst_registered"`
	Phone         string    `db:"phone" json:"phone"`
	Address       string    `db:"address" json:"address"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// User is a person who signs in with a phone number on behalf of a business.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	BusinessID   uuid.UUID `db:"business_id" json:"business_id"`
	Phone        string    `db:"phone" json:"phone"`
	Email        string    `db:"email" json:"email,omitempty"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// LineItems is a JSONB column of document rows.
type LineItems []calc.LineItem

// Value implements driver.Valuer.
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *LineItems) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("LineItems.Scan: unsupported source type")
	}
	return json.Unmarshal(raw, l)
}

// Document is an invoice, expense, purchase, sale, credit note or debit note.
// Totals are stored rounded to two decimal places.
type Document struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	BusinessID   uuid.UUID    `db:"business_id" json:"business_id"`
	DocumentType DocumentType `db:"document_type" json:"document_type"`
	Number       string       `db:"number" json:"number"`
	DocumentDate time.Time    `db:"document_date" json:"document_date"`
	DueDate      *time.Time   `db:"due_date" json:"due_date,omitempty"`
	PartyName    string       `db:"party_name" json:"party_name"`
	PartyGSTIN   string       `db:"party_gstin" json:"party_gstin"`
	PartyPhone   string       `db:"party_phone" json:"party_phone"`
	Items        LineItems    `db:"items" json:"items"`
	Subtotal     calc.Number  `db:"subtotal" json:"subtotal"`
	TotalGST     calc.Number  `db:"total_gst" json:"total_gst"`
	CGST         calc.Number  `db:"cgst" json:"cgst"`
	SGST         calc.Number  `db:"sgst" json:"sgst"`
	IGST         calc.Number  `db:"igst" json:"igst"`
	Shipping     calc.Number  `db:"shipping" json:"shipping"`
	Discount     calc.Number  `db:"discount" json:"discount"`
	Total        calc.Number  `db:"total" json:"total"`
	Notes        string       `db:"notes" json:"notes"`
	CreatedBy    uuid.UUID    `db:"created_by" json:"created_by"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// Totals returns the stored totals of the document.
func (d *Document) Totals() calc.Totals {
	return calc.Totals{
		Subtotal: d.Subtotal,
		TotalGST: d.TotalGST,
		CGST:     d.CGST,
		SGST:     d.SGST,
		IGST:     d.IGST,
		Shipping: d.Shipping,
		Discount: d.Discount,
		Total:    d.Total,
	}
}

// ApplyTotals stores t on the document, rounded for persistence.
func (d *Document) ApplyTotals(t calc.Totals) {
	r := t.Rounded()
	d.Subtotal = r.Subtotal
	d.TotalGST = r.TotalGST
	d.CGST = r.CGST
	d.SGST = r.SGST
	d.IGST = r.IGST
	d.Shipping = r.Shipping
	d.Discount = r.Discount
	d.Total = r.Total
}

// InventoryItem is a stocked product of a business.
type InventoryItem struct {
	ID         uuid.UUID   `db:"id" json:"id"`
	BusinessID uuid.UUID   `db:"business_id" json:"business_id"`
	Name       string      `db:"name" json:"name"`
	HSNCode    string      `db:"hsn_code" json:"hsn_code"`
	Unit       string      `db:"unit" json:"unit"`
	Quantity   calc.Number `db:"quantity" json:"quantity"`
	UnitPrice  calc.Number `db:"unit_price" json:"unit_price"`
	GSTPercent calc.Number `db:"gst_percent" json:"gst_percent"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time   `db:"updated_at" json:"updated_at"`
}

// StockMovement is a quantity change for one named inventory item.
type StockMovement struct {
	Name      string
	HSNCode   string
	Unit      string
	Delta     calc.Number
	UnitPrice calc.Number
	GSTPct    calc.Number
	// CreateMissing inserts the item when it does not exist yet.
	CreateMissing bool
}

// ExportJob is an asynchronous export request.
type ExportJob struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	BusinessID   uuid.UUID       `db:"business_id" json:"business_id"`
	RequestedBy  uuid.UUID       `db:"requested_by" json:"requested_by"`
	DocumentType DocumentType    `db:"document_type" json:"document_type"`
	Format       ExportFormat    `db:"format" json:"format"`
	Filters      json.RawMessage `db:"filters" json:"filters"`
	Status       ExportStatus    `db:"status" json:"status"`
	Error        string          `db:"error" json:"error,omitempty"`
	FileName     string          `db:"file_name" json:"file_name,omitempty"`
	S3Key        string          `db:"s3_key" json:"-"`
	NotifyEmail  string          `db:"notify_email" json:"notify_email,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	StartedAt    *time.Time      `db:"started_at" json:"started_at,omitempty"`
	CompletedAt  *time.Time      `db:"completed_at" json:"completed_at,omitempty"`
}

// ListQuery holds paging, sorting and filtering for list endpoints.
type ListQuery struct {
	Offset       int          `json:"offset"`
	Limit        int          `json:"limit"`
	Sort         string       `json:"sort,omitempty"`
	Desc         bool         `json:"desc,omitempty"`
	Search       string       `json:"search,omitempty"`
	From         *time.Time   `json:"from,omitempty"`
	To           *time.Time   `json:"to,omitempty"`
	DocumentType DocumentType `json:"document_type,omitempty"`
}

// Draft is an in-progress wizard session saved between requests.
type Draft struct {
	ID         uuid.UUID    `json:"id"`
	BusinessID uuid.UUID    `json:"business_id"`
	UserID     uuid.UUID    `json:"user_id"`
	State      wizard.State `json:"state"`
	UpdatedAt  time.Time    `json:"updated_at"`
}
