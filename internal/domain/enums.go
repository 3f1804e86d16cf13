package domain

// DocumentType identifies the kind of business document.
type DocumentType string

const (
	DocTypeInvoice    DocumentType = "invoice"
	DocTypeExpense    DocumentType = "expense"
	DocTypePurchase   DocumentType = "purchase"
	DocTypeSale       DocumentType = "sale"
	DocTypeCreditNote DocumentType = "credit_note"
	DocTypeDebitNote  DocumentType = "debit_note"
)

// ValidDocumentTypes lists every accepted DocumentType.
var ValidDocumentTypes = map[DocumentType]bool{
	DocTypeInvoice:    true,
	DocTypeExpense:    true,
	DocTypePurchase:   true,
	DocTypeSale:       true,
	DocTypeCreditNote: true,
	DocTypeDebitNote:  true,
}

// StockDirection returns +1 when a document of this type adds goods to
// inventory, -1 when it removes them, and 0 when stock is unaffected.
func (t DocumentType) StockDirection() int {
	switch t {
	case DocTypePurchase, DocTypeCreditNote:
		return 1
	case DocTypeInvoice, DocTypeSale, DocTypeDebitNote:
		return -1
	default:
		return 0
	}
}

// Label returns a human-readable name for the document type.
func (t DocumentType) Label() string {
	switch t {
	case DocTypeInvoice:
		return "Invoice"
	case DocTypeExpense:
		return "Expense"
	case DocTypePurchase:
		return "Purchase"
	case DocTypeSale:
		return "Sale"
	case DocTypeCreditNote:
		return "Credit Note"
	case DocTypeDebitNote:
		return "Debit Note"
	default:
		return string(t)
	}
}

// UserRole defines the role hierarchy within a business.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// ValidUserRoles lists every accepted UserRole.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin:  true,
	RoleMember: true,
}

// ExportFormat is an output format for document exports.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
	ExportFormatPDF  ExportFormat = "pdf"
)

// ValidExportFormats maps each format to its MIME content type.
var ValidExportFormats = map[ExportFormat]string{
	ExportFormatCSV:  "text/csv; charset=utf-8",
	ExportFormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	ExportFormatPDF:  "application/pdf",
}

// ExportStatus tracks the lifecycle of an asynchronous export.
type ExportStatus string

const (
	ExportStatusQueued     ExportStatus = "queued"
	ExportStatusProcessing ExportStatus = "processing"
	ExportStatusCompleted  ExportStatus = "completed"
	ExportStatusFailed     ExportStatus = "failed"
)
