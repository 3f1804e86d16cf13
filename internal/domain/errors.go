package domain

import (
	"errors"
	"strings"

	"ledgerbook/internal/calc"
)

var (
	ErrNotFound                = errors.New("resource not found")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrBusinessInactive        = errors.New("business is inactive")
	ErrUserInactive            = errors.New("user is inactive")
	ErrDuplicatePhone          = errors.New("phone number already registered")
	ErrDuplicateDocumentNumber = errors.New("document number already exists for this business")
	ErrDuplicateInventoryItem  = errors.New("inventory item already exists")
	ErrInvalidDocumentType     = errors.New("invalid document type")
	ErrInvalidRole             = errors.New("invalid user role")
	ErrGSTINRequired           = errors.New("GSTIN is required for GST-registered businesses")
	ErrInvalidGSTIN            = errors.New("GSTIN is not in the 15-character format")
	ErrEmptyDocument           = errors.New("document has no line items")
	ErrTotalsMismatch          = errors.New("submitted totals do not match line items")
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
	ErrUnsupportedFileType     = errors.New("unsupported file type")
	ErrFileTooLarge            = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed            = errors.New("file upload to storage failed")
	ErrDraftNotFound           = errors.New("draft not found")
	ErrExportJobNotFound       = errors.New("export job not found")
	ErrEmptyImport             = errors.New("import file contains no rows")
	ErrInvalidSortField        = errors.New("invalid sort field")
)

// TotalsMismatchError carries the fields that failed reconciliation.
type TotalsMismatchError struct {
	Mismatches []calc.Mismatch
}

func (e *TotalsMismatchError) Error() string {
	parts := make([]string, len(e.Mismatches))
	for i, m := range e.Mismatches {
		parts[i] = m.String()
	}
	return ErrTotalsMismatch.Error() + ": " + strings.Join(parts, "; ")
}

func (e *TotalsMismatchError) Unwrap() error { return ErrTotalsMismatch }
