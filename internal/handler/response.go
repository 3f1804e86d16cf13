package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ledgerbook/internal/domain"
	"ledgerbook/internal/importer"
	"ledgerbook/internal/logger"
	"ledgerbook/internal/middleware"
	"ledgerbook/internal/wizard"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondAccepted sends a 202 success response.
func RespondAccepted(c *gin.Context, data interface{}) {
	c.JSON(http.StatusAccepted, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrBusinessInactive):
		return http.StatusForbidden, "BUSINESS_INACTIVE", "business is inactive"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user is inactive"
	case errors.Is(err, domain.ErrDuplicatePhone):
		return http.StatusConflict, "DUPLICATE_PHONE", "phone number already registered"
	case errors.Is(err, domain.ErrDuplicateDocumentNumber):
		return http.StatusConflict, "DUPLICATE_DOCUMENT_NUMBER", "document number already exists"
	case errors.Is(err, domain.ErrDuplicateInventoryItem):
		return http.StatusConflict, "DUPLICATE_ITEM", "an inventory item with this name already exists"
	case errors.Is(err, domain.ErrInvalidDocumentType):
		return http.StatusBadRequest, "INVALID_DOCUMENT_TYPE", "invalid document type; allowed: invoice, expense, purchase, sale, credit_note, debit_note"
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, "INVALID_ROLE", "invalid role; allowed: admin, member"
	case errors.Is(err, domain.ErrGSTINRequired):
		return http.StatusBadRequest, "GSTIN_REQUIRED", "GSTIN is required for GST-registered businesses"
	case errors.Is(err, domain.ErrInvalidGSTIN):
		return http.StatusBadRequest, "INVALID_GSTIN", "GSTIN must be a valid 15-character GST number"
	case errors.Is(err, domain.ErrEmptyDocument):
		return http.StatusBadRequest, "EMPTY_DOCUMENT", "document needs at least one line item with quantity and price"
	case errors.Is(err, domain.ErrTotalsMismatch):
		return http.StatusUnprocessableEntity, "TOTALS_MISMATCH", "submitted totals do not match the line items"
	case errors.Is(err, domain.ErrUnsupportedExportFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT", "unsupported export format; allowed: csv, xlsx, pdf"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: csv, xlsx"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrEmptyImport):
		return http.StatusBadRequest, "EMPTY_IMPORT", "import file contains no rows"
	case errors.Is(err, importer.ErrMissingNameColumn):
		return http.StatusBadRequest, "INVALID_IMPORT", "import file has no name column"
	case errors.Is(err, importer.ErrTooManyRows):
		return http.StatusBadRequest, "INVALID_IMPORT", err.Error()
	case errors.Is(err, domain.ErrInvalidSortField):
		return http.StatusBadRequest, "INVALID_SORT", "invalid sort field"
	case errors.Is(err, domain.ErrDraftNotFound):
		return http.StatusNotFound, "DRAFT_NOT_FOUND", "draft not found or expired"
	case errors.Is(err, domain.ErrExportJobNotFound):
		return http.StatusNotFound, "EXPORT_NOT_FOUND", "export job not found"
	case errors.Is(err, wizard.ErrUnknownStep):
		return http.StatusBadRequest, "UNKNOWN_STEP", err.Error()
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// Totals mismatches carry the offending fields as details.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		logger.FromContext(c.Request.Context()).Error("internal error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}

	apiErr := &APIError{Code: code, Message: msg}
	var mismatch *domain.TotalsMismatchError
	if errors.As(err, &mismatch) {
		apiErr.Details = mismatch.Mismatches
	}
	c.JSON(status, APIResponse{Success: false, Error: apiErr})
}

// extractAuthContext extracts business ID and user ID from the request context.
// Returns false if auth context is missing (error response already written).
func extractAuthContext(c *gin.Context) (businessID, userID uuid.UUID, ok bool) {
	var err error
	businessID, err = middleware.GetBusinessID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing business context")
		return uuid.Nil, uuid.Nil, false
	}
	userID, err = middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return uuid.Nil, uuid.Nil, false
	}
	return businessID, userID, true
}

func parseIDParam(c *gin.Context, name, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+what+" ID")
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	switch {
	case limit <= 0:
		limit = 20
	case limit > 100:
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

// parseListQuery reads the shared listing parameters. from and to accept
// YYYY-MM-DD; to is inclusive.
func parseListQuery(c *gin.Context, defaultOrder string) (domain.ListQuery, bool) {
	offset, limit := parsePagination(c)
	q := domain.ListQuery{
		Offset:       offset,
		Limit:        limit,
		Sort:         c.Query("sort"),
		Search:       strings.TrimSpace(c.Query("q")),
		DocumentType: domain.DocumentType(c.Query("type")),
	}

	switch strings.ToLower(c.DefaultQuery("order", defaultOrder)) {
	case "asc":
	case "desc":
		q.Desc = true
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_ORDER", "order must be asc or desc")
		return q, false
	}

	for _, p := range []struct {
		name string
		dst  **time.Time
	}{{"from", &q.From}, {"to", &q.To}} {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_DATE", p.name+" must be a date in YYYY-MM-DD format")
			return q, false
		}
		*p.dst = &t
	}
	return q, true
}

func pageMeta(q domain.ListQuery, total int) PagMeta {
	return PagMeta{Total: total, Offset: q.Offset, Limit: q.Limit}
}
