package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerbook/internal/domain"
	"ledgerbook/internal/service"
)

// DocumentHandler handles business document endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
	exportService   service.ExportService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService, exportService service.ExportService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, exportService: exportService}
}

// Create handles POST /api/v1/documents
// @Summary Create a document
// @Description Create an invoice, expense, purchase, sale, credit or debit note. Totals are recomputed
// @Description from the line items; client totals, when sent, must match within 0.01.
// @Tags documents
// @Accept json
// @Produce json
// @Param request body service.CreateDocumentInput true "Document details"
// @Success 201 {object} Response{data=service.DocumentResult} "Document created"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 409 {object} ErrorResponseBody "Document number already exists"
// @Failure 422 {object} ErrorResponseBody "Submitted totals do not match"
// @Security BearerAuth
// @Router /documents [post]
func (h *DocumentHandler) Create(c *gin.Context) {
	businessID, userID, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	input.BusinessID = businessID
	input.CreatedBy = userID

	result, err := h.documentService.Create(c.Request.Context(), &input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// GetByID handles GET /api/v1/documents/:id
// @Summary Get document by ID
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=domain.Document} "Document details"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetByID(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id", "document")
	if !ok {
		return
	}

	doc, err := h.documentService.GetByID(c.Request.Context(), businessID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// List handles GET /api/v1/documents
// @Summary List documents
// @Tags documents
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Param type query string false "Document type filter"
// @Param q query string false "Search number, party name or notes"
// @Param sort query string false "Sort field: date, number, party, total, created_at"
// @Param order query string false "asc or desc" default(desc)
// @Param from query string false "Earliest document date (YYYY-MM-DD)"
// @Param to query string false "Latest document date (YYYY-MM-DD)"
// @Success 200 {object} Response{data=[]domain.Document,meta=PagMeta} "List of documents"
// @Failure 400 {object} ErrorResponseBody "Invalid filter"
// @Security BearerAuth
// @Router /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	q, ok := parseListQuery(c, "desc")
	if !ok {
		return
	}

	docs, total, err := h.documentService.List(c.Request.Context(), businessID, q)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, docs, pageMeta(q, total))
}

// Update handles PUT /api/v1/documents/:id
// @Summary Update a document
// @Description Replace the contents of a document. Inventory is adjusted by the difference.
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Param request body service.DocumentInput true "Document contents"
// @Success 200 {object} Response{data=service.DocumentResult} "Document updated"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Failure 422 {object} ErrorResponseBody "Submitted totals do not match"
// @Security BearerAuth
// @Router /documents/{id} [put]
func (h *DocumentHandler) Update(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id", "document")
	if !ok {
		return
	}

	var input service.UpdateDocumentInput
	if err := c.ShouldBindJSON(&input.DocumentInput); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	input.BusinessID = businessID
	input.DocumentID = docID

	result, err := h.documentService.Update(c.Request.Context(), &input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Delete handles DELETE /api/v1/documents/:id
// @Summary Delete a document
// @Description Delete a document and reverse its inventory movement
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Document deleted"
// @Failure 404 {object} ErrorResponseBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id", "document")
	if !ok {
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), businessID, docID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "document deleted"})
}

// Export handles GET /api/v1/documents/export
// @Summary Export documents
// @Description Download matching documents as CSV, XLSX or PDF, one row per line item
// @Tags documents
// @Produce octet-stream
// @Param format query string true "csv, xlsx or pdf"
// @Param type query string false "Document type filter"
// @Param q query string false "Search number, party name or notes"
// @Param from query string false "Earliest document date (YYYY-MM-DD)"
// @Param to query string false "Latest document date (YYYY-MM-DD)"
// @Success 200 {file} file "Export file"
// @Failure 400 {object} ErrorResponseBody "Unsupported format or invalid filter"
// @Security BearerAuth
// @Router /documents/export [get]
func (h *DocumentHandler) Export(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	q, ok := parseListQuery(c, "desc")
	if !ok {
		return
	}

	file, err := h.exportService.ExportDocuments(c.Request.Context(), businessID, q, domain.ExportFormat(c.Query("format")))
	if err != nil {
		HandleError(c, err)
		return
	}

	sendFile(c, file)
}

func sendFile(c *gin.Context, file *service.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.FileName))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
