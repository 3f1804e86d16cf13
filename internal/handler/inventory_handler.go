package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerbook/internal/domain"
	"ledgerbook/internal/service"
)

// InventoryHandler handles inventory endpoints.
type InventoryHandler struct {
	inventoryService service.InventoryService
	exportService    service.ExportService
	maxImportBytes   int64
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(inventoryService service.InventoryService, exportService service.ExportService, maxImportBytes int64) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		exportService:    exportService,
		maxImportBytes:   maxImportBytes,
	}
}

// Create handles POST /api/v1/inventory
// @Summary Create an inventory item
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body service.InventoryInput true "Item details"
// @Success 201 {object} Response{data=domain.InventoryItem} "Item created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 409 {object} ErrorResponseBody "Item name already exists"
// @Security BearerAuth
// @Router /inventory [post]
func (h *InventoryHandler) Create(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.InventoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	item, err := h.inventoryService.Create(c.Request.Context(), businessID, &input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, item)
}

// GetByID handles GET /api/v1/inventory/:id
// @Summary Get inventory item by ID
// @Tags inventory
// @Produce json
// @Param id path string true "Item ID (UUID)"
// @Success 200 {object} Response{data=domain.InventoryItem} "Item details"
// @Failure 404 {object} ErrorResponseBody "Item not found"
// @Security BearerAuth
// @Router /inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id", "item")
	if !ok {
		return
	}

	item, err := h.inventoryService.GetByID(c.Request.Context(), businessID, itemID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, item)
}

// List handles GET /api/v1/inventory
// @Summary List inventory items
// @Tags inventory
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Param q query string false "Search name or HSN code"
// @Param sort query string false "Sort field: name, quantity, unit_price, created_at, updated_at"
// @Param order query string false "asc or desc" default(asc)
// @Success 200 {object} Response{data=[]domain.InventoryItem,meta=PagMeta} "List of items"
// @Security BearerAuth
// @Router /inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	q, ok := parseListQuery(c, "asc")
	if !ok {
		return
	}

	items, total, err := h.inventoryService.List(c.Request.Context(), businessID, q)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, pageMeta(q, total))
}

// Update handles PUT /api/v1/inventory/:id
// @Summary Update an inventory item
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Item ID (UUID)"
// @Param request body service.InventoryInput true "Item details"
// @Success 200 {object} Response{data=domain.InventoryItem} "Item updated"
// @Failure 404 {object} ErrorResponseBody "Item not found"
// @Security BearerAuth
// @Router /inventory/{id} [put]
func (h *InventoryHandler) Update(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id", "item")
	if !ok {
		return
	}

	var input service.InventoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	item, err := h.inventoryService.Update(c.Request.Context(), businessID, itemID, &input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, item)
}

// Delete handles DELETE /api/v1/inventory/:id
// @Summary Delete an inventory item
// @Tags inventory
// @Produce json
// @Param id path string true "Item ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Item deleted"
// @Failure 404 {object} ErrorResponseBody "Item not found"
// @Security BearerAuth
// @Router /inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id", "item")
	if !ok {
		return
	}

	if err := h.inventoryService.Delete(c.Request.Context(), businessID, itemID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "item deleted"})
}

// Import handles POST /api/v1/inventory/import
// @Summary Import inventory
// @Description Upsert items by name from a CSV or XLSX file. Invalid rows are reported and skipped.
// @Tags inventory
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX file"
// @Success 200 {object} Response{data=service.ImportOutput} "Import summary"
// @Failure 400 {object} ErrorResponseBody "Missing file, unsupported type or bad header"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Security BearerAuth
// @Router /inventory/import [post]
func (h *InventoryHandler) Import(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	if h.maxImportBytes > 0 {
		if c.Request.ContentLength > h.maxImportBytes {
			HandleError(c, domain.ErrFileTooLarge)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxImportBytes)
	}
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			HandleError(c, domain.ErrFileTooLarge)
			return
		}
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	output, err := h.inventoryService.Import(c.Request.Context(), businessID, header.Filename, file)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, output)
}

// Export handles GET /api/v1/inventory/export
// @Summary Export inventory
// @Tags inventory
// @Produce octet-stream
// @Param format query string true "csv, xlsx or pdf"
// @Param q query string false "Search name or HSN code"
// @Success 200 {file} file "Export file"
// @Failure 400 {object} ErrorResponseBody "Unsupported format"
// @Security BearerAuth
// @Router /inventory/export [get]
func (h *InventoryHandler) Export(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	q, ok := parseListQuery(c, "asc")
	if !ok {
		return
	}

	file, err := h.exportService.ExportInventory(c.Request.Context(), businessID, q, domain.ExportFormat(c.Query("format")))
	if err != nil {
		HandleError(c, err)
		return
	}

	sendFile(c, file)
}
