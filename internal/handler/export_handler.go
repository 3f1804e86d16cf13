package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerbook/internal/service"
)

// ExportHandler handles asynchronous export jobs.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Create handles POST /api/v1/exports
// @Summary Queue a document export
// @Description Render the export in the background, store it and optionally email a download link
// @Tags exports
// @Accept json
// @Produce json
// @Param request body service.CreateExportJobInput true "Export request"
// @Success 202 {object} Response{data=domain.ExportJob} "Job queued"
// @Failure 400 {object} ErrorResponseBody "Unsupported format or document type"
// @Security BearerAuth
// @Router /exports [post]
func (h *ExportHandler) Create(c *gin.Context) {
	businessID, userID, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateExportJobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	input.BusinessID = businessID
	input.RequestedBy = userID

	job, err := h.exportService.CreateJob(c.Request.Context(), &input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondAccepted(c, job)
}

// GetByID handles GET /api/v1/exports/:id
// @Summary Get export job status
// @Description Completed jobs include a time-limited download URL
// @Tags exports
// @Produce json
// @Param id path string true "Export job ID (UUID)"
// @Success 200 {object} Response{data=service.ExportJobView} "Job status"
// @Failure 404 {object} ErrorResponseBody "Job not found"
// @Security BearerAuth
// @Router /exports/{id} [get]
func (h *ExportHandler) GetByID(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(c, "id", "export job")
	if !ok {
		return
	}

	view, err := h.exportService.GetJob(c.Request.Context(), businessID, jobID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}
