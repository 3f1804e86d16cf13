package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ledgerbook/internal/domain"
	"ledgerbook/internal/service"
)

// DraftHandler handles the multi-step document wizard.
type DraftHandler struct {
	draftService service.DraftService
}

// NewDraftHandler creates a new DraftHandler.
func NewDraftHandler(draftService service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

// Create handles POST /api/v1/drafts
// @Summary Start a draft
// @Tags drafts
// @Accept json
// @Produce json
// @Param request body CreateDraftRequest true "Document type"
// @Success 201 {object} Response{data=service.DraftView} "Draft created"
// @Failure 400 {object} ErrorResponseBody "Invalid document type"
// @Security BearerAuth
// @Router /drafts [post]
func (h *DraftHandler) Create(c *gin.Context) {
	businessID, userID, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	view, err := h.draftService.Create(c.Request.Context(), businessID, userID, domain.DocumentType(req.DocumentType))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, view)
}

// Get handles GET /api/v1/drafts/:id
// @Summary Get a draft
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID (UUID)"
// @Success 200 {object} Response{data=service.DraftView} "Draft"
// @Failure 404 {object} ErrorResponseBody "Draft not found or expired"
// @Security BearerAuth
// @Router /drafts/{id} [get]
func (h *DraftHandler) Get(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	draftID, ok := parseIDParam(c, "id", "draft")
	if !ok {
		return
	}

	view, err := h.draftService.Get(c.Request.Context(), businessID, draftID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// UpdateStep handles PUT /api/v1/drafts/:id
// @Summary Update a draft step
// @Description Merge fields into one step. Items and adjustments recompute the summary.
// @Tags drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft ID (UUID)"
// @Param request body UpdateDraftStepRequest true "Step fields"
// @Success 200 {object} Response{data=service.DraftView} "Updated draft"
// @Failure 400 {object} ErrorResponseBody "Unknown step"
// @Failure 404 {object} ErrorResponseBody "Draft not found or expired"
// @Security BearerAuth
// @Router /drafts/{id} [put]
func (h *DraftHandler) UpdateStep(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	draftID, ok := parseIDParam(c, "id", "draft")
	if !ok {
		return
	}

	var req UpdateDraftStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	view, err := h.draftService.UpdateStep(c.Request.Context(), businessID, draftID, req.Step, req.Fields)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// Next handles POST /api/v1/drafts/:id/next
// @Summary Advance to the next step
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID (UUID)"
// @Success 200 {object} Response{data=service.DraftView} "Updated draft"
// @Failure 404 {object} ErrorResponseBody "Draft not found or expired"
// @Security BearerAuth
// @Router /drafts/{id}/next [post]
func (h *DraftHandler) Next(c *gin.Context) {
	h.navigate(c, h.draftService.Next)
}

// Back handles POST /api/v1/drafts/:id/back
// @Summary Return to the previous step
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID (UUID)"
// @Success 200 {object} Response{data=service.DraftView} "Updated draft"
// @Failure 404 {object} ErrorResponseBody "Draft not found or expired"
// @Security BearerAuth
// @Router /drafts/{id}/back [post]
func (h *DraftHandler) Back(c *gin.Context) {
	h.navigate(c, h.draftService.Back)
}

func (h *DraftHandler) navigate(c *gin.Context, move func(ctx context.Context, businessID, draftID uuid.UUID) (*service.DraftView, error)) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	draftID, ok := parseIDParam(c, "id", "draft")
	if !ok {
		return
	}

	view, err := move(c.Request.Context(), businessID, draftID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// Submit handles POST /api/v1/drafts/:id/submit
// @Summary Submit a draft
// @Description Create the document from the draft and discard the draft
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID (UUID)"
// @Success 201 {object} Response{data=service.DocumentResult} "Document created"
// @Failure 400 {object} ErrorResponseBody "Draft has no line items"
// @Failure 404 {object} ErrorResponseBody "Draft not found or expired"
// @Failure 422 {object} ErrorResponseBody "Overridden totals do not match"
// @Security BearerAuth
// @Router /drafts/{id}/submit [post]
func (h *DraftHandler) Submit(c *gin.Context) {
	businessID, userID, ok := extractAuthContext(c)
	if !ok {
		return
	}
	draftID, ok := parseIDParam(c, "id", "draft")
	if !ok {
		return
	}

	result, err := h.draftService.Submit(c.Request.Context(), businessID, userID, draftID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// Delete handles DELETE /api/v1/drafts/:id
// @Summary Discard a draft
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Draft discarded"
// @Failure 404 {object} ErrorResponseBody "Draft not found or expired"
// @Security BearerAuth
// @Router /drafts/{id} [delete]
func (h *DraftHandler) Delete(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	draftID, ok := parseIDParam(c, "id", "draft")
	if !ok {
		return
	}

	if err := h.draftService.Delete(c.Request.Context(), businessID, draftID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "draft discarded"})
}
