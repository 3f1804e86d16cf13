package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerbook/internal/service"
)

// BusinessHandler handles the signed-in business's profile.
type BusinessHandler struct {
	businessService service.BusinessService
}

// NewBusinessHandler creates a new BusinessHandler.
func NewBusinessHandler(businessService service.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

// Get handles GET /api/v1/business
// @Summary Get business profile
// @Tags business
// @Produce json
// @Success 200 {object} Response{data=domain.Business} "Business profile"
// @Security BearerAuth
// @Router /business [get]
func (h *BusinessHandler) Get(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	business, err := h.businessService.Get(c.Request.Context(), businessID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, business)
}

// Update handles PUT /api/v1/business
// @Summary Update business profile
// @Description Admin only. GST-registered businesses must keep a valid GSTIN.
// @Tags business
// @Accept json
// @Produce json
// @Param request body service.UpdateBusinessInput true "Fields to update"
// @Success 200 {object} Response{data=domain.Business} "Business updated"
// @Failure 400 {object} ErrorResponseBody "Missing or invalid GSTIN"
// @Failure 403 {object} ErrorResponseBody "Forbidden - admin only"
// @Security BearerAuth
// @Router /business [put]
func (h *BusinessHandler) Update(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.UpdateBusinessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	business, err := h.businessService.Update(c.Request.Context(), businessID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, business)
}
