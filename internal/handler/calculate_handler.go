package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerbook/internal/service"
)

// Calculate handles POST /api/v1/calculate
// @Summary Calculate totals
// @Description Compute per-row amounts and document totals without saving anything. Malformed numbers count as zero.
// @Tags documents
// @Accept json
// @Produce json
// @Param request body service.CalculateInput true "Line items and adjustments"
// @Success 200 {object} Response{data=service.CalculateOutput} "Rows and totals"
// @Failure 400 {object} ErrorResponseBody "Malformed JSON"
// @Security BearerAuth
// @Router /calculate [post]
func Calculate(c *gin.Context) {
	var input service.CalculateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	RespondOK(c, service.Calculate(input))
}
