package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerbook/internal/service"
)

// AuthHandler handles signup and authentication endpoints.
type AuthHandler struct {
	authService         service.AuthService
	registrationService service.RegistrationService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, registrationService service.RegistrationService) *AuthHandler {
	return &AuthHandler{authService: authService, registrationService: registrationService}
}

// Signup handles POST /api/v1/auth/signup
// @Summary Sign up a business
// @Description Create a business and its admin user, returning a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Business and admin details"
// @Success 201 {object} Response{data=service.SignupOutput} "Business created"
// @Failure 400 {object} ErrorResponseBody "Validation error or missing GSTIN"
// @Failure 409 {object} ErrorResponseBody "Phone already registered"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var input service.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	output, err := h.registrationService.Signup(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, output)
}

// Login handles POST /api/v1/auth/login
// @Summary Log in
// @Description Authenticate with phone number and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} Response{data=TokenResponse} "Token pair"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Invalid credentials"
// @Failure 403 {object} ErrorResponseBody "User or business inactive"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tokenPair, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tokenPair)
}

// RefreshToken handles POST /api/v1/auth/refresh
// @Summary Refresh tokens
// @Description Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} Response{data=TokenResponse} "Token pair"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 401 {object} ErrorResponseBody "Invalid refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input service.RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tokenPair, err := h.authService.RefreshToken(c.Request.Context(), input.RefreshToken)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tokenPair)
}
