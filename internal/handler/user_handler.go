package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ledgerbook/internal/service"
)

// UserHandler handles management of a business's users.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create handles POST /api/v1/users
// @Summary Add a user
// @Description Add a user to the business (admin only)
// @Tags users
// @Accept json
// @Produce json
// @Param request body service.CreateMemberInput true "User details"
// @Success 201 {object} Response{data=domain.User} "User created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 403 {object} ErrorResponseBody "Forbidden - admin only"
// @Failure 409 {object} ErrorResponseBody "Phone already registered"
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	user, err := h.userService.Create(c.Request.Context(), businessID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, user)
}

// List handles GET /api/v1/users
// @Summary List users
// @Description List the users of the business (admin only)
// @Tags users
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.User,meta=PagMeta} "List of users"
// @Failure 403 {object} ErrorResponseBody "Forbidden - admin only"
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)
	users, total, err := h.userService.List(c.Request.Context(), businessID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, users, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/users/:id
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Success 200 {object} Response{data=domain.User} "User details"
// @Failure 404 {object} ErrorResponseBody "User not found"
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	businessID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), businessID, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}

// Update handles PUT /api/v1/users/:id
// @Summary Update a user
// @Description Change a user's details, role or active flag (admin only)
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Param request body service.UpdateMemberInput true "Fields to update"
// @Success 200 {object} Response{data=domain.User} "User updated"
// @Failure 400 {object} ErrorResponseBody "Invalid role or self-deactivation"
// @Failure 404 {object} ErrorResponseBody "User not found"
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	businessID, callerID, ok := extractAuthContext(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	var input service.UpdateMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if userID == callerID && input.IsActive != nil && !*input.IsActive {
		RespondError(c, http.StatusBadRequest, "SELF_DEACTIVATION", "you cannot deactivate your own account")
		return
	}

	user, err := h.userService.Update(c.Request.Context(), businessID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}
