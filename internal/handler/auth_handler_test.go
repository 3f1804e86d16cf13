package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ledgerbook/internal/domain"
	"ledgerbook/internal/handler"
	"ledgerbook/internal/service"
	"ledgerbook/mocks"
)

func newAuthHandler() (*handler.AuthHandler, *mocks.MockAuthService, *mocks.MockRegistrationService) {
	authSvc := new(mocks.MockAuthService)
	regSvc := new(mocks.MockRegistrationService)
	return handler.NewAuthHandler(authSvc, regSvc), authSvc, regSvc
}

func publicContext(t *testing.T, method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, target, jsonBody(t, body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h, authSvc, _ := newAuthHandler()

	input := service.LoginInput{Phone: "9876543210", Password: "password123"}
	authSvc.On("Login", mock.Anything, input).Return(&service.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(15 * time.Minute),
	}, nil)

	c, w := publicContext(t, http.MethodPost, "/api/v1/auth/login", input)
	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "access", data["access_token"])
	authSvc.AssertExpectations(t)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h, authSvc, _ := newAuthHandler()

	authSvc.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidCredentials)

	c, w := publicContext(t, http.MethodPost, "/api/v1/auth/login", service.LoginInput{Phone: "9876543210", Password: "wrongpass1"})
	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
}

func TestAuthHandler_Login_ValidationError(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing phone", map[string]string{"password": "password123"}},
		{"short phone", map[string]string{"phone": "12345", "password": "password123"}},
		{"short password", map[string]string{"phone": "9876543210", "password": "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, authSvc, _ := newAuthHandler()

			c, w := publicContext(t, http.MethodPost, "/api/v1/auth/login", tt.body)
			h.Login(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "VALIDATION_ERROR", decode(t, w).Error.Code)
			authSvc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	h, _, regSvc := newAuthHandler()

	input := service.SignupInput{
		BusinessName: "Sharma Stores",
		FullName:     "Asha Sharma",
		Phone:        "9876543210",
		Password:     "password123",
	}
	businessID := uuid.New()
	regSvc.On("Signup", mock.Anything, input).Return(&service.SignupOutput{
		Business: &domain.Business{ID: businessID, Name: "Sharma Stores"},
		User:     &domain.User{ID: uuid.New(), BusinessID: businessID, Role: domain.RoleAdmin},
		Tokens:   &service.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
	}, nil)

	c, w := publicContext(t, http.MethodPost, "/api/v1/auth/signup", input)
	h.Signup(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, decode(t, w).Success)
	regSvc.AssertExpectations(t)
}

func TestAuthHandler_Signup_DuplicatePhone(t *testing.T) {
	h, _, regSvc := newAuthHandler()

	regSvc.On("Signup", mock.Anything, mock.Anything).Return(nil, domain.ErrDuplicatePhone)

	c, w := publicContext(t, http.MethodPost, "/api/v1/auth/signup", service.SignupInput{
		BusinessName: "Sharma Stores",
		FullName:     "Asha Sharma",
		Phone:        "9876543210",
		Password:     "password123",
	})
	h.Signup(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_PHONE", decode(t, w).Error.Code)
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	h, authSvc, _ := newAuthHandler()

	authSvc.On("RefreshToken", mock.Anything, "old-refresh").Return(&service.TokenPair{AccessToken: "new"}, nil)

	c, w := publicContext(t, http.MethodPost, "/api/v1/auth/refresh", service.RefreshInput{RefreshToken: "old-refresh"})
	h.RefreshToken(c)

	assert.Equal(t, http.StatusOK, w.Code)
	authSvc.AssertExpectations(t)
}
