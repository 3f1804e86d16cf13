package handler

import (
	"time"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// SignupRequest represents the signup request body.
type SignupRequest struct {
	BusinessName  string `json:"business_name" binding:"required" example:"Sharma Traders"`
	GSTRegistered bool   `json:"gst_registered" example:"true"`
	GSTIN         string `json:"gstin" example:"27AAPFU0939F1ZV"`
	Address       string `json:"address" example:"12 MG Road, Pune"`
	FullName      string `json:"full_name" binding:"required" example:"Anil Sharma"`
	Phone         string `json:"phone" binding:"required" example:"+919876543210"`
	Email         string `json:"email" example:"anil@sharmatraders.in"`
	Password      string `json:"password" binding:"required" example:"securepassword123"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Phone    string `json:"phone" binding:"required" example:"+919876543210"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// CreateDraftRequest represents the start draft request body.
type CreateDraftRequest struct {
	DocumentType string `json:"document_type" binding:"required" example:"invoice"`
}

// UpdateDraftStepRequest represents a wizard step update. Fields of the
// items step are "items", "shipping" and "discount".
type UpdateDraftStepRequest struct {
	Step   string                 `json:"step" binding:"required" example:"items"`
	Fields map[string]interface{} `json:"fields" binding:"required"`
}

// --- Response Types ---

// TokenResponse represents the authentication token response.
type TokenResponse struct {
	AccessToken  string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string    `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt    time.Time `json:"expires_at" example:"2025-01-15T10:30:00Z"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
