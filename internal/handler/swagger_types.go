package handler

import (
	"time"

	"procura/internal/an01"
	"procura/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// AnalysisWithDownloadURL represents an analysis with a link to its original workbook.
type AnalysisWithDownloadURL struct {
	Analysis    domain.Analysis      `json:"analysis"`
	Result      *an01.AnalysisResult `json:"result,omitempty"`
	DownloadURL string               `json:"download_url" example:"https://s3.eu-west-3.amazonaws.com/procura-workbooks/...?X-Amz-Signature=..."`
}

// TokenResponse represents an issued access token.
type TokenResponse struct {
	AccessToken string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt   time.Time `json:"expires_at" example:"2025-01-15T10:30:00Z"`
}

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
