package api

import (
	"time"

	"github.com/rpupo63/agency-site-backend/errs"
	"github.com/rpupo63/agency-site-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler projectHandler
	contactHandler contactHandler
	authHandler    authHandler
	uploadHandler  uploadHandler
	healthHandler  healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Success bool              `json:"success" example:"false"`
	Status  string            `json:"status" example:"error"`
	Error   string            `json:"error" example:"validation failed"`
	Field   string            `json:"field,omitempty" example:"message"`
	Details string            `json:"details,omitempty" example:"Additional error details"`
	Errors  []errs.FieldError `json:"errors,omitempty"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

type CatalogResponse struct {
	Website []models.WebsiteProject `json:"website"`
	Video   []models.VideoProject   `json:"video"`
	Social  []models.SocialProject  `json:"social"`
}

type LoginResponse struct {
	Success   bool        `json:"success"`
	User      models.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

type MeResponse struct {
	User *models.Principal `json:"user"`
}

type UploadResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}
