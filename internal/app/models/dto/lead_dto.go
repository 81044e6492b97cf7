package dto

import "github.com/rmoreira/capacita/internal/app/models"

// CreateLeadRequest is the public marketing-site contact form payload
type CreateLeadRequest struct {
	Name           string `json:"name" binding:"required,max=255"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"omitempty,max=32"`
	Message        string `json:"message" binding:"omitempty,max=4000"`
	CourseInterest *int64 `json:"courseInterest" binding:"omitempty,min=1"`
}

// LeadListResponse represents a paginated list of captured leads
type LeadListResponse struct {
	Leads      []*models.Lead `json:"leads"`
	Pagination PaginationInfo `json:"pagination"`
}

// UpdateSettingsRequest replaces white-label configuration values
type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" binding:"required,min=1"`
}
