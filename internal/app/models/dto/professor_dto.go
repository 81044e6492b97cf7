package dto

import "github.com/rmoreira/capacita/internal/app/models"

// CreateProfessorRequest represents the professor creation payload
type CreateProfessorRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"omitempty,max=32"`
	IsActive bool   `json:"isActive"`
}

// UpdateProfessorRequest represents the professor update payload
type UpdateProfessorRequest = CreateProfessorRequest

// ProfessorListResponse represents a paginated list of professors
type ProfessorListResponse struct {
	Professors []*models.Professor `json:"professors"`
	Pagination PaginationInfo      `json:"pagination"`
}

// CreateCourseHoursRequest represents a new workload lookup value
type CreateCourseHoursRequest struct {
	Hours int `json:"hours" binding:"required,min=1,max=10000"`
}
