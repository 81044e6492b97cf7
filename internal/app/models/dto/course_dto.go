package dto

import "github.com/rmoreira/capacita/internal/app/models"

// CreateCourseRequest represents the course creation payload
type CreateCourseRequest struct {
	Name              string `json:"name" binding:"required,max=255"`
	Description       string `json:"description" binding:"omitempty,max=4000"`
	CertificatePhrase string `json:"certificatePhrase" binding:"omitempty,max=1000"`
	DisplayOrder      int    `json:"displayOrder" binding:"omitempty,min=0"`
	IsActive          bool   `json:"isActive"`
}

// UpdateCourseRequest represents the course update payload
type UpdateCourseRequest = CreateCourseRequest

// CourseListResponse represents a paginated list of courses
type CourseListResponse struct {
	Courses    []*models.Course `json:"courses"`
	Pagination PaginationInfo   `json:"pagination"`
}
