package dto

import (
	"time"

	"github.com/rmoreira/capacita/internal/app/models"
)

// CreateStudentRequest represents the enrollment form payload
type CreateStudentRequest struct {
	Name          string     `json:"name" binding:"required,max=255"`
	Email         string     `json:"email" binding:"required,email"`
	Phone         string     `json:"phone" binding:"omitempty,max=32"`
	CourseID      int64      `json:"courseId" binding:"required,min=1"`
	ProfessorID   int64      `json:"professorId" binding:"required,min=1"`
	CourseHoursID int64      `json:"courseHoursId" binding:"required,min=1"`
	StartDate     *time.Time `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
}

// UpdateStudentRequest represents an admin edit of a student record
type UpdateStudentRequest struct {
	Name          string     `json:"name" binding:"required,max=255"`
	Email         string     `json:"email" binding:"required,email"`
	Phone         string     `json:"phone" binding:"omitempty,max=32"`
	CourseID      int64      `json:"courseId" binding:"required,min=1"`
	ProfessorID   int64      `json:"professorId" binding:"required,min=1"`
	CourseHoursID int64      `json:"courseHoursId" binding:"required,min=1"`
	StartDate     *time.Time `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
	Grade         *float64   `json:"grade" binding:"omitempty,min=0,max=10"`
	BestStudent   bool       `json:"bestStudent"`
	Status        string     `json:"status" binding:"required,oneof=ACTIVE COMPLETED CANCELLED"`
}

// StudentFilter carries the admin list-screen filters
type StudentFilter struct {
	CourseID    int64
	ProfessorID int64
	Status      string
	Certified   *bool  // nil = all, true = generated only, false = pending only
	Search      string // Matches name or code
}

// StudentListResponse represents a paginated list of students
type StudentListResponse struct {
	Students   []*models.Student `json:"students"`
	Pagination PaginationInfo    `json:"pagination"`
}

// PreRegisterStudentsRequest is the batch pre-registration import payload
type PreRegisterStudentsRequest struct {
	CourseID      int64                      `json:"courseId" binding:"required,min=1"`
	ProfessorID   int64                      `json:"professorId" binding:"required,min=1"`
	CourseHoursID int64                      `json:"courseHoursId" binding:"required,min=1"`
	Students      []PreRegisterStudentEntry  `json:"students" binding:"required,min=1,dive"`
}

// PreRegisterStudentEntry is one row of a batch pre-registration import
type PreRegisterStudentEntry struct {
	Name  string `json:"name" binding:"required,max=255"`
	Email string `json:"email" binding:"required,email"`
}

// PreRegisterStudentsResponse reports the outcome of a batch import
type PreRegisterStudentsResponse struct {
	Created int      `json:"created"`
	Failed  int      `json:"failed"`
	Tokens  []string `json:"tokens"` // One-time completion tokens, in input order for created rows
}
