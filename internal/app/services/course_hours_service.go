package services

import (
	"context"

	"github.com/rmoreira/capacita/internal/app/models"
	"github.com/rmoreira/capacita/internal/app/models/dto"
	"github.com/rmoreira/capacita/internal/app/repositories"
)

// CourseHoursService manages the workload lookup table
type CourseHoursService struct {
	courseHoursRepo *repositories.CourseHoursRepository
}

// NewCourseHoursService creates a new course hours service instance
func NewCourseHoursService(courseHoursRepo *repositories.CourseHoursRepository) *CourseHoursService {
	return &CourseHoursService{courseHoursRepo: courseHoursRepo}
}

// CreateCourseHours adds a workload value for course forms to pick from
func (s *CourseHoursService) CreateCourseHours(ctx context.Context, req dto.CreateCourseHoursRequest) (*models.CourseHours, error) {
	hours := &models.CourseHours{Hours: req.Hours}
	if err := s.courseHoursRepo.Create(ctx, hours); err != nil {
		return nil, err
	}
	return hours, nil
}

// ListCourseHours returns all workload values in ascending order
func (s *CourseHoursService) ListCourseHours(ctx context.Context) ([]*models.CourseHours, error) {
	return s.courseHoursRepo.GetAll(ctx)
}
