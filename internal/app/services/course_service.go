package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rmoreira/capacita/internal/app/models"
	"github.com/rmoreira/capacita/internal/app/models/dto"
	"github.com/rmoreira/capacita/internal/app/repositories"
	"github.com/rmoreira/capacita/internal/pkg/apperrors"
)

// CourseService handles course catalog operations
type CourseService struct {
	courseRepo  *repositories.CourseRepository
	studentRepo *repositories.StudentRepository
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo *repositories.CourseRepository, studentRepo *repositories.StudentRepository) *CourseService {
	return &CourseService{
		courseRepo:  courseRepo,
		studentRepo: studentRepo,
	}
}

// CreateCourse adds a course to the catalog
func (s *CourseService) CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewBadRequestError("course name cannot be empty")
	}

	course := &models.Course{
		Name:              strings.TrimSpace(req.Name),
		Description:       req.Description,
		CertificatePhrase: req.CertificatePhrase,
		DisplayOrder:      req.DisplayOrder,
		IsActive:          true,
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// GetCourseByID retrieves a course by ID
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequestError("invalid course ID")
	}
	return s.courseRepo.GetByID(ctx, id)
}

// ListCourses returns the catalog, optionally restricted to active courses
func (s *CourseService) ListCourses(ctx context.Context, activeOnly bool) ([]*models.Course, error) {
	return s.courseRepo.GetAll(ctx, activeOnly)
}

// UpdateCourse applies an edit to a catalog entry
func (s *CourseService) UpdateCourse(ctx context.Context, id int64, req dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	course.Name = strings.TrimSpace(req.Name)
	course.Description = req.Description
	course.CertificatePhrase = req.CertificatePhrase
	course.DisplayOrder = req.DisplayOrder
	course.IsActive = req.IsActive

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteCourse removes a course. Courses with enrolled students are
// protected; deactivate them instead.
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	enrolled, err := s.studentRepo.CountByCourse(ctx, id)
	if err != nil {
		return fmt.Errorf("error counting enrolled students: %w", err)
	}
	if enrolled > 0 {
		return apperrors.ErrCourseHasStudents
	}
	return s.courseRepo.Delete(ctx, id)
}
