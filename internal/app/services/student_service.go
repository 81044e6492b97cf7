package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"github.com/rmoreira/capacita/internal/app/models"
	"github.com/rmoreira/capacita/internal/app/models/dto"
	"github.com/rmoreira/capacita/internal/app/repositories"
	"github.com/rmoreira/capacita/internal/pkg/apperrors"
	"github.com/rmoreira/capacita/internal/pkg/email"
	"github.com/rmoreira/capacita/internal/pkg/filestorage"
	"github.com/rmoreira/capacita/internal/pkg/logger"
)

// Attempts at generating a unique student code before giving up
const codeGenerationAttempts = 5

// How long a pre-registration link stays valid
const preRegistrationTTL = 7 * 24 * time.Hour

// StudentService handles enrollment operations
type StudentService struct {
	studentRepo     *repositories.StudentRepository
	courseRepo      *repositories.CourseRepository
	professorRepo   *repositories.ProfessorRepository
	courseHoursRepo *repositories.CourseHoursRepository
	tokenRepo       *repositories.TokenRepository
	storage         filestorage.Storage
	emailService    email.EmailService
}

// NewStudentService creates a new student service instance
func NewStudentService(
	studentRepo *repositories.StudentRepository,
	courseRepo *repositories.CourseRepository,
	professorRepo *repositories.ProfessorRepository,
	courseHoursRepo *repositories.CourseHoursRepository,
	tokenRepo *repositories.TokenRepository,
	storage filestorage.Storage,
	emailService email.EmailService,
) *StudentService {
	return &StudentService{
		studentRepo:     studentRepo,
		courseRepo:      courseRepo,
		professorRepo:   professorRepo,
		courseHoursRepo: courseHoursRepo,
		tokenRepo:       tokenRepo,
		storage:         storage,
		emailService:    emailService,
	}
}

// validateReferences checks that the course, professor and workload a
// student points at all exist
func (s *StudentService) validateReferences(ctx context.Context, courseID, professorID, courseHoursID int64) error {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return apperrors.NewBadRequestError("course does not exist")
		}
		return fmt.Errorf("error checking course: %w", err)
	}
	if _, err := s.professorRepo.GetByID(ctx, professorID); err != nil {
		if errors.Is(err, apperrors.ErrProfessorNotFound) {
			return apperrors.NewBadRequestError("professor does not exist")
		}
		return fmt.Errorf("error checking professor: %w", err)
	}
	if _, err := s.courseHoursRepo.GetByID(ctx, courseHoursID); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.NewBadRequestError("course hours value does not exist")
		}
		return fmt.Errorf("error checking course hours: %w", err)
	}
	return nil
}

// CreateStudent enrolls a new student and assigns their public code
func (s *StudentService) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	if err := s.validateReferences(ctx, req.CourseID, req.ProfessorID, req.CourseHoursID); err != nil {
		return nil, err
	}

	student := &models.Student{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		CourseID:      req.CourseID,
		ProfessorID:   req.ProfessorID,
		CourseHoursID: req.CourseHoursID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Status:        models.StudentStatusActive,
	}

	if err := s.createWithCode(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// createWithCode inserts a student, retrying with fresh codes on the
// rare collision
func (s *StudentService) createWithCode(ctx context.Context, student *models.Student) error {
	for attempt := 0; attempt < codeGenerationAttempts; attempt++ {
		student.Code = newStudentCode()
		err := s.studentRepo.Create(ctx, student)
		if err == nil {
			return nil
		}
		if !errors.Is(err, apperrors.ErrStudentCodeExists) {
			return fmt.Errorf("error creating student: %w", err)
		}
	}
	return fmt.Errorf("could not allocate a unique student code after %d attempts", codeGenerationAttempts)
}

// newStudentCode builds the public identifier printed on certificates,
// e.g. ALU-2026-493021
func newStudentCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		n = big.NewInt(time.Now().UnixNano() % 1000000)
	}
	return fmt.Sprintf("ALU-%d-%06d", time.Now().Year(), n.Int64())
}

// GetStudentByID retrieves a student with course, professor and
// workload relations populated
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequestError("invalid student ID")
	}
	return s.studentRepo.GetByIDFull(ctx, id)
}

// ListStudents returns a filtered, paginated page of students
func (s *StudentService) ListStudents(ctx context.Context, filter dto.StudentFilter, offset uint64, limit int) ([]*models.Student, int64, error) {
	students, err := s.studentRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}

	total, err := s.studentRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	return students, total, nil
}

// UpdateStudent applies an admin edit to a student record
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, req dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validateReferences(ctx, req.CourseID, req.ProfessorID, req.CourseHoursID); err != nil {
		return nil, err
	}

	student.Name = req.Name
	student.Email = req.Email
	student.Phone = req.Phone
	student.CourseID = req.CourseID
	student.ProfessorID = req.ProfessorID
	student.CourseHoursID = req.CourseHoursID
	student.StartDate = req.StartDate
	student.EndDate = req.EndDate
	student.Grade = req.Grade
	student.BestStudent = req.BestStudent
	student.Status = models.StudentStatus(req.Status)

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// UpdateStudentPhoto stores an uploaded photo and records its path
func (s *StudentService) UpdateStudentPhoto(ctx context.Context, id int64, file *multipart.FileHeader) (string, error) {
	if _, err := s.studentRepo.GetByID(ctx, id); err != nil {
		return "", err
	}

	path, err := s.storage.SaveFileWithPath(file, "students")
	if err != nil {
		return "", fmt.Errorf("error saving student photo: %w", err)
	}

	if err := s.studentRepo.UpdatePhotoPath(ctx, id, path); err != nil {
		// Orphaned file is cheaper than a broken record
		if delErr := s.storage.DeleteFile(path); delErr != nil {
			logger.Warn().Err(delErr).Str("path", path).Msg("Failed to remove orphaned photo upload")
		}
		return "", err
	}
	return path, nil
}

// DeleteStudent soft deletes a student. The row and any generated
// certificate files are kept for audit purposes.
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	return s.studentRepo.SoftDelete(ctx, id)
}

// PreRegisterStudents imports a batch of students with minimal data and
// issues one-time completion tokens. Row failures are counted, not
// propagated, so one bad entry never blocks an import.
func (s *StudentService) PreRegisterStudents(ctx context.Context, req dto.PreRegisterStudentsRequest) (*dto.PreRegisterStudentsResponse, error) {
	if err := s.validateReferences(ctx, req.CourseID, req.ProfessorID, req.CourseHoursID); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("error fetching course: %w", err)
	}

	result := &dto.PreRegisterStudentsResponse{Tokens: make([]string, 0, len(req.Students))}

	for _, entry := range req.Students {
		student := &models.Student{
			Name:          entry.Name,
			Email:         entry.Email,
			CourseID:      req.CourseID,
			ProfessorID:   req.ProfessorID,
			CourseHoursID: req.CourseHoursID,
			Status:        models.StudentStatusActive,
		}
		if err := s.createWithCode(ctx, student); err != nil {
			logger.Error().Err(err).Str("email", entry.Email).Msg("Pre-registration row failed")
			result.Failed++
			continue
		}

		token := &models.PreRegistrationToken{
			Token:     uuid.New().String(),
			Kind:      models.TokenKindStudent,
			SubjectID: student.ID,
			ExpiresAt: time.Now().Add(preRegistrationTTL),
		}
		if err := s.tokenRepo.CreatePreRegistration(ctx, token); err != nil {
			logger.Error().Err(err).Int64("studentId", student.ID).Msg("Failed to issue pre-registration token")
			result.Failed++
			continue
		}

		if err := s.emailService.SendPreRegistrationEmail(entry.Email, entry.Name, course.Name, token.Token); err != nil {
			// The token still works; the admin can resend the link
			logger.Warn().Err(err).Str("email", entry.Email).Msg("Failed to send pre-registration email")
		}

		result.Created++
		result.Tokens = append(result.Tokens, token.Token)
	}

	return result, nil
}
