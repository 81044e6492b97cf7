package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"mime/multipart"
	"strings"
	"time"

	"github.com/rmoreira/capacita/internal/app/models"
	"github.com/rmoreira/capacita/internal/app/models/dto"
	"github.com/rmoreira/capacita/internal/app/repositories"
	"github.com/rmoreira/capacita/internal/pkg/apperrors"
	"github.com/rmoreira/capacita/internal/pkg/filestorage"
	"github.com/rmoreira/capacita/internal/pkg/logger"
)

// ProfessorService handles instructor operations
type ProfessorService struct {
	professorRepo *repositories.ProfessorRepository
	studentRepo   *repositories.StudentRepository
	storage       filestorage.Storage
}

// NewProfessorService creates a new professor service instance
func NewProfessorService(professorRepo *repositories.ProfessorRepository, studentRepo *repositories.StudentRepository, storage filestorage.Storage) *ProfessorService {
	return &ProfessorService{
		professorRepo: professorRepo,
		studentRepo:   studentRepo,
		storage:       storage,
	}
}

// CreateProfessor registers a new instructor
func (s *ProfessorService) CreateProfessor(ctx context.Context, req dto.CreateProfessorRequest) (*models.Professor, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewBadRequestError("professor name cannot be empty")
	}

	professor := &models.Professor{
		Name:     strings.TrimSpace(req.Name),
		Email:    req.Email,
		Phone:    req.Phone,
		IsActive: true,
	}

	for attempt := 0; attempt < codeGenerationAttempts; attempt++ {
		professor.Code = newProfessorCode()
		err := s.professorRepo.Create(ctx, professor)
		if err == nil {
			return professor, nil
		}
		if !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			return nil, fmt.Errorf("error creating professor: %w", err)
		}
	}
	return nil, fmt.Errorf("could not allocate a unique professor code after %d attempts", codeGenerationAttempts)
}

func newProfessorCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		n = big.NewInt(time.Now().UnixNano() % 10000)
	}
	return fmt.Sprintf("PRF-%04d", n.Int64())
}

// GetProfessorByID retrieves a professor by ID
func (s *ProfessorService) GetProfessorByID(ctx context.Context, id int64) (*models.Professor, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequestError("invalid professor ID")
	}
	return s.professorRepo.GetByID(ctx, id)
}

// ListProfessors returns all professors, optionally only active ones
func (s *ProfessorService) ListProfessors(ctx context.Context, activeOnly bool) ([]*models.Professor, error) {
	return s.professorRepo.GetAll(ctx, activeOnly)
}

// UpdateProfessor applies an edit to an instructor record
func (s *ProfessorService) UpdateProfessor(ctx context.Context, id int64, req dto.UpdateProfessorRequest) (*models.Professor, error) {
	professor, err := s.professorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	professor.Name = strings.TrimSpace(req.Name)
	professor.Email = req.Email
	professor.Phone = req.Phone
	professor.IsActive = req.IsActive

	if err := s.professorRepo.Update(ctx, professor); err != nil {
		return nil, err
	}
	return professor, nil
}

// UpdateSignature stores an uploaded signature image. The image gets
// composited onto every certificate the professor signs from now on;
// already generated certificates keep the old one.
func (s *ProfessorService) UpdateSignature(ctx context.Context, id int64, file *multipart.FileHeader) (string, error) {
	if _, err := s.professorRepo.GetByID(ctx, id); err != nil {
		return "", err
	}

	path, err := s.storage.SaveFileWithPath(file, "signatures")
	if err != nil {
		return "", fmt.Errorf("error saving signature: %w", err)
	}

	if err := s.professorRepo.UpdateSignaturePath(ctx, id, path); err != nil {
		if delErr := s.storage.DeleteFile(path); delErr != nil {
			logger.Warn().Err(delErr).Str("path", path).Msg("Failed to remove orphaned signature upload")
		}
		return "", err
	}
	return path, nil
}

// DeleteProfessor soft deletes an instructor. Professors with assigned
// students are protected.
func (s *ProfessorService) DeleteProfessor(ctx context.Context, id int64) error {
	assigned, err := s.studentRepo.CountByProfessor(ctx, id)
	if err != nil {
		return fmt.Errorf("error counting assigned students: %w", err)
	}
	if assigned > 0 {
		return apperrors.ErrProfessorHasStudents
	}
	return s.professorRepo.SoftDelete(ctx, id)
}
