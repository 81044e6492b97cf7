package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rmoreira/capacita/internal/app/models"
	"github.com/rmoreira/capacita/internal/app/models/dto"
	"github.com/rmoreira/capacita/internal/pkg/apperrors"
	"github.com/rmoreira/capacita/internal/pkg/certificate"
	"github.com/rmoreira/capacita/internal/pkg/logger"
)

// studentCertificateStore is the slice of the student repository the
// certificate flow needs
type studentCertificateStore interface {
	GetByIDFull(ctx context.Context, id int64) (*models.Student, error)
	GetByCode(ctx context.Context, code string) (*models.Student, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*models.Student, error)
	SetCertificate(ctx context.Context, id int64, path string, generatedAt time.Time) error
	ClearCertificate(ctx context.Context, id int64) error
}

// certificateRenderer draws a certificate image and returns its path
type certificateRenderer interface {
	Render(data certificate.RenderData) (string, error)
}

// qrProvider produces verification QR codes. An empty path means the
// code could not be produced and the certificate renders without it.
type qrProvider interface {
	VerificationURL(studentCode string) string
	Generate(studentCode string) (string, error)
}

// CertificateNotifier delivers a freshly generated certificate to the
// student. Implementations must be best-effort: failures are logged,
// never returned.
type CertificateNotifier interface {
	NotifyCertificate(ctx context.Context, student *models.Student, certificateURL string)
}

// CertificateService drives certificate generation, deletion and the
// public verification lookup
type CertificateService struct {
	studentRepo studentCertificateStore
	renderer    certificateRenderer
	qr          qrProvider
	notifier    CertificateNotifier
	baseURL     string
}

// NewCertificateService creates a new certificate service instance
func NewCertificateService(
	studentRepo studentCertificateStore,
	renderer certificateRenderer,
	qr qrProvider,
	notifier CertificateNotifier,
	baseURL string,
) *CertificateService {
	return &CertificateService{
		studentRepo: studentRepo,
		renderer:    renderer,
		qr:          qr,
		notifier:    notifier,
		baseURL:     baseURL,
	}
}

// Generate renders a certificate for one student. With force unset, a
// student who already holds a certificate is rejected; with force set
// the old file is replaced.
func (s *CertificateService) Generate(ctx context.Context, studentID int64, force bool) (*dto.CertificateResponse, error) {
	student, err := s.studentRepo.GetByIDFull(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.generateFor(ctx, student, force)
}

// generateFor runs the pipeline against an already loaded student. The
// student must carry its course, professor and workload relations.
func (s *CertificateService) generateFor(ctx context.Context, student *models.Student, force bool) (*dto.CertificateResponse, error) {
	if student.CertificateGenerated && !force {
		return nil, apperrors.ErrCertificateAlreadyGenerated
	}

	if student.Course == nil || student.Professor == nil || student.CourseHours == nil {
		return nil, fmt.Errorf("student %d is missing course, professor or workload data", student.ID)
	}

	// QR failure degrades the certificate, it does not block it
	qrPath, err := s.qr.Generate(student.Code)
	if err != nil {
		logger.Warn().Err(err).Str("code", student.Code).Msg("QR generation failed, rendering without it")
		qrPath = ""
	}

	data := certificate.RenderData{
		StudentID:      student.ID,
		StudentName:    student.Name,
		Phrase:         student.Course.RenderPhrase(student.Name),
		CourseName:     student.Course.Name,
		Hours:          student.CourseHours.Hours,
		CompletionDate: student.CompletionDate(),
		ProfessorName:  student.Professor.Name,
		QRPath:         qrPath,
	}
	if student.Professor.SignaturePath != nil {
		data.SignaturePath = *student.Professor.SignaturePath
	}

	path, err := s.renderer.Render(data)
	if err != nil {
		return nil, err
	}

	oldPath := ""
	if force && student.CertificatePath != nil {
		oldPath = *student.CertificatePath
	}

	generatedAt := time.Now()
	if err := s.studentRepo.SetCertificate(ctx, student.ID, path, generatedAt); err != nil {
		// The record stayed consistent; only the new file is orphaned
		if remErr := os.Remove(path); remErr != nil {
			logger.Warn().Err(remErr).Str("path", path).Msg("Failed to remove orphaned certificate file")
		}
		return nil, err
	}

	if oldPath != "" && oldPath != path {
		if err := os.Remove(oldPath); err != nil && !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("path", oldPath).Msg("Failed to remove replaced certificate file")
		}
	}

	if s.notifier != nil {
		s.notifier.NotifyCertificate(ctx, student, s.CertificateURL(path))
	}

	return &dto.CertificateResponse{
		StudentID:   student.ID,
		Path:        path,
		GeneratedAt: generatedAt,
	}, nil
}

// GenerateBatch renders certificates for many students in one pass.
// Per-student failures are tallied, never propagated: one bad record
// must not abort the run.
func (s *CertificateService) GenerateBatch(ctx context.Context, req dto.GenerateBatchRequest) (*dto.BatchResult, error) {
	students, err := s.studentRepo.ListByIDs(ctx, req.StudentIDs)
	if err != nil {
		return nil, fmt.Errorf("error loading students for batch: %w", err)
	}

	found := make(map[int64]*models.Student, len(students))
	for _, st := range students {
		found[st.ID] = st
	}

	result := &dto.BatchResult{}
	for _, id := range req.StudentIDs {
		student, ok := found[id]
		if !ok {
			logger.Error().Int64("studentId", id).Msg("Batch generation: student not found")
			result.Failed++
			continue
		}

		if _, err := s.generateFor(ctx, student, req.Force); err != nil {
			if errors.Is(err, apperrors.ErrCertificateAlreadyGenerated) {
				result.Skipped++
				continue
			}
			logger.Error().Err(err).Int64("studentId", id).Msg("Batch generation: render failed")
			result.Failed++
			continue
		}
		result.Generated++
	}

	return result, nil
}

// Delete removes a student's certificate file and clears the
// certificate fields in one update
func (s *CertificateService) Delete(ctx context.Context, studentID int64) error {
	student, err := s.studentRepo.GetByIDFull(ctx, studentID)
	if err != nil {
		return err
	}

	if !student.CertificateGenerated || student.CertificatePath == nil {
		return apperrors.ErrCertificateNotGenerated
	}

	path := *student.CertificatePath
	if err := s.studentRepo.ClearCertificate(ctx, studentID); err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Str("path", path).Msg("Failed to remove certificate file")
	}

	return nil
}

// Verify resolves the public QR lookup for a student code. The
// response never leaks contact data; it only confirms the certificate.
func (s *CertificateService) Verify(ctx context.Context, code string) (*dto.VerificationResponse, error) {
	student, err := s.studentRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	resp := &dto.VerificationResponse{
		StudentName: student.Name,
		Certified:   student.CertificateGenerated,
		GeneratedAt: student.CertificateGeneratedAt,
	}
	if student.Course != nil {
		resp.CourseName = student.Course.Name
	}
	if student.CourseHours != nil {
		resp.Hours = student.CourseHours.Hours
	}
	if student.CertificateGenerated {
		completion := student.CompletionDate()
		resp.CompletionDate = &completion
	}
	return resp, nil
}

// CertificatePath resolves the filesystem path of a student's
// certificate, erroring when none was generated
func (s *CertificateService) CertificatePath(ctx context.Context, studentID int64) (string, *models.Student, error) {
	student, err := s.studentRepo.GetByIDFull(ctx, studentID)
	if err != nil {
		return "", nil, err
	}
	if !student.CertificateGenerated || student.CertificatePath == nil {
		return "", nil, apperrors.ErrCertificateNotGenerated
	}
	return *student.CertificatePath, student, nil
}

// ExportPDF wraps a student's certificate JPEG in a PDF for download
func (s *CertificateService) ExportPDF(ctx context.Context, studentID int64) (string, error) {
	path, _, err := s.CertificatePath(ctx, studentID)
	if err != nil {
		return "", err
	}
	return certificate.ExportPDF(path)
}

// CertificateURL builds the public URL a certificate file is served at
func (s *CertificateService) CertificateURL(path string) string {
	return fmt.Sprintf("%s/uploads/certificados/%s", s.baseURL, filepath.Base(path))
}
