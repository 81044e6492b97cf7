package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rmoreira/capacita/internal/app/models"
	"github.com/rmoreira/capacita/internal/app/models/dto"
	"github.com/rmoreira/capacita/internal/pkg/apperrors"
)

// Student error types, shared with the service layer
var (
	ErrStudentNotFound   = apperrors.ErrStudentNotFound
	ErrStudentCodeExists = apperrors.ErrStudentCodeExists
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

const studentColumns = `
	s.id, s.code, s.name, s.email, s.phone,
	s.course_id, s.professor_id, s.course_hours_id,
	s.start_date, s.end_date, s.grade, s.best_student, s.photo_path,
	s.certificate_path, s.certificate_generated, s.certificate_generated_at,
	s.status, s.created_at, s.updated_at, s.deleted_at`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	err := row.Scan(
		&student.ID,
		&student.Code,
		&student.Name,
		&student.Email,
		&student.Phone,
		&student.CourseID,
		&student.ProfessorID,
		&student.CourseHoursID,
		&student.StartDate,
		&student.EndDate,
		&student.Grade,
		&student.BestStudent,
		&student.PhotoPath,
		&student.CertificatePath,
		&student.CertificateGenerated,
		&student.CertificateGeneratedAt,
		&student.Status,
		&student.CreatedAt,
		&student.UpdatedAt,
		&student.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// Create inserts a new student row
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (code, name, email, phone, course_id, professor_id, course_hours_id,
			start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		student.Code,
		student.Name,
		student.Email,
		student.Phone,
		student.CourseID,
		student.ProfessorID,
		student.CourseHoursID,
		student.StartDate,
		student.EndDate,
		student.Status,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrStudentCodeExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID, soft-deleted rows excluded
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `SELECT` + studentColumns + `
		FROM students s
		WHERE s.id = $1 AND s.deleted_at IS NULL`

	student, err := scanStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByCode retrieves a student by its public code with course,
// professor and hours joined, for certificate rendering and public
// verification.
func (r *StudentRepository) GetByCode(ctx context.Context, code string) (*models.Student, error) {
	return r.getJoined(ctx, "s.code = $1", code)
}

// GetByIDFull retrieves a student by ID with relations joined
func (r *StudentRepository) GetByIDFull(ctx context.Context, id int64) (*models.Student, error) {
	return r.getJoined(ctx, "s.id = $1", id)
}

func joinedStudentQuery(where string) string {
	return `SELECT` + studentColumns + `,
			c.id, c.name, c.description, c.certificate_phrase, c.display_order, c.is_active, c.created_at, c.updated_at,
			p.id, p.code, p.name, p.email, p.phone, p.signature_path, p.is_active, p.created_at, p.updated_at,
			h.id, h.hours
		FROM students s
		JOIN courses c ON c.id = s.course_id
		JOIN professors p ON p.id = s.professor_id
		JOIN course_hours h ON h.id = s.course_hours_id
		WHERE ` + where + ` AND s.deleted_at IS NULL`
}

func scanJoinedStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	var course models.Course
	var professor models.Professor
	var hours models.CourseHours

	err := row.Scan(
		&student.ID, &student.Code, &student.Name, &student.Email, &student.Phone,
		&student.CourseID, &student.ProfessorID, &student.CourseHoursID,
		&student.StartDate, &student.EndDate, &student.Grade, &student.BestStudent, &student.PhotoPath,
		&student.CertificatePath, &student.CertificateGenerated, &student.CertificateGeneratedAt,
		&student.Status, &student.CreatedAt, &student.UpdatedAt, &student.DeletedAt,
		&course.ID, &course.Name, &course.Description, &course.CertificatePhrase,
		&course.DisplayOrder, &course.IsActive, &course.CreatedAt, &course.UpdatedAt,
		&professor.ID, &professor.Code, &professor.Name, &professor.Email, &professor.Phone,
		&professor.SignaturePath, &professor.IsActive, &professor.CreatedAt, &professor.UpdatedAt,
		&hours.ID, &hours.Hours,
	)
	if err != nil {
		return nil, err
	}

	student.Course = &course
	student.Professor = &professor
	student.CourseHours = &hours
	return &student, nil
}

func (r *StudentRepository) getJoined(ctx context.Context, where string, arg interface{}) (*models.Student, error) {
	student, err := scanJoinedStudent(r.db.QueryRow(ctx, joinedStudentQuery(where), arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// buildFilter assembles the WHERE clause and args for list queries
func buildFilter(filter dto.StudentFilter) (string, []interface{}) {
	conditions := []string{"s.deleted_at IS NULL"}
	args := make([]interface{}, 0, 5)

	if filter.CourseID > 0 {
		args = append(args, filter.CourseID)
		conditions = append(conditions, fmt.Sprintf("s.course_id = $%d", len(args)))
	}
	if filter.ProfessorID > 0 {
		args = append(args, filter.ProfessorID)
		conditions = append(conditions, fmt.Sprintf("s.professor_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("s.status = $%d", len(args)))
	}
	if filter.Certified != nil {
		args = append(args, *filter.Certified)
		conditions = append(conditions, fmt.Sprintf("s.certificate_generated = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conditions = append(conditions, fmt.Sprintf("(s.name ILIKE $%d OR s.code ILIKE $%d)", len(args), len(args)))
	}

	return strings.Join(conditions, " AND "), args
}

// List retrieves students matching the filter with LIMIT-offset pagination
func (r *StudentRepository) List(ctx context.Context, filter dto.StudentFilter, offset uint64, limit int) ([]*models.Student, error) {
	where, args := buildFilter(filter)

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT%s
		FROM students s
		WHERE %s
		ORDER BY s.name
		LIMIT $%d OFFSET $%d`, studentColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Count returns the number of students matching the filter
func (r *StudentRepository) Count(ctx context.Context, filter dto.StudentFilter) (int64, error) {
	where, args := buildFilter(filter)

	var total int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM students s WHERE %s`, where)
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}

	return total, nil
}

// ListByIDs retrieves the given students in one query, with the
// course, professor and workload relations the certificate pipeline
// needs. Missing ids are simply absent from the result.
func (r *StudentRepository) ListByIDs(ctx context.Context, ids []int64) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx, joinedStudentQuery("s.id = ANY($1)"), ids)
	if err != nil {
		return nil, fmt.Errorf("error listing students by ids: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanJoinedStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Update edits the mutable enrollment fields of a student
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET name = $1, email = $2, phone = $3, course_id = $4, professor_id = $5,
			course_hours_id = $6, start_date = $7, end_date = $8, grade = $9,
			best_student = $10, status = $11, updated_at = NOW()
		WHERE id = $12 AND deleted_at IS NULL
	`

	tag, err := r.db.Exec(ctx, query,
		student.Name,
		student.Email,
		student.Phone,
		student.CourseID,
		student.ProfessorID,
		student.CourseHoursID,
		student.StartDate,
		student.EndDate,
		student.Grade,
		student.BestStudent,
		student.Status,
		student.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}

	return nil
}

// UpdatePhotoPath stores the uploaded photo path
func (r *StudentRepository) UpdatePhotoPath(ctx context.Context, id int64, path string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE students SET photo_path = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`,
		path, id)
	if err != nil {
		return fmt.Errorf("error updating student photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}
	return nil
}

// SetCertificate records a generated certificate. Path, flag and
// timestamp change in a single UPDATE so the path/flag invariant can
// never be observed half-applied.
func (r *StudentRepository) SetCertificate(ctx context.Context, id int64, path string, generatedAt time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE students
		SET certificate_path = $1, certificate_generated = TRUE,
			certificate_generated_at = $2, updated_at = NOW()
		WHERE id = $3 AND deleted_at IS NULL`,
		path, generatedAt, id)
	if err != nil {
		return fmt.Errorf("error recording certificate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}
	return nil
}

// ClearCertificate removes the certificate state in a single UPDATE
func (r *StudentRepository) ClearCertificate(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE students
		SET certificate_path = NULL, certificate_generated = FALSE,
			certificate_generated_at = NULL, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`,
		id)
	if err != nil {
		return fmt.Errorf("error clearing certificate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}
	return nil
}

// SoftDelete marks a student as deleted without removing the row
func (r *StudentRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE students SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`,
		id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}
	return nil
}

// CountByCourse returns how many non-deleted students reference a course
func (r *StudentRepository) CountByCourse(ctx context.Context, courseID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM students WHERE course_id = $1 AND deleted_at IS NULL`,
		courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting students by course: %w", err)
	}
	return count, nil
}

// CountByProfessor returns how many non-deleted students reference a professor
func (r *StudentRepository) CountByProfessor(ctx context.Context, professorID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM students WHERE professor_id = $1 AND deleted_at IS NULL`,
		professorID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting students by professor: %w", err)
	}
	return count, nil
}
