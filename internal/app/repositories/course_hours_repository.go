package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rmoreira/capacita/internal/app/models"
	"github.com/rmoreira/capacita/internal/pkg/apperrors"
)

// Course-hours error types, shared with the service layer
var (
	ErrCourseHoursNotFound      = apperrors.ErrResourceNotFound
	ErrCourseHoursAlreadyExists = apperrors.ErrResourceAlreadyExists
)

// CourseHoursRepository handles database operations for workload lookup values
type CourseHoursRepository struct {
	db *pgxpool.Pool
}

// NewCourseHoursRepository creates a new course-hours repository
func NewCourseHoursRepository(db *pgxpool.Pool) *CourseHoursRepository {
	return &CourseHoursRepository{
		db: db,
	}
}

// Create registers a new workload value
func (r *CourseHoursRepository) Create(ctx context.Context, hours *models.CourseHours) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO course_hours (hours) VALUES ($1) RETURNING id`,
		hours.Hours).Scan(&hours.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrCourseHoursAlreadyExists
		}
		return fmt.Errorf("error creating course hours: %w", err)
	}
	return nil
}

// GetByID retrieves a workload value by ID
func (r *CourseHoursRepository) GetByID(ctx context.Context, id int64) (*models.CourseHours, error) {
	var hours models.CourseHours
	err := r.db.QueryRow(ctx,
		`SELECT id, hours FROM course_hours WHERE id = $1`, id).Scan(&hours.ID, &hours.Hours)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseHoursNotFound
		}
		return nil, fmt.Errorf("error retrieving course hours: %w", err)
	}
	return &hours, nil
}

// GetAll retrieves all workload values in ascending order
func (r *CourseHoursRepository) GetAll(ctx context.Context) ([]*models.CourseHours, error) {
	rows, err := r.db.Query(ctx, `SELECT id, hours FROM course_hours ORDER BY hours`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []*models.CourseHours
	for rows.Next() {
		var hours models.CourseHours
		if err := rows.Scan(&hours.ID, &hours.Hours); err != nil {
			return nil, err
		}
		values = append(values, &hours)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return values, nil
}
