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

// Professor error types, shared with the service layer
var (
	ErrProfessorNotFound   = apperrors.ErrProfessorNotFound
	ErrProfessorCodeExists = apperrors.ErrResourceAlreadyExists
)

// ProfessorRepository handles database operations for professors
type ProfessorRepository struct {
	db *pgxpool.Pool
}

// NewProfessorRepository creates a new professor repository
func NewProfessorRepository(db *pgxpool.Pool) *ProfessorRepository {
	return &ProfessorRepository{
		db: db,
	}
}

// Create creates a new professor
func (r *ProfessorRepository) Create(ctx context.Context, professor *models.Professor) error {
	query := `
		INSERT INTO professors (code, name, email, phone, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		professor.Code,
		professor.Name,
		professor.Email,
		professor.Phone,
		professor.IsActive,
	).Scan(&professor.ID, &professor.CreatedAt, &professor.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrProfessorCodeExists
		}
		return fmt.Errorf("error creating professor: %w", err)
	}

	return nil
}

// GetByID retrieves a professor by ID
func (r *ProfessorRepository) GetByID(ctx context.Context, id int64) (*models.Professor, error) {
	query := `
		SELECT id, code, name, email, phone, signature_path, is_active, created_at, updated_at, deleted_at
		FROM professors
		WHERE id = $1 AND deleted_at IS NULL
	`

	var professor models.Professor
	err := r.db.QueryRow(ctx, query, id).Scan(
		&professor.ID,
		&professor.Code,
		&professor.Name,
		&professor.Email,
		&professor.Phone,
		&professor.SignaturePath,
		&professor.IsActive,
		&professor.CreatedAt,
		&professor.UpdatedAt,
		&professor.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfessorNotFound
		}
		return nil, fmt.Errorf("error retrieving professor: %w", err)
	}

	return &professor, nil
}

// GetAll retrieves all professors
func (r *ProfessorRepository) GetAll(ctx context.Context, activeOnly bool) ([]*models.Professor, error) {
	query := `
		SELECT id, code, name, email, phone, signature_path, is_active, created_at, updated_at, deleted_at
		FROM professors
		WHERE deleted_at IS NULL
	`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var professors []*models.Professor
	for rows.Next() {
		var professor models.Professor
		if err := rows.Scan(
			&professor.ID,
			&professor.Code,
			&professor.Name,
			&professor.Email,
			&professor.Phone,
			&professor.SignaturePath,
			&professor.IsActive,
			&professor.CreatedAt,
			&professor.UpdatedAt,
			&professor.DeletedAt,
		); err != nil {
			return nil, err
		}
		professors = append(professors, &professor)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return professors, nil
}

// Update edits a professor
func (r *ProfessorRepository) Update(ctx context.Context, professor *models.Professor) error {
	query := `
		UPDATE professors
		SET name = $1, email = $2, phone = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5 AND deleted_at IS NULL
	`

	tag, err := r.db.Exec(ctx, query,
		professor.Name,
		professor.Email,
		professor.Phone,
		professor.IsActive,
		professor.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating professor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfessorNotFound
	}

	return nil
}

// UpdateSignaturePath stores the uploaded signature image path
func (r *ProfessorRepository) UpdateSignaturePath(ctx context.Context, id int64, path string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE professors SET signature_path = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`,
		path, id)
	if err != nil {
		return fmt.Errorf("error updating professor signature: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfessorNotFound
	}
	return nil
}

// SoftDelete marks a professor as deleted without removing the row
func (r *ProfessorRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE professors SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`,
		id)
	if err != nil {
		return fmt.Errorf("error deleting professor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfessorNotFound
	}
	return nil
}
