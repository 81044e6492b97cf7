package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rmoreira/capacita/internal/app/models"
)

// LeadRepository handles database operations for marketing leads
type LeadRepository struct {
	db *pgxpool.Pool
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{
		db: db,
	}
}

// Create stores a captured lead
func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	query := `
		INSERT INTO leads (name, email, phone, message, course_interest)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Message,
		lead.CourseInterest,
	).Scan(&lead.ID, &lead.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating lead: %w", err)
	}

	return nil
}

// List retrieves leads newest first with LIMIT-offset pagination
func (r *LeadRepository) List(ctx context.Context, offset uint64, limit int) ([]*models.Lead, error) {
	query := `
		SELECT id, name, email, phone, message, course_interest, created_at
		FROM leads
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error listing leads: %w", err)
	}
	defer rows.Close()

	var leads []*models.Lead
	for rows.Next() {
		var lead models.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.Name,
			&lead.Email,
			&lead.Phone,
			&lead.Message,
			&lead.CourseInterest,
			&lead.CreatedAt,
		); err != nil {
			return nil, err
		}
		leads = append(leads, &lead)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return leads, nil
}

// Count returns the total number of captured leads
func (r *LeadRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM leads`).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting leads: %w", err)
	}
	return total, nil
}
