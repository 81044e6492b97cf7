package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rmoreira/capacita/internal/app/models"
	"github.com/rmoreira/capacita/internal/pkg/apperrors"
)

// Token error types, shared with the service layer
var (
	ErrTokenNotFound    = apperrors.ErrTokenNotFound
	ErrTokenAlreadyUsed = apperrors.ErrPreRegistrationTokenUsed
	ErrTokenExpired     = apperrors.ErrTokenExpired
)

// TokenRepository handles one-time pre-registration tokens and admin
// refresh tokens.
type TokenRepository struct {
	db *pgxpool.Pool
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
	}
}

// CreatePreRegistration stores a one-time completion token
func (r *TokenRepository) CreatePreRegistration(ctx context.Context, token *models.PreRegistrationToken) error {
	query := `
		INSERT INTO preregistration_tokens (token, kind, subject_id, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		token.Token,
		token.Kind,
		token.SubjectID,
		token.ExpiresAt,
	).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating pre-registration token: %w", err)
	}

	return nil
}

// ConsumePreRegistration validates and burns a token in one statement.
// The UPDATE only matches unused, unexpired tokens, so a second call
// for the same token fails with ErrTokenAlreadyUsed or ErrTokenExpired.
func (r *TokenRepository) ConsumePreRegistration(ctx context.Context, tokenValue string) (*models.PreRegistrationToken, error) {
	query := `
		UPDATE preregistration_tokens
		SET used_at = NOW()
		WHERE token = $1 AND used_at IS NULL AND expires_at > NOW()
		RETURNING id, token, kind, subject_id, expires_at, used_at, created_at
	`

	var token models.PreRegistrationToken
	err := r.db.QueryRow(ctx, query, tokenValue).Scan(
		&token.ID,
		&token.Token,
		&token.Kind,
		&token.SubjectID,
		&token.ExpiresAt,
		&token.UsedAt,
		&token.CreatedAt,
	)
	if err == nil {
		return &token, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("error consuming pre-registration token: %w", err)
	}

	// Distinguish why the token did not match
	var usedAt *time.Time
	var expiresAt time.Time
	probe := r.db.QueryRow(ctx,
		`SELECT used_at, expires_at FROM preregistration_tokens WHERE token = $1`, tokenValue)
	if probeErr := probe.Scan(&usedAt, &expiresAt); probeErr != nil {
		if errors.Is(probeErr, pgx.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("error inspecting pre-registration token: %w", probeErr)
	}
	if usedAt != nil {
		return nil, ErrTokenAlreadyUsed
	}
	return nil, ErrTokenExpired
}

// StoreRefreshToken persists an admin refresh token
func (r *TokenRepository) StoreRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)`,
		userID, token, expiresAt)
	if err != nil {
		return fmt.Errorf("error storing refresh token: %w", err)
	}
	return nil
}

// GetRefreshTokenUser resolves an unexpired refresh token to its user id
func (r *TokenRepository) GetRefreshTokenUser(ctx context.Context, token string) (int64, error) {
	var userID int64
	err := r.db.QueryRow(ctx,
		`SELECT user_id FROM refresh_tokens WHERE token = $1 AND expires_at > NOW()`,
		token).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrTokenNotFound
		}
		return 0, fmt.Errorf("error retrieving refresh token: %w", err)
	}
	return userID, nil
}

// RevokeRefreshToken deletes a refresh token
func (r *TokenRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("error revoking refresh token: %w", err)
	}
	return nil
}
