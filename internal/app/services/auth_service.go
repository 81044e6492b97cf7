package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rmoreira/capacita/internal/app/models"
	"github.com/rmoreira/capacita/internal/app/models/dto"
	"github.com/rmoreira/capacita/internal/app/repositories"
	"github.com/rmoreira/capacita/internal/pkg/apperrors"
	"github.com/rmoreira/capacita/internal/pkg/auth"
	"github.com/rmoreira/capacita/internal/pkg/logger"
)

// AuthService handles back-office authentication and the one-time
// pre-registration completion flow
type AuthService struct {
	userRepo    *repositories.UserRepository
	tokenRepo   *repositories.TokenRepository
	studentRepo *repositories.StudentRepository
	jwtService  *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.TokenRepository,
	studentRepo *repositories.StudentRepository,
	jwtService *auth.JWTService,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		studentRepo: studentRepo,
		jwtService:  jwtService,
	}
}

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, *models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("error fetching user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, nil, apperrors.ErrAccountDisabled
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to record last login time")
	}

	return tokens, user, nil
}

// RefreshTokens rotates a refresh token into a new token pair
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, err := s.tokenRepo.GetRefreshTokenUser(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) || errors.Is(err, apperrors.ErrTokenExpired) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("error resolving refresh token: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	// Rotation: the presented token dies with this exchange
	if err := s.tokenRepo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		logger.Warn().Err(err).Msg("Failed to revoke rotated refresh token")
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.tokenRepo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("error revoking refresh token: %w", err)
	}
	return nil
}

// CompletePreRegistration consumes a one-time token and turns the
// pre-registered student into an account holder. The token is spent
// even if a later step fails so it can never be replayed.
func (s *AuthService) CompletePreRegistration(ctx context.Context, tokenValue string, req dto.CompletePreRegistrationRequest) (*models.User, error) {
	token, err := s.tokenRepo.ConsumePreRegistration(ctx, tokenValue)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrPreRegistrationTokenUsed):
			return nil, err
		case errors.Is(err, apperrors.ErrTokenNotFound), errors.Is(err, apperrors.ErrTokenExpired):
			return nil, apperrors.ErrPreRegistrationTokenInvalid
		default:
			return nil, fmt.Errorf("error consuming pre-registration token: %w", err)
		}
	}

	if token.Kind != models.TokenKindStudent {
		return nil, apperrors.ErrPreRegistrationTokenInvalid
	}

	student, err := s.studentRepo.GetByID(ctx, token.SubjectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrPreRegistrationTokenInvalid
		}
		return nil, fmt.Errorf("error fetching pre-registered student: %w", err)
	}

	// The form may correct the contact data the admin imported
	if req.Email != "" {
		student.Email = req.Email
	}
	if req.Phone != "" {
		student.Phone = req.Phone
	}
	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, fmt.Errorf("error updating student contact data: %w", err)
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:    student.Email,
		Password: hashed,
		Name:     student.Name,
		RoleType: models.RoleStudent,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokenRepo.StoreRefreshToken(ctx, user.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		TokenType:        "Bearer",
	}, nil
}
