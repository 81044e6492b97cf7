package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/rmoreira/capacita/internal/app/models"
	appRepos "github.com/rmoreira/capacita/internal/app/repositories"
	"github.com/rmoreira/capacita/internal/pkg/apperrors"
)

// Workload values offered on a fresh install
var defaultCourseHours = []int{8, 16, 20, 40, 60, 80, 120}

// White-label defaults for a fresh install
var defaultSettings = map[string]string{
	"company_name":   "Capacita Cursos",
	"company_slogan": "Formação profissional que abre portas",
	"primary_color":  "#1e3a8a",
	"contact_email":  "contato@capacita.app",
}

// CreateDefaultData seeds the admin account, workload values and
// white-label settings on first boot. Every step tolerates existing
// rows so restarts are safe.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	courseHoursRepo := appRepos.NewCourseHoursRepository(dbPool)
	settingsRepo := appRepos.NewSettingsRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Default admin --- //
	_, err := userRepo.GetByEmail(ctx, "admin@capacita.app")
	if err != nil {
		if !errors.Is(err, apperrors.ErrResourceNotFound) {
			lgr.Error().Err(err).Msg("Error checking for default admin")
			finalErr = errors.Join(finalErr, err)
		} else {
			hashed, hashErr := bcrypt.GenerateFromPassword([]byte("admin123"), 12)
			if hashErr != nil {
				lgr.Error().Err(hashErr).Msg("Error hashing default admin password")
				finalErr = errors.Join(finalErr, hashErr)
			} else {
				admin := &appModels.User{
					Email:    "admin@capacita.app",
					Password: string(hashed),
					Name:     "Administrador",
					RoleType: appModels.RoleAdmin,
					IsActive: true,
				}
				if createErr := userRepo.Create(ctx, admin); createErr != nil && !errors.Is(createErr, apperrors.ErrEmailAlreadyExists) {
					lgr.Error().Err(createErr).Msg("Error creating default admin")
					finalErr = errors.Join(finalErr, createErr)
				} else if createErr == nil {
					lgr.Warn().Str("email", admin.Email).Msg("Default admin created with password 'admin123'. Change it immediately.")
				}
			}
		}
	}

	// --- Workload lookup values --- //
	for _, hours := range defaultCourseHours {
		ch := &appModels.CourseHours{Hours: hours}
		if err := courseHoursRepo.Create(ctx, ch); err != nil && !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			lgr.Error().Err(err).Int("hours", hours).Msg("Error seeding course hours value")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- White-label settings --- //
	existing, err := settingsRepo.GetAll(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error reading existing settings")
		finalErr = errors.Join(finalErr, err)
	} else {
		for key, value := range defaultSettings {
			if _, ok := existing[key]; ok {
				continue
			}
			if err := settingsRepo.Set(ctx, key, value); err != nil {
				lgr.Error().Err(err).Str("key", key).Msg("Error seeding setting")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check complete.")
	}
	return finalErr
}
