package services

import (
	"context"
	"fmt"

	"github.com/rmoreira/capacita/internal/app/repositories"
	"github.com/rmoreira/capacita/internal/pkg/apperrors"
)

// Settings keys the back office is allowed to change. Anything else is
// rejected so a typo cannot silently create dead configuration.
var allowedSettingKeys = map[string]bool{
	"company_name":    true,
	"company_slogan":  true,
	"primary_color":   true,
	"secondary_color": true,
	"logo_path":       true,
	"contact_email":   true,
	"contact_phone":   true,
	"contact_address": true,
	"whatsapp_number": true,
	"instagram_url":   true,
	"facebook_url":    true,
}

// SettingsService manages white-label configuration
type SettingsService struct {
	settingsRepo *repositories.SettingsRepository
}

// NewSettingsService creates a new settings service instance
func NewSettingsService(settingsRepo *repositories.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings returns all white-label values
func (s *SettingsService) GetSettings(ctx context.Context) (map[string]string, error) {
	return s.settingsRepo.GetAll(ctx)
}

// UpdateSettings upserts the given key/value pairs after checking every
// key against the allow list
func (s *SettingsService) UpdateSettings(ctx context.Context, values map[string]string) error {
	for key := range values {
		if !allowedSettingKeys[key] {
			return apperrors.NewBadRequestError(fmt.Sprintf("unknown setting key: %s", key))
		}
	}

	for key, value := range values {
		if err := s.settingsRepo.Set(ctx, key, value); err != nil {
			return fmt.Errorf("error saving setting %s: %w", key, err)
		}
	}
	return nil
}
