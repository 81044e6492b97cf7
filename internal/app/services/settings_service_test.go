package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rmoreira/capacita/internal/pkg/apperrors"
)

func TestUpdateSettingsRejectsUnknownKey(t *testing.T) {
	// The allow list check runs before any repository access
	svc := NewSettingsService(nil)

	err := svc.UpdateSettings(context.Background(), map[string]string{
		"company_name": "Capacita Cursos",
		"compny_name":  "typo",
	})
	if err == nil {
		t.Fatal("UpdateSettings accepted an unknown key")
	}

	var custom *apperrors.CustomError
	if !errors.As(err, &custom) || !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("error = %v, want a bad request CustomError", err)
	}
}

func TestAllowedSettingKeysCoverWhiteLabelSurface(t *testing.T) {
	required := []string{
		"company_name", "company_slogan",
		"primary_color", "secondary_color", "logo_path",
		"contact_email", "contact_phone", "contact_address",
		"whatsapp_number", "instagram_url", "facebook_url",
	}
	for _, key := range required {
		if !allowedSettingKeys[key] {
			t.Errorf("expected setting key %q to be allowed", key)
		}
	}
}
