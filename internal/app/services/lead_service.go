package services

import (
	"context"
	"fmt"

	"github.com/rmoreira/capacita/internal/app/models"
	"github.com/rmoreira/capacita/internal/app/models/dto"
	"github.com/rmoreira/capacita/internal/app/repositories"
	"github.com/rmoreira/capacita/internal/pkg/email"
	"github.com/rmoreira/capacita/internal/pkg/logger"
)

// LeadService captures marketing-site contacts
type LeadService struct {
	leadRepo     *repositories.LeadRepository
	emailService email.EmailService
}

// NewLeadService creates a new lead service instance
func NewLeadService(leadRepo *repositories.LeadRepository, emailService email.EmailService) *LeadService {
	return &LeadService{
		leadRepo:     leadRepo,
		emailService: emailService,
	}
}

// CreateLead stores a contact-form submission and forwards it to the
// sales inbox. The notification is best-effort; the lead is already
// saved when it fires.
func (s *LeadService) CreateLead(ctx context.Context, req dto.CreateLeadRequest) (*models.Lead, error) {
	lead := &models.Lead{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Message:        req.Message,
		CourseInterest: req.CourseInterest,
	}

	if err := s.leadRepo.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("error saving lead: %w", err)
	}

	if err := s.emailService.SendLeadNotification(lead.Name, lead.Email, lead.Phone, lead.Message); err != nil {
		logger.Warn().Err(err).Str("email", lead.Email).Msg("Lead notification email failed")
	}

	return lead, nil
}

// ListLeads returns a paginated page of captured leads, newest first
func (s *LeadService) ListLeads(ctx context.Context, offset uint64, limit int) ([]*models.Lead, int64, error) {
	leads, err := s.leadRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing leads: %w", err)
	}

	total, err := s.leadRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting leads: %w", err)
	}

	return leads, total, nil
}
