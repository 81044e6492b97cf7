package services

import (
	"context"
	"fmt"

	"github.com/rmoreira/capacita/internal/app/models"
	"github.com/rmoreira/capacita/internal/pkg/email"
	"github.com/rmoreira/capacita/internal/pkg/logger"
	"github.com/rmoreira/capacita/internal/pkg/whatsapp"
)

// DeliveryNotifier sends certificate links over email and WhatsApp.
// Both channels are best-effort: a delivery failure never rolls back
// or blocks the generation that triggered it.
type DeliveryNotifier struct {
	emailService email.EmailService
	whatsapp     *whatsapp.Client
}

// NewDeliveryNotifier creates a notifier over the configured channels
func NewDeliveryNotifier(emailService email.EmailService, whatsappClient *whatsapp.Client) *DeliveryNotifier {
	return &DeliveryNotifier{
		emailService: emailService,
		whatsapp:     whatsappClient,
	}
}

// NotifyCertificate delivers a certificate link to the student
func (n *DeliveryNotifier) NotifyCertificate(ctx context.Context, student *models.Student, certificateURL string) {
	courseName := ""
	if student.Course != nil {
		courseName = student.Course.Name
	}

	if student.Email != "" {
		if err := n.emailService.SendCertificateEmail(student.Email, student.Name, courseName, certificateURL); err != nil {
			logger.Warn().Err(err).Int64("studentId", student.ID).Msg("Certificate email delivery failed")
		}
	}

	if student.Phone != "" && n.whatsapp != nil {
		message := fmt.Sprintf("Olá, %s! Seu certificado do curso %s está pronto: %s", student.Name, courseName, certificateURL)
		if err := n.whatsapp.SendMessage(ctx, student.Phone, message); err != nil {
			logger.Warn().Err(err).Int64("studentId", student.ID).Msg("Certificate WhatsApp delivery failed")
		}
	}
}
