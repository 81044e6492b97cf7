package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendCertificateEmail(toEmail, toName, courseName, certificateURL string) error
	SendPreRegistrationEmail(toEmail, toName, courseName, token string) error
	SendLeadNotification(leadName, leadEmail, leadPhone, message string) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	BaseURL   string // Base URL for the application
	LeadInbox string // Address that receives marketing lead notifications
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// SendCertificateEmail sends the student a link to their certificate
func (s *EmailServiceImpl) SendCertificateEmail(toEmail, toName, courseName, certificateURL string) error {
	// If username or password is empty, log the email (for development only)
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("certificateURL", certificateURL).
			Msg("SMTP credentials not configured - certificate email not sent. Use the URL above for testing.")
		return nil
	}

	subject := fmt.Sprintf("Seu certificado do curso %s - Capacita", courseName)

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Parabéns, %s!</h2>
				<p>Seu certificado do curso <strong>%s</strong> está pronto.</p>

				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Baixar certificado</a>
				</div>

				<p>O QR code impresso no certificado permite que qualquer pessoa confirme a autenticidade do documento.</p>

				<p>Atenciosamente,<br>Equipe Capacita</p>
			</div>
		</body>
		</html>
	`, toName, courseName, certificateURL)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendPreRegistrationEmail invites a pre-registered student to complete
// their enrollment through a one-time token link
func (s *EmailServiceImpl) SendPreRegistrationEmail(toEmail, toName, courseName, token string) error {
	registrationURL := fmt.Sprintf("%s/pre-cadastro/%s", s.config.BaseURL, token)

	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("token", token).
			Str("registrationURL", registrationURL).
			Msg("SMTP credentials not configured - pre-registration email not sent. Use the token/URL above for testing.")
		return nil
	}

	subject := fmt.Sprintf("Complete sua matrícula no curso %s - Capacita", courseName)

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Olá, %s!</h2>
				<p>Você foi pré-cadastrado no curso <strong>%s</strong>. Para concluir sua matrícula, complete seus dados pelo link abaixo:</p>

				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Completar matrícula</a>
				</div>

				<p>Este link é pessoal e pode ser usado apenas uma vez.</p>

				<p>Atenciosamente,<br>Equipe Capacita</p>
			</div>
		</body>
		</html>
	`, toName, courseName, registrationURL)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendLeadNotification forwards a new marketing lead to the configured inbox
func (s *EmailServiceImpl) SendLeadNotification(leadName, leadEmail, leadPhone, message string) error {
	if s.config.LeadInbox == "" {
		s.logger.Warn().Str("leadEmail", leadEmail).Msg("Lead inbox not configured - lead notification skipped")
		return nil
	}

	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("leadName", leadName).
			Str("leadEmail", leadEmail).
			Msg("SMTP credentials not configured - lead notification not sent.")
		return nil
	}

	subject := fmt.Sprintf("Novo lead: %s", leadName)

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Novo contato pelo site</h2>
				<p><strong>Nome:</strong> %s</p>
				<p><strong>E-mail:</strong> %s</p>
				<p><strong>Telefone:</strong> %s</p>
				<p><strong>Mensagem:</strong></p>
				<p>%s</p>
			</div>
		</body>
		</html>
	`, leadName, leadEmail, leadPhone, message)

	return s.sendHTMLEmail(s.config.LeadInbox, subject, body)
}

// sendHTMLEmail sends an HTML email
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	// Set up authentication information
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	// Set up email headers
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = toEmail
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	// Construct message
	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	// Use TLS if configured
	if s.config.UseTLS {
		tlsConfig := &tls.Config{
			InsecureSkipVerify: true,
			ServerName:         s.config.Host,
		}

		conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
		if err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to create SMTP client")
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Quit()

		if err = client.Auth(auth); err != nil {
			s.logger.Error().Err(err).Msg("SMTP authentication failed")
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}

		if err = client.Mail(s.config.FromEmail); err != nil {
			return fmt.Errorf("failed to set sender: %w", err)
		}
		if err = client.Rcpt(toEmail); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("failed to get data writer: %w", err)
		}
		_, err = w.Write([]byte(message))
		if err != nil {
			return fmt.Errorf("failed to write email message: %w", err)
		}
		err = w.Close()
		if err != nil {
			return fmt.Errorf("failed to close data writer: %w", err)
		}

		return nil
	}

	// Simple SMTP without TLS
	err := smtp.SendMail(
		serverAddress,
		auth,
		s.config.FromEmail,
		[]string{toEmail},
		[]byte(message),
	)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
