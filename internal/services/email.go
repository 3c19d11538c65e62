package services

import (
	"context"
	"fmt"
	"log"

	"memoir/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendExportReady sends the folder-export notification using the
// "export_ready" template and the given data.
func (s *emailService) SendExportReady(ctx context.Context, data *domain.ExportReadyEmailData) error {
	if data == nil {
		return fmt.Errorf("export ready data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("export_ready", data)
	if err != nil {
		return fmt.Errorf("failed to render export_ready template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send export ready email: %w", err)
	}
	log.Printf("[EMAIL] Export ready email sent to %s", data.Email)
	return nil
}
