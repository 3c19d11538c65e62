package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// ExportReadyEmailData holds data for the "your export is ready" email sent
// after a successful folder export.
type ExportReadyEmailData struct {
	Email      string
	EventName  string
	FolderLink string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendExportReady(ctx context.Context, data *ExportReadyEmailData) error
}
