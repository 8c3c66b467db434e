package notify

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"tattoo-studio-api/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var contactTemplate = template.Must(template.ParseFS(templateFS, "templates/contact_message.html"))

type contactTemplateData struct {
	ID         int64
	Name       string
	Phone      string
	Email      string
	Message    string
	ReceivedAt string
}

// renderContactMessage renders the e-mail body for a contact submission.
// html/template escapes visitor input.
func renderContactMessage(msg *models.ContactMessage) (string, error) {
	receivedAt := msg.CreatedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}

	data := contactTemplateData{
		ID:         msg.ID,
		Name:       msg.Name,
		Phone:      msg.Phone,
		Email:      msg.Email,
		Message:    msg.Message,
		ReceivedAt: receivedAt.Format("02.01.2006 15:04"),
	}

	var body bytes.Buffer
	if err := contactTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute contact template: %w", err)
	}
	return body.String(), nil
}
