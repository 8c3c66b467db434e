package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"
	"github.com/sirupsen/logrus"

	"tattoo-studio-api/internal/models"
)

// Config holds the notification settings
type Config struct {
	ResendAPIKey string
	From         string
	To           []string
	Retry        *RetryConfig
}

// Enabled reports whether e-mail delivery is configured
func (c *Config) Enabled() bool {
	return c != nil && c.ResendAPIKey != "" && len(c.To) > 0
}

// Validate checks an enabled configuration
func (c *Config) Validate() error {
	if !c.Enabled() {
		return nil
	}
	if strings.TrimSpace(c.From) == "" {
		return fmt.Errorf("notification sender address is required")
	}
	return nil
}

// New returns a resend notifier when delivery is configured and a logging
// notifier otherwise
func New(config *Config, logger *logrus.Logger) (Notifier, error) {
	if logger == nil {
		logger = logrus.New()
	}
	if !config.Enabled() {
		logger.Debug("Contact notifications disabled, logging submissions only")
		return NewLogNotifier(logger), nil
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client := resend.NewClient(config.ResendAPIKey)
	return NewResendNotifier(client.Emails, config.From, config.To, config.Retry, logger), nil
}

// Notifier delivers contact-form notices
type Notifier interface {
	NotifyContactMessage(ctx context.Context, msg *models.ContactMessage) error
}

// LogNotifier records submissions in the log instead of sending e-mail
type LogNotifier struct {
	logger *logrus.Logger
}

// NewLogNotifier creates a logging notifier
func NewLogNotifier(logger *logrus.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// NotifyContactMessage logs the submission
func (n *LogNotifier) NotifyContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	if msg == nil {
		return NewNotifyError("contact", 0, ErrInvalidMessage, false)
	}
	n.logger.WithFields(logrus.Fields{
		"contact_id": msg.ID,
		"has_email":  msg.HasEmail(),
	}).Info("Contact notification skipped, delivery not configured")
	return nil
}
