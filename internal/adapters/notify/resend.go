package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"
	"github.com/sirupsen/logrus"

	"tattoo-studio-api/internal/models"
)

// EmailSender is the part of the resend e-mail API the notifier uses
type EmailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendNotifier e-mails the studio about new contact-form submissions
type ResendNotifier struct {
	sender EmailSender
	from   string
	to     []string
	retry  *RetryConfig
	logger *logrus.Logger
}

// NewResendNotifier creates a notifier over the given sender
func NewResendNotifier(sender EmailSender, from string, to []string, retry *RetryConfig, logger *logrus.Logger) *ResendNotifier {
	if retry == nil {
		retry = DefaultRetryConfig()
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &ResendNotifier{
		sender: sender,
		from:   from,
		to:     to,
		retry:  retry,
		logger: logger,
	}
}

// NotifyContactMessage sends one e-mail per submission. A visitor e-mail,
// when present, becomes the reply-to address.
func (n *ResendNotifier) NotifyContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	if msg == nil {
		return NewNotifyError("contact", 0, ErrInvalidMessage, false)
	}
	if n.sender == nil || len(n.to) == 0 {
		return NewNotifyError("contact", msg.ID, ErrNotConfigured, false)
	}

	html, err := renderContactMessage(msg)
	if err != nil {
		return NewNotifyError("contact", msg.ID, err, false)
	}

	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      n.to,
		Subject: fmt.Sprintf("Новая заявка: %s, %s", msg.Name, msg.Phone),
		Html:    html,
	}
	if msg.HasEmail() {
		params.ReplyTo = msg.Email
	}

	var sent *resend.SendEmailResponse
	err = WithRetry(ctx, n.retry, func(ctx context.Context) error {
		resp, sendErr := n.sender.SendWithContext(ctx, params)
		if sendErr != nil {
			return sendErr
		}
		sent = resp
		return nil
	})
	if err != nil {
		return NewNotifyError("contact", msg.ID, fmt.Errorf("%w: %v", ErrDeliveryFailed, err), false)
	}

	n.logger.WithFields(logrus.Fields{
		"contact_id": msg.ID,
		"email_id":   sent.Id,
		"recipients": strings.Join(n.to, ","),
	}).Info("Contact notification sent")

	return nil
}
