package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"tattoo-studio-api/internal/metrics"
	"tattoo-studio-api/internal/models"
	"tattoo-studio-api/internal/repositories"
)

// contactService implements the ContactService interface
type contactService struct {
	store     repositories.Store
	notifier  ContactNotifier
	validator *validator.Validate
	logger    *logrus.Logger
}

// NewContactService creates a new contact service. notifier may be nil.
func NewContactService(store repositories.Store, notifier ContactNotifier, logger *logrus.Logger) ContactService {
	return &contactService{
		store:     store,
		notifier:  notifier,
		validator: newValidator(),
		logger:    logger,
	}
}

// SubmitContactMessage stores a trimmed submission and notifies the studio
func (s *contactService) SubmitContactMessage(ctx context.Context, req *ContactRequest) (*models.ContactMessage, error) {
	const op = "submit_contact_message"

	if req == nil {
		return nil, NewValidationError(op, MsgContactFieldsRequired)
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	if err := validateRequest(s.validator, op, req, MsgContactFieldsRequired); err != nil {
		return nil, err
	}

	msg := &models.ContactMessage{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Message: req.Message,
	}

	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		return repos.ContactMessages().Create(ctx, msg)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save contact message: %w", err)
	}

	s.logger.WithField("contact_id", msg.ID).Info("Contact message received")

	if s.notifier != nil {
		if err := s.notifier.NotifyContactMessage(ctx, msg); err != nil {
			metrics.ContactNotificationFailuresTotal.Inc()
			s.logger.WithError(err).WithField("contact_id", msg.ID).Warn("Failed to send contact notification")
		}
	}

	return msg, nil
}
