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

// messageService implements the MessageService interface
type messageService struct {
	store     repositories.Store
	access    *AccessControl
	validator *validator.Validate
	logger    *logrus.Logger
}

// NewMessageService creates a new order chat service instance
func NewMessageService(store repositories.Store, access *AccessControl, logger *logrus.Logger) MessageService {
	return &messageService{
		store:     store,
		access:    access,
		validator: newValidator(),
		logger:    logger,
	}
}

// ListMessages returns the thread of an order the caller may access
func (s *messageService) ListMessages(ctx context.Context, callerID, orderID int64) ([]*models.OrderMessageDetails, error) {
	if orderID <= 0 {
		return nil, NewValidationError("list_messages", MsgOrderIDRequired)
	}

	var messages []*models.OrderMessageDetails
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		caller, err := s.access.Caller(ctx, repos, callerID)
		if err != nil {
			return err
		}

		if _, err := s.access.AuthorizeOrder(ctx, repos, caller, orderID); err != nil {
			return err
		}

		messages, err = repos.OrderMessages().ListByOrder(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return messages, nil
}

// PostMessage appends a message to the thread. The first message on a
// pending order moves it to discussing within the same transaction.
func (s *messageService) PostMessage(ctx context.Context, callerID int64, req *PostMessageRequest) (*models.OrderMessage, error) {
	const op = "post_message"

	if req == nil {
		return nil, NewValidationError(op, MsgMessageFieldsRequired)
	}

	req.Message = strings.TrimSpace(req.Message)
	if err := validateRequest(s.validator, op, req, MsgMessageFieldsRequired); err != nil {
		return nil, err
	}

	message := models.NewOrderMessage(req.OrderID, callerID, req.Message)
	var transitioned bool

	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		caller, err := s.access.Caller(ctx, repos, callerID)
		if err != nil {
			return err
		}

		order, err := s.access.AuthorizeOrder(ctx, repos, caller, req.OrderID)
		if err != nil {
			return err
		}

		if err := repos.OrderMessages().Create(ctx, message); err != nil {
			return err
		}

		if order.Status == models.OrderStatusPending {
			transitioned, err = repos.Orders().MarkDiscussing(ctx, order.ID)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to post message: %w", err)
	}

	if transitioned {
		metrics.RecordOrderTransition(string(models.OrderStatusPending), string(models.OrderStatusDiscussing))
	}
	s.logger.WithFields(logrus.Fields{
		"order_id":     message.OrderID,
		"message_id":   message.ID,
		"sender_id":    message.SenderID,
		"transitioned": transitioned,
	}).Info("Order message posted")

	return message, nil
}
