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

// orderService implements the OrderService interface
type orderService struct {
	store     repositories.Store
	access    *AccessControl
	validator *validator.Validate
	logger    *logrus.Logger
}

// NewOrderService creates a new order service instance
func NewOrderService(store repositories.Store, access *AccessControl, logger *logrus.Logger) OrderService {
	return &orderService{
		store:     store,
		access:    access,
		validator: newValidator(),
		logger:    logger,
	}
}

// ListOrders returns every order to a master and the caller's own orders to a client
func (s *orderService) ListOrders(ctx context.Context, callerID int64) ([]*models.OrderDetails, error) {
	var orders []*models.OrderDetails
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		caller, err := s.access.Caller(ctx, repos, callerID)
		if err != nil {
			return err
		}

		filters := repositories.OrderFilters{}
		if !caller.IsMaster() {
			filters.UserID = &caller.ID
		}

		orders, err = repos.Orders().List(ctx, filters)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// GetOrder returns a single order with its client details
func (s *orderService) GetOrder(ctx context.Context, callerID, orderID int64) (*models.OrderDetails, error) {
	const op = "get_order"

	var order *models.OrderDetails
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		caller, err := s.access.Caller(ctx, repos, callerID)
		if err != nil {
			return err
		}

		order, err = repos.Orders().GetDetails(ctx, orderID)
		if err != nil {
			if repositories.IsNotFound(err) {
				return NewNotFoundError(op, MsgOrderNotFound, err)
			}
			return err
		}

		if !s.access.CanAccess(caller, &order.Order) {
			return NewAuthorizationError(op, MsgAccessDenied)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return order, nil
}

// CreateOrder creates a pending, unpriced order owned by the caller
func (s *orderService) CreateOrder(ctx context.Context, callerID int64, req *CreateOrderRequest) (*models.Order, error) {
	const op = "create_order"

	if req == nil {
		return nil, NewValidationError(op, MsgServiceTypeRequired)
	}

	req.ServiceType = strings.TrimSpace(req.ServiceType)
	if err := validateRequest(s.validator, op, req, MsgServiceTypeRequired); err != nil {
		return nil, err
	}

	order := models.NewOrder(callerID, req.ServiceType, req.Description)

	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		if _, err := s.access.Caller(ctx, repos, callerID); err != nil {
			return err
		}
		return repos.Orders().Create(ctx, order)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  order.UserID,
	}).Info("Order created")

	return order, nil
}

// UpdateOrder applies a partial update. Only masters may set the price; a
// price without an explicit status moves the order to priced.
func (s *orderService) UpdateOrder(ctx context.Context, callerID int64, req *UpdateOrderRequest) (*models.Order, error) {
	const op = "update_order"

	if req == nil {
		return nil, NewValidationError(op, MsgOrderIDRequired)
	}

	if err := validateRequest(s.validator, op, req, MsgOrderIDRequired); err != nil {
		return nil, err
	}

	var previous models.OrderStatus
	var updated *models.Order
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		caller, err := s.access.Caller(ctx, repos, callerID)
		if err != nil {
			return err
		}

		order, err := s.access.AuthorizeOrder(ctx, repos, caller, req.OrderID)
		if err != nil {
			return err
		}
		previous = order.Status

		changes := buildOrderChanges(caller, req)
		if changes.IsEmpty() {
			return NewValidationError(op, MsgNothingToUpdate)
		}

		updated, err = repos.Orders().Update(ctx, order.ID, changes)
		if repositories.IsNotFound(err) {
			return NewNotFoundError(op, MsgOrderNotFound, err)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	metrics.RecordOrderTransition(string(previous), string(updated.Status))
	s.logger.WithFields(logrus.Fields{
		"order_id":   updated.ID,
		"caller_id":  callerID,
		"old_status": previous,
		"new_status": updated.Status,
	}).Info("Order updated")

	return updated, nil
}

func buildOrderChanges(caller *models.User, req *UpdateOrderRequest) models.OrderChanges {
	changes := models.OrderChanges{PaymentMethod: req.PaymentMethod}

	if req.Status != nil {
		status := models.OrderStatus(*req.Status)
		changes.Status = &status
	}

	// Clients cannot price their own orders; the field is dropped silently.
	if req.Price != nil && caller.IsMaster() {
		changes.Price = req.Price
		if changes.Status == nil {
			priced := models.OrderStatusPriced
			changes.Status = &priced
		}
	}

	return changes
}
