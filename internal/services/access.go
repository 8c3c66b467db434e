package services

import (
	"context"
	"fmt"

	"tattoo-studio-api/internal/models"
	"tattoo-studio-api/internal/repositories"
)

// AccessControl resolves callers and decides who may touch an order.
// Masters may access every order, clients only their own.
type AccessControl struct{}

// NewAccessControl creates the shared order access policy
func NewAccessControl() *AccessControl {
	return &AccessControl{}
}

// Caller loads the user behind the caller id
func (a *AccessControl) Caller(ctx context.Context, repos repositories.Repositories, userID int64) (*models.User, error) {
	user, err := repos.Users().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, NewNotFoundError("caller", MsgUserNotFound, err)
		}
		return nil, fmt.Errorf("failed to load caller: %w", err)
	}
	return user, nil
}

// CanAccess reports whether the caller may read or change the order
func (a *AccessControl) CanAccess(caller *models.User, order *models.Order) bool {
	return caller.IsMaster() || order.IsOwnedBy(caller.ID)
}

// AuthorizeOrder loads the order and checks that the caller may access it
func (a *AccessControl) AuthorizeOrder(ctx context.Context, repos repositories.Repositories, caller *models.User, orderID int64) (*models.Order, error) {
	order, err := repos.Orders().GetByID(ctx, orderID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, NewNotFoundError("authorize_order", MsgOrderNotFound, err)
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if !a.CanAccess(caller, order) {
		return nil, NewAuthorizationError("authorize_order", MsgAccessDenied)
	}

	return order, nil
}
