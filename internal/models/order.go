package models

import (
	"time"
)

// OrderStatus represents the lifecycle state of a custom order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusDiscussing OrderStatus = "discussing"
	OrderStatusPriced     OrderStatus = "priced"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusCompleted  OrderStatus = "completed"
)

// IsValid reports whether the status is a known order status
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusDiscussing, OrderStatusPriced, OrderStatusPaid, OrderStatusCompleted:
		return true
	}
	return false
}

// Order represents a bespoke request for work, priced by a master
type Order struct {
	ID            int64       `json:"id" db:"id"`
	UserID        int64       `json:"user_id" db:"user_id"`
	ServiceType   string      `json:"service_type" db:"service_type"`
	Description   string      `json:"description" db:"description"`
	Status        OrderStatus `json:"status" db:"status"`
	Price         *float64    `json:"price" db:"price"`
	PaymentMethod *string     `json:"payment_method" db:"payment_method"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}

// NewOrder creates a pending, unpriced order
func NewOrder(userID int64, serviceType, description string) *Order {
	return &Order{
		UserID:      userID,
		ServiceType: serviceType,
		Description: description,
		Status:      OrderStatusPending,
	}
}

// IsOwnedBy returns true if the order belongs to the given user
func (o *Order) IsOwnedBy(userID int64) bool {
	return o != nil && o.UserID == userID
}

// OrderDetails is an order joined with its client
type OrderDetails struct {
	Order
	ClientName  string `json:"client_name" db:"client_name"`
	ClientEmail string `json:"client_email" db:"client_email"`
}

// OrderChanges holds a partial order update. Nil fields are left untouched.
type OrderChanges struct {
	Status        *OrderStatus
	Price         *float64
	PaymentMethod *string
}

// IsEmpty returns true if no field is set
func (c OrderChanges) IsEmpty() bool {
	return c.Status == nil && c.Price == nil && c.PaymentMethod == nil
}
