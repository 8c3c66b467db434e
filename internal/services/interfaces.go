package services

import (
	"context"

	"tattoo-studio-api/internal/models"
)

// BookingService defines booking operations. It requires no caller identity.
type BookingService interface {
	ListBookings(ctx context.Context, filters *BookingFilters) ([]*models.BookingDetails, error)
	CreateBooking(ctx context.Context, req *CreateBookingRequest) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, req *UpdateBookingStatusRequest) (*models.Booking, error)
}

// ContactService accepts contact-form submissions
type ContactService interface {
	SubmitContactMessage(ctx context.Context, req *ContactRequest) (*models.ContactMessage, error)
}

// OrderService defines custom order operations on behalf of a caller
type OrderService interface {
	ListOrders(ctx context.Context, callerID int64) ([]*models.OrderDetails, error)
	GetOrder(ctx context.Context, callerID, orderID int64) (*models.OrderDetails, error)
	CreateOrder(ctx context.Context, callerID int64, req *CreateOrderRequest) (*models.Order, error)
	UpdateOrder(ctx context.Context, callerID int64, req *UpdateOrderRequest) (*models.Order, error)
}

// MessageService defines order chat operations on behalf of a caller
type MessageService interface {
	ListMessages(ctx context.Context, callerID, orderID int64) ([]*models.OrderMessageDetails, error)
	PostMessage(ctx context.Context, callerID int64, req *PostMessageRequest) (*models.OrderMessage, error)
}

// ContactNotifier delivers a notice about a new contact-form submission
type ContactNotifier interface {
	NotifyContactMessage(ctx context.Context, msg *models.ContactMessage) error
}

// Request types

// BookingFilters narrows the booking listing
type BookingFilters struct {
	UserID *int64
	Status string
}

// CreateBookingRequest represents a booking form submission
type CreateBookingRequest struct {
	UserID      int64  `json:"user_id" validate:"required"`
	ServiceID   int64  `json:"service_id" validate:"required"`
	BookingDate string `json:"booking_date" validate:"required"`
	Notes       string `json:"notes"`
}

// UpdateBookingStatusRequest changes the status of a booking
type UpdateBookingStatusRequest struct {
	ID     int64  `json:"id" validate:"required"`
	Status string `json:"status" validate:"required,booking_status"`
}

// ContactRequest represents a contact-form submission
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Message string `json:"message" validate:"required"`
}

// CreateOrderRequest represents a new custom order
type CreateOrderRequest struct {
	ServiceType string `json:"service_type" validate:"required"`
	Description string `json:"description"`
}

// UpdateOrderRequest represents a partial order update. Absent fields stay untouched.
type UpdateOrderRequest struct {
	OrderID       int64    `json:"order_id" validate:"required"`
	Status        *string  `json:"status" validate:"omitempty,order_status"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	PaymentMethod *string  `json:"payment_method" validate:"omitempty,max=50"`
}

// PostMessageRequest appends a message to an order thread
type PostMessageRequest struct {
	OrderID int64  `json:"order_id" validate:"required"`
	Message string `json:"message" validate:"required"`
}
