package repositories

import (
	"context"

	"tattoo-studio-api/internal/models"
)

// UserRepository reads studio accounts
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// ServiceRepository reads the service catalogue
type ServiceRepository interface {
	// GetByID retrieves a service by ID
	GetByID(ctx context.Context, id int64) (*models.Service, error)
}

// BookingFilters narrows a booking listing. Zero values mean no filter.
type BookingFilters struct {
	UserID *int64
	Status models.BookingStatus
}

// BookingRepository defines operations for booking management
type BookingRepository interface {
	// Create inserts the booking and fills in its generated fields
	Create(ctx context.Context, booking *models.Booking) error

	// GetByID retrieves a booking by ID
	GetByID(ctx context.Context, id int64) (*models.Booking, error)

	// List retrieves bookings joined with service and client, newest booking date first
	List(ctx context.Context, filters BookingFilters) ([]*models.BookingDetails, error)

	// UpdateStatus sets the status of a booking and returns the updated row
	UpdateStatus(ctx context.Context, id int64, status models.BookingStatus) (*models.Booking, error)
}

// OrderFilters narrows an order listing. Zero values mean no filter.
type OrderFilters struct {
	UserID *int64
}

// OrderRepository defines operations for custom orders
type OrderRepository interface {
	// Create inserts the order and fills in its generated fields
	Create(ctx context.Context, order *models.Order) error

	// GetByID retrieves an order by ID
	GetByID(ctx context.Context, id int64) (*models.Order, error)

	// GetDetails retrieves an order joined with its client
	GetDetails(ctx context.Context, id int64) (*models.OrderDetails, error)

	// List retrieves orders joined with their clients, newest first
	List(ctx context.Context, filters OrderFilters) ([]*models.OrderDetails, error)

	// Update applies the non-nil changes, refreshes updated_at and returns the updated row
	Update(ctx context.Context, id int64, changes models.OrderChanges) (*models.Order, error)

	// MarkDiscussing moves a pending order to discussing. It reports whether
	// the status changed.
	MarkDiscussing(ctx context.Context, id int64) (bool, error)
}

// OrderMessageRepository defines operations for order chat threads
type OrderMessageRepository interface {
	// Create appends a message and fills in its generated fields
	Create(ctx context.Context, message *models.OrderMessage) error

	// ListByOrder retrieves the thread of an order, oldest first
	ListByOrder(ctx context.Context, orderID int64) ([]*models.OrderMessageDetails, error)
}

// ContactMessageRepository stores contact-form submissions
type ContactMessageRepository interface {
	// Create inserts the submission and fills in its generated fields
	Create(ctx context.Context, message *models.ContactMessage) error

	// GetByID retrieves a submission by ID
	GetByID(ctx context.Context, id int64) (*models.ContactMessage, error)
}
