package repositories

import (
	"context"
)

// Repositories provides access to all repositories bound to one transaction
type Repositories interface {
	Users() UserRepository
	Services() ServiceRepository
	Bookings() BookingRepository
	Orders() OrderRepository
	OrderMessages() OrderMessageRepository
	ContactMessages() ContactMessageRepository
}

// Store opens a connection per call and runs fn inside a single transaction
// on it. The transaction commits when fn returns nil and rolls back
// otherwise; the connection is always closed before WithTransaction returns.
type Store interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error

	// Health checks that the database is reachable
	Health(ctx context.Context) error
}
