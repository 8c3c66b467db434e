package sqldb

import (
	"context"
	"strings"

	"tattoo-studio-api/internal/models"
	"tattoo-studio-api/internal/repositories"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

const bookingColumns = `id, user_id, service_id, booking_date, notes, status, created_at`

// BookingRepository implements repositories.BookingRepository
type BookingRepository struct {
	baseRepository
}

// NewBookingRepository creates a booking repository bound to ext
func NewBookingRepository(ext sqlx.ExtContext, logger *logrus.Logger) repositories.BookingRepository {
	return &BookingRepository{baseRepository: newBaseRepository(ext, "booking", logger)}
}

// Create inserts a booking and reloads it to pick up database defaults
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if booking.Status == "" {
		booking.Status = models.BookingStatusPending
	}

	id, err := r.insert(ctx, "create", `
		INSERT INTO bookings (user_id, service_id, booking_date, notes, status)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`,
		booking.UserID,
		booking.ServiceID,
		booking.BookingDate,
		booking.Notes,
		booking.Status,
	)
	if err != nil {
		return err
	}

	created, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	*booking = *created
	return nil
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	booking := &models.Booking{}
	err := r.get(ctx, "get_by_id", booking, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id)
	if err != nil {
		return nil, r.notFound(err, "get_by_id", id)
	}
	return booking, nil
}

// List retrieves bookings with their service and client, newest booking date first
func (r *BookingRepository) List(ctx context.Context, filters repositories.BookingFilters) ([]*models.BookingDetails, error) {
	query := `
		SELECT b.id, b.user_id, b.service_id, b.booking_date, b.notes, b.status, b.created_at,
			   s.name AS service_name, s.price, s.duration,
			   u.name AS client_name, u.email AS client_email
		FROM bookings b
		LEFT JOIN services s ON b.service_id = s.id
		LEFT JOIN users u ON b.user_id = u.id`

	var conditions []string
	var args []interface{}

	if filters.UserID != nil {
		conditions = append(conditions, "b.user_id = ?")
		args = append(args, *filters.UserID)
	}
	if filters.Status != "" {
		conditions = append(conditions, "b.status = ?")
		args = append(args, filters.Status)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY b.booking_date DESC, b.id DESC"

	bookings := []*models.BookingDetails{}
	if err := r.selectRows(ctx, "list", &bookings, query, args...); err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateStatus sets the status of a booking and returns the updated row
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status models.BookingStatus) (*models.Booking, error) {
	result, err := r.exec(ctx, "update_status", `UPDATE bookings SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return nil, err
	}

	if err := r.checkRowsAffected(result, "update_status", id); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}
