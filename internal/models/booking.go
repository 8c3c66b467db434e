package models

import (
	"fmt"
	"strings"
	"time"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// IsValid reports whether the status is a known booking status
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking represents a scheduled appointment of a client for a service
type Booking struct {
	ID          int64         `json:"id" db:"id"`
	UserID      int64         `json:"user_id" db:"user_id"`
	ServiceID   int64         `json:"service_id" db:"service_id"`
	BookingDate time.Time     `json:"booking_date" db:"booking_date"`
	Notes       string        `json:"notes" db:"notes"`
	Status      BookingStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}

// NewBooking creates a pending booking
func NewBooking(userID, serviceID int64, bookingDate time.Time, notes string) *Booking {
	return &Booking{
		UserID:      userID,
		ServiceID:   serviceID,
		BookingDate: bookingDate,
		Notes:       notes,
		Status:      BookingStatusPending,
	}
}

// BookingDetails is a booking joined with its service and client.
// The joins are outer joins, so every joined column may be absent.
type BookingDetails struct {
	Booking
	ServiceName *string  `json:"service_name" db:"service_name"`
	Price       *float64 `json:"price" db:"price"`
	Duration    *int64   `json:"duration" db:"duration"`
	ClientName  *string  `json:"client_name" db:"client_name"`
	ClientEmail *string  `json:"client_email" db:"client_email"`
}

var bookingDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseBookingDate parses the date formats sent by the booking form
func ParseBookingDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range bookingDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid booking date: %q", value)
}
