package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"tattoo-studio-api/internal/models"
	"tattoo-studio-api/internal/repositories"
)

// bookingService implements the BookingService interface
type bookingService struct {
	store     repositories.Store
	validator *validator.Validate
	logger    *logrus.Logger
}

// NewBookingService creates a new booking service instance
func NewBookingService(store repositories.Store, logger *logrus.Logger) BookingService {
	return &bookingService{
		store:     store,
		validator: newValidator(),
		logger:    logger,
	}
}

// ListBookings returns bookings with their service and client details
func (s *bookingService) ListBookings(ctx context.Context, filters *BookingFilters) ([]*models.BookingDetails, error) {
	repoFilters := repositories.BookingFilters{}
	if filters != nil {
		repoFilters.UserID = filters.UserID
		repoFilters.Status = models.BookingStatus(filters.Status)
	}

	var bookings []*models.BookingDetails
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		var err error
		bookings, err = repos.Bookings().List(ctx, repoFilters)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return bookings, nil
}

// CreateBooking creates a pending booking for an existing user and service
func (s *bookingService) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*models.Booking, error) {
	const op = "create_booking"

	if req == nil {
		return nil, NewValidationError(op, MsgBookingFieldsRequired)
	}

	req.BookingDate = strings.TrimSpace(req.BookingDate)
	if err := validateRequest(s.validator, op, req, MsgBookingFieldsRequired); err != nil {
		return nil, err
	}

	bookingDate, err := models.ParseBookingDate(req.BookingDate)
	if err != nil {
		return nil, NewValidationError(op, invalidFieldMessage("booking_date"))
	}

	booking := models.NewBooking(req.UserID, req.ServiceID, bookingDate, req.Notes)

	err = s.store.WithTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		if _, err := repos.Users().GetByID(ctx, req.UserID); err != nil {
			if repositories.IsNotFound(err) {
				return NewNotFoundError(op, MsgUserNotFound, err)
			}
			return err
		}

		if _, err := repos.Services().GetByID(ctx, req.ServiceID); err != nil {
			if repositories.IsNotFound(err) {
				return NewNotFoundError(op, MsgServiceNotFound, err)
			}
			return err
		}

		if err := repos.Bookings().Create(ctx, booking); err != nil {
			if repositories.IsForeignKey(err) {
				return NewNotFoundError(op, MsgUserNotFound, err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"user_id":    booking.UserID,
		"service_id": booking.ServiceID,
	}).Info("Booking created")

	return booking, nil
}

// UpdateBookingStatus sets a new status on an existing booking
func (s *bookingService) UpdateBookingStatus(ctx context.Context, req *UpdateBookingStatusRequest) (*models.Booking, error) {
	const op = "update_booking_status"

	if req == nil {
		return nil, NewValidationError(op, MsgBookingUpdateRequired)
	}

	if err := validateRequest(s.validator, op, req, MsgBookingUpdateRequired); err != nil {
		return nil, err
	}

	var booking *models.Booking
	err := s.store.WithTransaction(ctx, func(ctx context.Context, repos repositories.Repositories) error {
		var err error
		booking, err = repos.Bookings().UpdateStatus(ctx, req.ID, models.BookingStatus(req.Status))
		if repositories.IsNotFound(err) {
			return NewNotFoundError(op, MsgBookingNotFound, err)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	return booking, nil
}
