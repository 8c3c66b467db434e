package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"tattoo-studio-api/internal/services"
	"tattoo-studio-api/pkg/lambda"
)

// BookingHandler serves the bookings function. It requires no caller identity.
type BookingHandler struct {
	bookingService services.BookingService
	logger         *logrus.Logger
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService services.BookingService, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		logger:         logger,
	}
}

// Handle dispatches a bookings event by method
func (h *BookingHandler) Handle(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	switch requestMethod(req, http.MethodGet) {
	case http.MethodOptions:
		return preflightResponse(bookingsCORS)
	case http.MethodGet:
		return h.handleList(ctx, req)
	case http.MethodPost:
		return h.handleCreate(ctx, req)
	case http.MethodPut:
		return h.handleUpdate(ctx, req)
	default:
		return errorResponse(http.StatusMethodNotAllowed, msgMethodNotAllowed)
	}
}

// @Summary List bookings
// @Description Bookings joined with their service and client, newest booking date first
// @Tags bookings
// @Produce json
// @Param user_id query int false "Filter by client"
// @Param status query string false "Filter by status"
// @Success 200 {array} models.BookingDetails
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /bookings [get]
func (h *BookingHandler) handleList(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	filters := &services.BookingFilters{
		Status: strings.TrimSpace(req.Query("status")),
	}

	userID, ok, err := queryID(req, "user_id")
	if err != nil {
		return errorResponse(http.StatusBadRequest, fmt.Sprintf("Некорректное значение параметра %s", "user_id"))
	}
	if ok {
		filters.UserID = &userID
	}

	bookings, err := h.bookingService.ListBookings(ctx, filters)
	if err != nil {
		return handleError(h.logger, req, err)
	}

	return jsonResponse(http.StatusOK, bookings)
}

// @Summary Create a booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body services.CreateBookingRequest true "Booking data"
// @Success 201 {object} models.Booking
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /bookings [post]
func (h *BookingHandler) handleCreate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var body services.CreateBookingRequest
	if err := decodeBody(req, &body); err != nil {
		return errorResponse(http.StatusBadRequest, msgMalformedBody)
	}

	booking, err := h.bookingService.CreateBooking(ctx, &body)
	if err != nil {
		return handleError(h.logger, req, err)
	}

	return jsonResponse(http.StatusCreated, booking)
}

// @Summary Update booking status
// @Tags bookings
// @Accept json
// @Produce json
// @Param update body services.UpdateBookingStatusRequest true "Booking id and new status"
// @Success 200 {object} models.Booking
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /bookings [put]
func (h *BookingHandler) handleUpdate(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	var body services.UpdateBookingStatusRequest
	if err := decodeBody(req, &body); err != nil {
		return errorResponse(http.StatusBadRequest, msgMalformedBody)
	}

	booking, err := h.bookingService.UpdateBookingStatus(ctx, &body)
	if err != nil {
		return handleError(h.logger, req, err)
	}

	return jsonResponse(http.StatusOK, booking)
}
