package handlers

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"tattoo-studio-api/internal/middleware"
	"tattoo-studio-api/internal/services"
	"tattoo-studio-api/pkg/lambda"
)

// Function names, used as log and metric labels
const (
	FunctionBookings = "bookings"
	FunctionContact  = "contact"
	FunctionOrders   = "orders"
	FunctionMessages = "messages"
)

// Functions holds the instrumented entry point of every function
type Functions struct {
	Bookings lambda.HandlerFunc
	Contact  lambda.HandlerFunc
	Orders   lambda.HandlerFunc
	Messages lambda.HandlerFunc
}

// NewFunctions builds the four handlers over the service container
func NewFunctions(container *services.ServiceContainer, auth *middleware.AuthService, logger *logrus.Logger) (*Functions, error) {
	if container == nil {
		return nil, fmt.Errorf("service container cannot be nil")
	}
	if auth == nil {
		return nil, fmt.Errorf("auth service cannot be nil")
	}
	if logger == nil {
		logger = logrus.New()
	}

	bookings := NewBookingHandler(container.BookingService, logger)
	contact := NewContactHandler(container.ContactService, logger)
	orders := NewOrderHandler(container.OrderService, auth, logger)
	messages := NewMessageHandler(container.MessageService, auth, logger)

	return &Functions{
		Bookings: middleware.Instrument(FunctionBookings, logger, bookings.Handle),
		Contact:  middleware.Instrument(FunctionContact, logger, contact.Handle),
		Orders:   middleware.Instrument(FunctionOrders, logger, orders.Handle),
		Messages: middleware.Instrument(FunctionMessages, logger, messages.Handle),
	}, nil
}

// Get returns the handler of the named function
func (f *Functions) Get(name string) (lambda.HandlerFunc, error) {
	switch name {
	case FunctionBookings:
		return f.Bookings, nil
	case FunctionContact:
		return f.Contact, nil
	case FunctionOrders:
		return f.Orders, nil
	case FunctionMessages:
		return f.Messages, nil
	}
	return nil, fmt.Errorf("unknown function: %s", name)
}
