package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"tattoo-studio-api/internal/repositories"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	BookingService BookingService
	ContactService ContactService
	OrderService   OrderService
	MessageService MessageService
}

// ServiceConfig holds optional collaborators of the services
type ServiceConfig struct {
	ContactNotifier ContactNotifier
	Logger          *logrus.Logger
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(store repositories.Store, config *ServiceConfig) (*ServiceContainer, error) {
	if store == nil {
		return nil, fmt.Errorf("repository store cannot be nil")
	}

	if config == nil {
		config = &ServiceConfig{}
	}
	if config.Logger == nil {
		config.Logger = logrus.New()
	}

	access := NewAccessControl()

	return &ServiceContainer{
		BookingService: NewBookingService(store, config.Logger),
		ContactService: NewContactService(store, config.ContactNotifier, config.Logger),
		OrderService:   NewOrderService(store, access, config.Logger),
		MessageService: NewMessageService(store, access, config.Logger),
	}, nil
}

// Validate validates that all services are properly initialized
func (sc *ServiceContainer) Validate() error {
	if sc.BookingService == nil {
		return fmt.Errorf("booking service is nil")
	}
	if sc.ContactService == nil {
		return fmt.Errorf("contact service is nil")
	}
	if sc.OrderService == nil {
		return fmt.Errorf("order service is nil")
	}
	if sc.MessageService == nil {
		return fmt.Errorf("message service is nil")
	}

	return nil
}
