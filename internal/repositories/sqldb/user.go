package sqldb

import (
	"context"

	"tattoo-studio-api/internal/models"
	"tattoo-studio-api/internal/repositories"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// UserRepository implements repositories.UserRepository
type UserRepository struct {
	baseRepository
}

// NewUserRepository creates a user repository bound to ext
func NewUserRepository(ext sqlx.ExtContext, logger *logrus.Logger) repositories.UserRepository {
	return &UserRepository{baseRepository: newBaseRepository(ext, "user", logger)}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	err := r.get(ctx, "get_by_id", user, `SELECT id, name, email, role FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, r.notFound(err, "get_by_id", id)
	}
	return user, nil
}

// ServiceRepository implements repositories.ServiceRepository
type ServiceRepository struct {
	baseRepository
}

// NewServiceRepository creates a service repository bound to ext
func NewServiceRepository(ext sqlx.ExtContext, logger *logrus.Logger) repositories.ServiceRepository {
	return &ServiceRepository{baseRepository: newBaseRepository(ext, "service", logger)}
}

// GetByID retrieves a service by ID
func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*models.Service, error) {
	service := &models.Service{}
	err := r.get(ctx, "get_by_id", service, `SELECT id, name, price, duration FROM services WHERE id = ?`, id)
	if err != nil {
		return nil, r.notFound(err, "get_by_id", id)
	}
	return service, nil
}
