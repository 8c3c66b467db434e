package sqldb

import (
	"context"
	"fmt"

	"tattoo-studio-api/internal/database"
	"tattoo-studio-api/internal/repositories"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// Store implements repositories.Store on top of a per-call connection
type Store struct {
	connector *database.Connector
	logger    *logrus.Logger
}

// NewStore creates a new store
func NewStore(connector *database.Connector, logger *logrus.Logger) *Store {
	if logger == nil {
		logger = logrus.New()
	}
	return &Store{
		connector: connector,
		logger:    logger,
	}
}

// WithTransaction opens a connection, runs fn within a transaction on it and
// closes the connection on every path
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos repositories.Repositories) error) error {
	db, err := s.connector.Open(ctx)
	if err != nil {
		return repositories.ConnectionError(err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			s.logger.WithError(closeErr).Warn("Failed to close database connection")
		}
	}()

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.WithError(err).Error("Failed to begin transaction")
		return repositories.TransactionError("begin", err)
	}
	s.logger.Debug("Transaction started successfully")

	defer func() {
		if r := recover(); r != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				s.logger.WithError(rollbackErr).Error("Failed to rollback transaction after panic")
			}
			panic(r)
		}
	}()

	if err := fn(ctx, newTxRepositories(tx, s.logger)); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			s.logger.WithError(rollbackErr).Error("Failed to rollback transaction after error")
		} else {
			s.logger.Debug("Transaction rolled back successfully")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.WithError(err).Error("Failed to commit transaction")
		return repositories.TransactionError("commit", err)
	}
	s.logger.Debug("Transaction committed successfully")
	return nil
}

// Health checks that the database is reachable
func (s *Store) Health(ctx context.Context) error {
	if err := s.connector.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// txRepositories binds every repository to a single transaction
type txRepositories struct {
	users           repositories.UserRepository
	services        repositories.ServiceRepository
	bookings        repositories.BookingRepository
	orders          repositories.OrderRepository
	orderMessages   repositories.OrderMessageRepository
	contactMessages repositories.ContactMessageRepository
}

func newTxRepositories(tx *sqlx.Tx, logger *logrus.Logger) *txRepositories {
	return &txRepositories{
		users:           NewUserRepository(tx, logger),
		services:        NewServiceRepository(tx, logger),
		bookings:        NewBookingRepository(tx, logger),
		orders:          NewOrderRepository(tx, logger),
		orderMessages:   NewOrderMessageRepository(tx, logger),
		contactMessages: NewContactMessageRepository(tx, logger),
	}
}

func (r *txRepositories) Users() repositories.UserRepository       { return r.users }
func (r *txRepositories) Services() repositories.ServiceRepository { return r.services }
func (r *txRepositories) Bookings() repositories.BookingRepository { return r.bookings }
func (r *txRepositories) Orders() repositories.OrderRepository     { return r.orders }
func (r *txRepositories) OrderMessages() repositories.OrderMessageRepository {
	return r.orderMessages
}
func (r *txRepositories) ContactMessages() repositories.ContactMessageRepository {
	return r.contactMessages
}
