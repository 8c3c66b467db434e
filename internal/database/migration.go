package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/postgres/*.sql migrations/sqlite3/*.sql
var migrationsFS embed.FS

// ErrDirtySchema is returned by Up when a previous migration stopped half way.
// The schema has to be repaired by hand and the version set with Force.
var ErrDirtySchema = errors.New("database schema is dirty")

// MigrationInfo contains information about the applied schema version
type MigrationInfo struct {
	Version   uint
	Dirty     bool
	Applied   bool
	Timestamp time.Time
}

// Migrator applies the embedded schema migrations for the configured driver
type Migrator struct {
	connector *Connector
	logger    *logrus.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(connector *Connector, logger *logrus.Logger) *Migrator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Migrator{
		connector: connector,
		logger:    logger,
	}
}

// Up executes all pending migrations
func (m *Migrator) Up(ctx context.Context) error {
	m.logger.Info("Starting database migrations...")

	err := m.run(ctx, func(mg *migrate.Migrate) error {
		version, dirty, err := mg.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("failed to get current migration version: %w", err)
		}

		if dirty {
			m.logger.WithField("version", version).Error("Database is in dirty state, refusing to migrate")
			return fmt.Errorf("%w at version %d: repair it and run migrate -action force -version <n>", ErrDirtySchema, version)
		}

		if err := mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		newVersion, _, err := mg.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("failed to get new migration version: %w", err)
		}

		m.logger.WithFields(logrus.Fields{
			"previous_version": version,
			"new_version":      newVersion,
		}).Info("Migrations completed successfully")
		return nil
	})
	return err
}

// Down rolls back the given number of migrations
func (m *Migrator) Down(ctx context.Context, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}

	return m.run(ctx, func(mg *migrate.Migrate) error {
		version, _, err := mg.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("no migrations to rollback")
		}
		if err != nil {
			return fmt.Errorf("failed to get current migration version: %w", err)
		}

		m.logger.WithFields(logrus.Fields{
			"current_version": version,
			"steps":           steps,
		}).Info("Rolling back migrations")

		if err := mg.Steps(-steps); err != nil {
			return fmt.Errorf("failed to rollback migration: %w", err)
		}
		return nil
	})
}

// Force records version as applied and clears the dirty flag without
// running any migration. A negative version removes the version record.
func (m *Migrator) Force(ctx context.Context, version int) error {
	return m.run(ctx, func(mg *migrate.Migrate) error {
		m.logger.WithField("version", version).Warn("Forcing migration version")
		if err := mg.Force(version); err != nil {
			return fmt.Errorf("failed to force migration version: %w", err)
		}
		return nil
	})
}

// Status returns the current migration status
func (m *Migrator) Status(ctx context.Context) (*MigrationInfo, error) {
	info := &MigrationInfo{Timestamp: time.Now()}

	err := m.run(ctx, func(mg *migrate.Migrate) error {
		version, dirty, err := mg.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get migration version: %w", err)
		}

		info.Version = version
		info.Dirty = dirty
		info.Applied = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	return info, nil
}

// run opens a dedicated connection for the migrate instance. Closing the
// instance closes the connection as well.
func (m *Migrator) run(ctx context.Context, fn func(*migrate.Migrate) error) error {
	db, err := m.connector.Open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	mg, err := m.newMigrate(db)
	if err != nil {
		return err
	}
	defer func() {
		srcErr, dbErr := mg.Close()
		if srcErr != nil || dbErr != nil {
			m.logger.WithFields(logrus.Fields{
				"source_error":   srcErr,
				"database_error": dbErr,
			}).Debug("Migrate instance closed with errors")
		}
	}()

	return fn(mg)
}

func (m *Migrator) newMigrate(db *sqlx.DB) (*migrate.Migrate, error) {
	driverName := m.connector.Driver()

	source, err := iofs.New(migrationsFS, "migrations/"+driverName)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}

	var driver migratedb.Driver
	switch driverName {
	case DriverPostgres:
		driver, err = postgres.WithInstance(db.DB, &postgres.Config{})
	case DriverSQLite:
		driver, err = sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	default:
		err = fmt.Errorf("unsupported database driver: %s", driverName)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create database driver: %w", err)
	}

	mg, err := migrate.NewWithInstance("iofs", source, driverName, driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return mg, nil
}
