package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// ConnectionConfig holds database connection configuration
type ConnectionConfig struct {
	Driver         string
	DSN            string
	ConnectTimeout time.Duration
	Logger         *logrus.Logger
}

// DefaultConnectionConfig returns a default configuration
func DefaultConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		Driver:         DriverPostgres,
		ConnectTimeout: 5 * time.Second,
		Logger:         logrus.New(),
	}
}

// Validate checks the connection configuration
func (c *ConnectionConfig) Validate() error {
	switch c.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Driver)
	}
	if c.DSN == "" {
		return fmt.Errorf("database DSN is required")
	}
	return nil
}

// Connector opens a fresh database handle per invocation. Handles are
// capped at a single connection and must be closed by the caller.
type Connector struct {
	config *ConnectionConfig
}

// NewConnector creates a new connector
func NewConnector(config *ConnectionConfig) *Connector {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	if config.ConnectTimeout <= 0 {
		config.ConnectTimeout = 5 * time.Second
	}
	return &Connector{config: config}
}

// Driver returns the configured driver name
func (c *Connector) Driver() string {
	return c.config.Driver
}

// Open establishes a connection and verifies it with a ping
func (c *Connector) Open(ctx context.Context) (*sqlx.DB, error) {
	if err := c.config.Validate(); err != nil {
		return nil, err
	}

	db, err := sqlx.Open(c.config.Driver, c.dsn())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, c.config.ConnectTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	c.config.Logger.WithField("driver", c.config.Driver).Debug("Database connection established")
	return db, nil
}

// dsn appends the options the sqlite driver needs for referential integrity
func (c *Connector) dsn() string {
	if c.config.Driver != DriverSQLite {
		return c.config.DSN
	}
	if strings.Contains(c.config.DSN, "_foreign_keys") {
		return c.config.DSN
	}
	sep := "?"
	if strings.Contains(c.config.DSN, "?") {
		sep = "&"
	}
	return c.config.DSN + sep + "_foreign_keys=on"
}

// HealthCheck opens a connection and runs a trivial query
func (c *Connector) HealthCheck(ctx context.Context) error {
	start := time.Now()
	defer func() {
		c.config.Logger.WithField("duration", time.Since(start)).Debug("Health check completed")
	}()

	db, err := c.Open(ctx)
	if err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	defer db.Close()

	var result int
	if err := db.QueryRowxContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("test query failed: %w", err)
	}
	if result != 1 {
		return fmt.Errorf("test query returned unexpected result: %d", result)
	}

	if c.config.Driver == DriverSQLite {
		var fkEnabled int
		if err := db.QueryRowxContext(ctx, "PRAGMA foreign_keys").Scan(&fkEnabled); err != nil {
			return fmt.Errorf("failed to check foreign key status: %w", err)
		}
		if fkEnabled != 1 {
			return fmt.Errorf("foreign keys are not enabled")
		}
	}

	return nil
}
