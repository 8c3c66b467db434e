package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"tattoo-studio-api/internal/database"
)

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Driver         string
	URL            string
	ConnectTimeout time.Duration
	AutoMigrate    bool
}

// Validate validates the database configuration
func (c *DatabaseConfig) Validate() error {
	switch c.Driver {
	case database.DriverPostgres, database.DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Driver)
	}

	if c.URL == "" {
		return fmt.Errorf("DATABASE_URL cannot be empty")
	}

	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("database connect timeout must be positive")
	}

	return nil
}

// ToConnectionConfig converts DatabaseConfig to database.ConnectionConfig
func (c *DatabaseConfig) ToConnectionConfig(logger *logrus.Logger) *database.ConnectionConfig {
	return &database.ConnectionConfig{
		Driver:         c.Driver,
		DSN:            c.URL,
		ConnectTimeout: c.ConnectTimeout,
		Logger:         logger,
	}
}

// EnsureDirectories creates the directory of a file-backed sqlite database
func (c *DatabaseConfig) EnsureDirectories() error {
	path := c.sqlitePath()
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	return nil
}

// sqlitePath returns the file behind a sqlite DSN, or "" for in-memory and
// non-sqlite databases
func (c *DatabaseConfig) sqlitePath() string {
	if c.Driver != database.DriverSQLite {
		return ""
	}

	path := strings.TrimPrefix(c.URL, "file:")
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return ""
	}
	return path
}
