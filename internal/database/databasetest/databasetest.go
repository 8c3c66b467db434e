// Package databasetest provides migrated SQLite databases and seed helpers
// for tests of packages that talk to the studio schema.
package databasetest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tattoo-studio-api/internal/database"

	"github.com/sirupsen/logrus"
)

// Logger returns a logger that only reports warnings and errors
func Logger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return logger
}

// NewSQLite creates a migrated SQLite database in a temp dir and returns a
// connector for it. The directory is removed when the test finishes.
func NewSQLite(t testing.TB) *database.Connector {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "studio_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	logger := Logger()
	connector := database.NewConnector(&database.ConnectionConfig{
		Driver:         database.DriverSQLite,
		DSN:            filepath.Join(tempDir, "test.db") + "?_busy_timeout=5000",
		ConnectTimeout: 5 * time.Second,
		Logger:         logger,
	})

	if err := database.NewMigrator(connector, logger).Up(context.Background()); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return connector
}

func insert(t testing.TB, connector *database.Connector, query string, args ...interface{}) int64 {
	t.Helper()

	ctx := context.Background()
	db, err := connector.Open(ctx)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	defer db.Close()

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		t.Fatalf("Failed to seed row: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to read seeded id: %v", err)
	}
	return id
}

// Exec runs a statement against the test database
func Exec(t testing.TB, connector *database.Connector, query string, args ...interface{}) {
	t.Helper()

	ctx := context.Background()
	db, err := connector.Open(ctx)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		t.Fatalf("Failed to execute statement: %v", err)
	}
}

// SeedUser inserts a user and returns its id
func SeedUser(t testing.TB, connector *database.Connector, name, role string) int64 {
	t.Helper()
	email := name + "@studio.test"
	return insert(t, connector, `INSERT INTO users (name, email, role) VALUES (?, ?, ?)`, name, email, role)
}

// SeedService inserts a service and returns its id
func SeedService(t testing.TB, connector *database.Connector, name string, price float64, duration int) int64 {
	t.Helper()
	return insert(t, connector, `INSERT INTO services (name, price, duration) VALUES (?, ?, ?)`, name, price, duration)
}

// SeedOrder inserts an order in the given status and returns its id
func SeedOrder(t testing.TB, connector *database.Connector, userID int64, serviceType, status string) int64 {
	t.Helper()
	return insert(t, connector,
		`INSERT INTO orders (user_id, service_type, description, status) VALUES (?, ?, '', ?)`,
		userID, serviceType, status)
}

// QueryString runs a single-value query against the test database
func QueryString(t testing.TB, connector *database.Connector, query string, args ...interface{}) string {
	t.Helper()

	ctx := context.Background()
	db, err := connector.Open(ctx)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	defer db.Close()

	var value string
	if err := db.QueryRowxContext(ctx, query, args...).Scan(&value); err != nil {
		t.Fatalf("Query %q failed: %v", query, err)
	}
	return value
}
