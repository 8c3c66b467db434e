package database_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tattoo-studio-api/internal/database"
	"tattoo-studio-api/internal/database/databasetest"
)

func TestConnectionConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  database.ConnectionConfig
		wantErr bool
	}{
		{"postgres", database.ConnectionConfig{Driver: database.DriverPostgres, DSN: "postgres://localhost/studio"}, false},
		{"sqlite", database.ConnectionConfig{Driver: database.DriverSQLite, DSN: "studio.db"}, false},
		{"unknown driver", database.ConnectionConfig{Driver: "mysql", DSN: "x"}, true},
		{"missing dsn", database.ConnectionConfig{Driver: database.DriverPostgres}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConnectorOpenRejectsUnknownDriver(t *testing.T) {
	connector := database.NewConnector(&database.ConnectionConfig{Driver: "oracle", DSN: "x"})
	if _, err := connector.Open(context.Background()); err == nil {
		t.Fatal("Expected error for unsupported driver")
	}
}

func TestConnectorHealthCheck(t *testing.T) {
	connector := databasetest.NewSQLite(t)

	if err := connector.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck() failed: %v", err)
	}
}

func TestConnectorEnablesForeignKeys(t *testing.T) {
	connector := databasetest.NewSQLite(t)
	ctx := context.Background()

	db, err := connector.Open(ctx)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT INTO orders (user_id, service_type) VALUES (999, 'sketch')`)
	if err == nil {
		t.Fatal("Expected foreign key violation for unknown user")
	}
	if !strings.Contains(strings.ToLower(err.Error()), "foreign key") {
		t.Errorf("Expected foreign key error, got %v", err)
	}
}

func TestMigratorStatusAndDown(t *testing.T) {
	connector := databasetest.NewSQLite(t)
	migrator := database.NewMigrator(connector, databasetest.Logger())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	info, err := migrator.Status(ctx)
	if err != nil {
		t.Fatalf("Status() failed: %v", err)
	}
	if !info.Applied || info.Version != 1 || info.Dirty {
		t.Errorf("Unexpected status after migration: %+v", info)
	}

	// Running Up again must be a no-op.
	if err := migrator.Up(ctx); err != nil {
		t.Fatalf("Second Up() failed: %v", err)
	}

	if err := migrator.Down(ctx, 1); err != nil {
		t.Fatalf("Down() failed: %v", err)
	}

	info, err = migrator.Status(ctx)
	if err != nil {
		t.Fatalf("Status() after down failed: %v", err)
	}
	if info.Applied {
		t.Errorf("Expected no applied migrations, got %+v", info)
	}

	if err := migrator.Down(ctx, 1); err == nil {
		t.Error("Expected error when nothing is left to roll back")
	}
	if err := migrator.Down(ctx, 0); err == nil {
		t.Error("Expected error for non-positive steps")
	}
}

func TestMigratorRefusesDirtySchema(t *testing.T) {
	connector := databasetest.NewSQLite(t)
	migrator := database.NewMigrator(connector, databasetest.Logger())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	databasetest.Exec(t, connector, `UPDATE schema_migrations SET dirty = 1`)

	err := migrator.Up(ctx)
	if !errors.Is(err, database.ErrDirtySchema) {
		t.Fatalf("Expected ErrDirtySchema, got %v", err)
	}

	info, err := migrator.Status(ctx)
	if err != nil {
		t.Fatalf("Status() failed: %v", err)
	}
	if !info.Dirty {
		t.Error("Up() must leave the dirty flag for manual repair")
	}

	if err := migrator.Force(ctx, 1); err != nil {
		t.Fatalf("Force() failed: %v", err)
	}
	if err := migrator.Up(ctx); err != nil {
		t.Fatalf("Up() after Force() failed: %v", err)
	}

	info, err = migrator.Status(ctx)
	if err != nil {
		t.Fatalf("Status() failed: %v", err)
	}
	if info.Dirty || info.Version != 1 {
		t.Errorf("Unexpected status after repair: %+v", info)
	}
}

func TestSeedHelpers(t *testing.T) {
	connector := databasetest.NewSQLite(t)

	userID := databasetest.SeedUser(t, connector, "anna", "master")
	orderID := databasetest.SeedOrder(t, connector, userID, "sleeve tattoo", "pending")

	status := databasetest.QueryString(t, connector, `SELECT status FROM orders WHERE id = ?`, orderID)
	if status != "pending" {
		t.Errorf("Expected seeded status pending, got %s", status)
	}
}
