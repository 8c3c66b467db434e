package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"tattoo-studio-api/internal/config"
	"tattoo-studio-api/internal/database"
)

func main() {
	var (
		action  = flag.String("action", "up", "Migration action: up, down, force, status, version, health")
		steps   = flag.Int("steps", 1, "Number of migrations to roll back with -action down")
		version = flag.Int("version", -2, "Schema version to record with -action force")
		driver  = flag.String("driver", "", "Database driver, overrides DB_DRIVER")
		dsn     = flag.String("dsn", "", "Database URL, overrides DATABASE_URL")
		timeout = flag.Duration("timeout", 2*time.Minute, "Overall timeout")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if *driver != "" {
		cfg.Database.Driver = *driver
	}
	if *dsn != "" {
		cfg.Database.URL = *dsn
	}
	if err := cfg.Database.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid database configuration")
	}
	if err := cfg.Database.EnsureDirectories(); err != nil {
		logger.WithError(err).Fatal("Failed to prepare database directory")
	}

	logger.WithFields(logrus.Fields{
		"driver": cfg.Database.Driver,
		"action": *action,
	}).Info("Starting migration tool")

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	connector := database.NewConnector(cfg.Database.ToConnectionConfig(logger))
	migrator := database.NewMigrator(connector, logger)

	switch *action {
	case "up":
		err = migrator.Up(ctx)
	case "down":
		err = migrator.Down(ctx, *steps)
	case "force":
		if *version < -1 {
			logger.Fatal("-action force requires -version (use -1 to clear the version)")
		}
		err = migrator.Force(ctx, *version)
	case "status", "version":
		err = showMigrationStatus(ctx, migrator, *action == "version")
	case "health":
		err = connector.HealthCheck(ctx)
	default:
		logger.WithField("action", *action).Fatal("Unknown action. Use: up, down, force, status, version, health")
	}
	if err != nil {
		logger.WithError(err).Fatalf("Migration %s failed", *action)
	}

	logger.Info("Migration tool completed successfully")
}

func showMigrationStatus(ctx context.Context, migrator *database.Migrator, versionOnly bool) error {
	status, err := migrator.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}

	if versionOnly {
		fmt.Println(status.Version)
		return nil
	}

	fmt.Printf("Migration Status:\n")
	fmt.Printf("  Version: %d\n", status.Version)
	fmt.Printf("  Applied: %t\n", status.Applied)
	fmt.Printf("  Dirty: %t\n", status.Dirty)
	fmt.Printf("  Timestamp: %s\n", status.Timestamp.Format("2006-01-02 15:04:05"))

	return nil
}
