package server

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"tattoo-studio-api/internal/adapters/notify"
	"tattoo-studio-api/internal/config"
	"tattoo-studio-api/internal/database"
	"tattoo-studio-api/internal/handlers"
	"tattoo-studio-api/internal/middleware"
	"tattoo-studio-api/internal/repositories/sqldb"
	"tattoo-studio-api/internal/services"
)

// Container holds all application dependencies. It keeps no open
// connections; every invocation opens its own through the store.
type Container struct {
	Config      *config.Config
	Logger      *logrus.Logger
	Connector   *database.Connector
	Store       *sqldb.Store
	AuthService *middleware.AuthService
	Services    *services.ServiceContainer
	Functions   *handlers.Functions
}

// NewContainer wires the application from configuration
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logging)

	if err := cfg.Database.EnsureDirectories(); err != nil {
		return nil, err
	}
	connector := database.NewConnector(cfg.Database.ToConnectionConfig(logger))

	if cfg.Database.AutoMigrate {
		if err := database.NewMigrator(connector, logger).Up(ctx); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	notifier, err := notify.New(cfg.ToNotifyConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create notifier: %w", err)
	}

	store := sqldb.NewStore(connector, logger)
	serviceContainer, err := services.NewServiceContainer(store, &services.ServiceConfig{
		ContactNotifier: notifier,
		Logger:          logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}
	if err := serviceContainer.Validate(); err != nil {
		return nil, err
	}

	authService := middleware.NewAuthService(cfg.ToAuthConfig())

	functions, err := handlers.NewFunctions(serviceContainer, authService, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create handlers: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"mode":        config.GetDeploymentMode(),
		"driver":      cfg.Database.Driver,
		"auth_mode":   authService.Mode(),
	}).Debug("Container initialized")

	return &Container{
		Config:      cfg,
		Logger:      logger,
		Connector:   connector,
		Store:       store,
		AuthService: authService,
		Services:    serviceContainer,
		Functions:   functions,
	}, nil
}

// RouterConfig returns the dev server route configuration
func (c *Container) RouterConfig(version string) *handlers.RouterConfig {
	return &handlers.RouterConfig{
		Functions:     c.Functions,
		AuthService:   c.AuthService,
		HealthChecker: c.Store,
		Logger:        c.Logger,
		Version:       version,
	}
}
