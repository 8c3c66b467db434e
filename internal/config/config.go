package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"tattoo-studio-api/internal/adapters/notify"
	"tattoo-studio-api/internal/middleware"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Database    DatabaseConfig
	Auth        AuthConfig
	Logging     LoggingConfig
	Notify      NotifyConfig
	RateLimit   RateLimitConfig
}

// AuthConfig holds caller identity configuration
type AuthConfig struct {
	Mode        string
	JWTSecret   string
	ExpiryHours int
	Issuer      string
}

// NotifyConfig holds contact notification configuration
type NotifyConfig struct {
	ResendAPIKey string
	From         string
	To           []string
}

// RateLimitConfig holds the dev server rate limit
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_CONNECT_TIMEOUT", "5s")
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("AUTH_MODE", middleware.AuthModeHeader)
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("JWT_ISSUER", "tattoo-studio-api")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)

	connectTimeout, err := time.ParseDuration(v.GetString("DB_CONNECT_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONNECT_TIMEOUT: %w", err)
	}

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		Database: DatabaseConfig{
			Driver:         strings.ToLower(v.GetString("DB_DRIVER")),
			URL:            v.GetString("DATABASE_URL"),
			ConnectTimeout: connectTimeout,
			AutoMigrate:    v.GetBool("DB_AUTO_MIGRATE"),
		},
		Auth: AuthConfig{
			Mode:        strings.ToLower(v.GetString("AUTH_MODE")),
			JWTSecret:   v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
			Issuer:      v.GetString("JWT_ISSUER"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		Notify: NotifyConfig{
			ResendAPIKey: v.GetString("RESEND_API_KEY"),
			From:         v.GetString("CONTACT_NOTIFY_FROM"),
			To:           splitList(v.GetString("CONTACT_NOTIFY_TO")),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	return config, nil
}

// Validate rejects settings the application cannot run with
func (c *Config) Validate() error {
	if err := c.Database.Validate(); err != nil {
		return err
	}

	switch c.Auth.Mode {
	case middleware.AuthModeHeader:
	case middleware.AuthModeToken:
		if c.Auth.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_MODE is %s", middleware.AuthModeToken)
		}
	default:
		return fmt.Errorf("unsupported auth mode: %s", c.Auth.Mode)
	}

	if err := c.Logging.Validate(); err != nil {
		return err
	}

	if c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limit settings cannot be negative")
	}

	return c.ToNotifyConfig().Validate()
}

// IsProduction returns true in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ToAuthConfig converts the settings into the identity resolver configuration
func (c *Config) ToAuthConfig() *middleware.AuthConfig {
	return &middleware.AuthConfig{
		Mode:          c.Auth.Mode,
		JWTSecret:     c.Auth.JWTSecret,
		TokenDuration: time.Duration(c.Auth.ExpiryHours) * time.Hour,
		Issuer:        c.Auth.Issuer,
	}
}

// ToNotifyConfig converts the settings into the notifier configuration
func (c *Config) ToNotifyConfig() *notify.Config {
	return &notify.Config{
		ResendAPIKey: c.Notify.ResendAPIKey,
		From:         c.Notify.From,
		To:           c.Notify.To,
	}
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
