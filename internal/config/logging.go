package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Validate validates the logging configuration
func (c *LoggingConfig) Validate() error {
	if _, err := logrus.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	switch c.Format {
	case "text", "json":
		return nil
	}
	return fmt.Errorf("unsupported log format: %s", c.Format)
}

// NewLogger builds the application logger
func NewLogger(c LoggingConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if c.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
