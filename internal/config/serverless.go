package config

import (
	"net/url"
	"os"
	"sync"
)

// ServerlessConfig holds serverless-specific configuration
type ServerlessConfig struct {
	IsLambda     bool
	FunctionName string
	Region       string
	Stage        string
}

// Global serverless configuration
var (
	serverlessConfig *ServerlessConfig
	serverlessOnce   sync.Once
)

// GetServerlessConfig returns the serverless configuration
func GetServerlessConfig() *ServerlessConfig {
	serverlessOnce.Do(func() {
		serverlessConfig = &ServerlessConfig{
			IsLambda:     isRunningInLambda(),
			FunctionName: os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
			Region:       os.Getenv("AWS_REGION"),
			Stage:        GetEnv("STAGE", "dev"),
		}
	})
	return serverlessConfig
}

// isRunningInLambda detects if the application is running in AWS Lambda
func isRunningInLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

// IsServerlessMode returns true if running in serverless mode
func IsServerlessMode() bool {
	return GetServerlessConfig().IsLambda
}

// GetDeploymentMode returns the current deployment mode
func GetDeploymentMode() string {
	if IsServerlessMode() {
		return "serverless"
	}
	return "server"
}

// AdaptConfigForServerless switches to JSON logs and disables migrations on
// cold start. An RDS endpoint fills in a missing DATABASE_URL.
func AdaptConfigForServerless(config *Config, serverless *ServerlessConfig) *Config {
	if serverless == nil || !serverless.IsLambda {
		return config
	}

	config.Logging.Format = "json"
	config.Database.AutoMigrate = false

	if config.Database.URL == "" && os.Getenv("RDS_ENDPOINT") != "" {
		config.Database.Driver = "postgres"
		config.Database.URL = buildRDSConnectionString()
	}

	return config
}

// buildRDSConnectionString constructs a postgres URL from the RDS variables
func buildRDSConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(os.Getenv("RDS_USERNAME"), os.Getenv("RDS_PASSWORD")),
		Host:     os.Getenv("RDS_ENDPOINT") + ":" + GetEnv("RDS_PORT", "5432"),
		Path:     "/" + GetEnv("RDS_DB_NAME", "tattoo_studio"),
		RawQuery: "sslmode=require",
	}
	return u.String()
}

// GetOptimizedConfig returns configuration optimized for the current deployment mode
func GetOptimizedConfig() (*Config, error) {
	config, err := Load()
	if err != nil {
		return nil, err
	}

	return AdaptConfigForServerless(config, GetServerlessConfig()), nil
}
