// Package config loads runtime configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	apperrors "engram-backend/pkg/errors"
	"engram-backend/pkg/utils"
)

// Config holds all application configuration
type Config struct {
	Environment string `validate:"oneof=development production"`
	LogLevel    string

	// Graph engine connection
	Neo4jURI      string `validate:"required"`
	Neo4jUser     string `validate:"required"`
	Neo4jPassword string `validate:"required"`
	Neo4jDatabase string

	// Per-operation bound applied to every graph call
	OperationTimeout time.Duration `validate:"gt=0"`
	// Extra attempts for retryable read failures
	MaxReadRetries int `validate:"gte=0"`
}

// Load reads configuration from environment variables. Missing graph
// credentials are a fatal configuration error: the process must not start
// half-connected.
func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		Neo4jURI:      getEnv("NEO4J_URI", ""),
		Neo4jUser:     getEnv("NEO4J_USER", ""),
		Neo4jPassword: getEnv("NEO4J_PASS", ""),
		Neo4jDatabase: getEnv("NEO4J_DATABASE", "neo4j"),

		OperationTimeout: getEnvDuration("GRAPH_OP_TIMEOUT", 10*time.Second),
		MaxReadRetries:   getEnvInt("GRAPH_MAX_READ_RETRIES", 2),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return apperrors.NewConfigError(err.Error())
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable with a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
