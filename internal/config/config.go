package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for our application
type Config struct {
	Port                   string
	Origin                 string
	Environment            string
	JWTSecret              string
	JWTExpirationMinutes   int
	Database               DatabaseConfig
	Log                    LogConfig
	DoctorIdentityPattern  string
	PersonIdentityPattern  string
	BootstrapAdminPassword string
}

// DatabaseConfig holds connection details for the embedded store.
type DatabaseConfig struct {
	Path string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Format string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	dbConfig := DatabaseConfig{
		Path: getEnv("SQLITE_PATH", "milmed.db"),
	}

	logConfig := LogConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	}

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "720"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	return &Config{
		Port:                 getEnv("PORT", "3001"),
		Origin:               getEnv("ORIGIN", "http://localhost:8081"),
		Environment:          getEnv("APP_ENV", "development"),
		JWTSecret:            getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTExpirationMinutes: jwtExpMinutes,
		Database:             dbConfig,
		Log:                  logConfig,
		// Service-number format gate applied at doctor/personnel login.
		// Kept configurable: the legacy data set mixes 8-9 digit service
		// numbers with alphanumeric doctor IDs and the intended format is
		// still unconfirmed.
		DoctorIdentityPattern:  getEnv("DOCTOR_IDENTITY_PATTERN", `[0-9]{8,9}`),
		PersonIdentityPattern:  getEnv("PERSONNEL_IDENTITY_PATTERN", `[0-9]{8,9}`),
		BootstrapAdminPassword: getEnv("BOOTSTRAP_ADMIN_PASSWORD", "Admin@123"),
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
