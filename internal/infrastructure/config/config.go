// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB
	MongoURI string
	MongoDB  string

	// PostgreSQL (reference data)
	PostgresURI string

	// Flight data providers
	CurrentAPI      string
	AedbxAPIURL     string
	AedbxAPIKey     string
	AeroAPIURL      string
	AeroAPIKey      string
	ProviderTimeout time.Duration

	// Push gateway
	PushGatewayURL   string
	PushGatewayToken string

	// Reconciliation defaults, overridable through the settings store
	RefreshInterval   time.Duration
	FlightsLimit      int
	OnlyManualRefresh bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "airplain"),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		CurrentAPI:      getEnv("CURRENT_API", "aerodatabox"),
		AedbxAPIURL:     getEnv("AEDBX_API_URL", ""),
		AedbxAPIKey:     getEnv("AEDBX_API_KEY", ""),
		AeroAPIURL:      getEnv("AEROAPI_API_URL", ""),
		AeroAPIKey:      getEnv("AEROAPI_API_KEY", ""),
		ProviderTimeout: time.Duration(getEnvAsInt("PROVIDER_TIMEOUT", 5)) * time.Second,

		PushGatewayURL:   getEnv("PUSH_GATEWAY_URL", ""),
		PushGatewayToken: getEnv("PUSH_GATEWAY_TOKEN", ""),

		RefreshInterval:   time.Duration(getEnvAsInt("REFRESH_INTERVAL", 1)) * time.Minute,
		FlightsLimit:      getEnvAsInt("FLIGHTS_LIMIT", 1000),
		OnlyManualRefresh: getEnvAsBool("ONLY_MANUAL_REFRESH", false),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
