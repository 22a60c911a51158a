package client

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

const defaultTimeout = 30 * time.Second

// Config carries the settings for the HTTP client boundary.
type Config struct {
	BaseURL     string
	AccessToken string
	Timeout     time.Duration
}

// ConfigFromEnv loads the client configuration from the environment, reading
// a .env file first when one is present. A missing .env file is not an error;
// the process environment simply wins.
func ConfigFromEnv() Config {
	_ = godotenv.Load()

	return Config{
		BaseURL:     getEnv("MARKETPLACE_API_URL", "http://localhost:3333"),
		AccessToken: getEnv("MARKETPLACE_ACCESS_TOKEN", ""),
		Timeout:     getEnvAsDuration("MARKETPLACE_REQUEST_TIMEOUT", defaultTimeout),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
