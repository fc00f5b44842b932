// Package config validates and reads environment configuration.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Required environment variables for the community service. The database
// name itself is fixed and not configurable.
var RequiredVars = []string{
	"DB_USERNAME",
	"DB_PASSWORD",
	"DB_ENDPOINT",
	"SECRET_KEY",
}

// Validate checks that all required environment variables are set.
func Validate() error {
	var missing []string
	for _, name := range RequiredVars {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// GetEnvOrDefault retrieves an environment variable or returns a default value.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// MustGetEnv retrieves an environment variable or panics.
func MustGetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return value
}
