// Package config loads the service's environment-driven configuration,
// following this project's ancestor service's convention of
// os.Getenv-with-fallback (no third-party config loader appears anywhere
// in this project's lineage, so none is introduced here).
package config

import (
	"fmt"
	"os"
)

// Config holds everything cmd/server needs to wire up the process.
type Config struct {
	Port string

	PostgresUser     string
	PostgresPassword string
	PostgresHost     string
	PostgresPort     string
	PostgresDB       string

	LogLevel string
}

// Load reads the environment table from SPEC_FULL.md §6.3, applying the
// same default-fallback idiom as the ancestor service's "PORT" handling.
func Load() (Config, error) {
	user := os.Getenv("FF_POSTGRES_USER")
	if user == "" {
		return Config{}, fmt.Errorf("config: FF_POSTGRES_USER must be set")
	}
	password := os.Getenv("FF_POSTGRES_PASSWORD")
	if password == "" {
		return Config{}, fmt.Errorf("config: FF_POSTGRES_PASSWORD must be set")
	}

	return Config{
		Port:             getenvDefault("PORT", "8080"),
		PostgresUser:     user,
		PostgresPassword: password,
		PostgresHost:     getenvDefault("FF_POSTGRES_HOST", "pgbouncer"),
		PostgresPort:     getenvDefault("FF_POSTGRES_PORT", "6432"),
		PostgresDB:       getenvDefault("FF_POSTGRES_DB", "fortunefrenzy"),
		LogLevel:         getenvDefault("LOG_LEVEL", "info"),
	}, nil
}

// ConnString builds the libpq-style connection string pgxpool expects.
func (c Config) ConnString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		c.PostgresUser, c.PostgresPassword, c.PostgresHost, c.PostgresPort, c.PostgresDB,
	)
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
