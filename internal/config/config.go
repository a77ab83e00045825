// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Blog storage backend names accepted in BLOG_STORE.
const (
	StoreFile     = "file"
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Blog storage backend: "file", "mongo" or "postgres"
	BlogStore string

	// Data directory for the file backend and contact submissions
	DataDir string

	// PostgreSQL connection (postgres backend)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// MongoDB connection (mongo backend)
	MongoURI string
	MongoDB  string

	// Valkey (Redis-compatible) blog list cache; empty addr disables it
	ValkeyAddr     string
	ValkeyPassword string

	// Admin login controls. AdminEmails empty means any email may log in,
	// which matches the site this replaces. AdminPasswordHash empty means
	// no credential check at all (insecure demo mode, also inherited).
	AdminEmails       []string
	AdminPasswordHash string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing or inconsistent.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		BlogStore: envOrDefault("BLOG_STORE", StoreFile),
		DataDir:   envOrDefault("DATA_DIR", "data"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "gph"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "gph"),

		MongoURI: envOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  envOrDefault("MONGO_DB", "gph"),

		ValkeyAddr:     os.Getenv("VALKEY_ADDR"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		AdminEmails:       splitList(os.Getenv("ADMIN_EMAILS")),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}

	switch cfg.BlogStore {
	case StoreFile, StoreMongo, StorePostgres:
	default:
		return nil, fmt.Errorf("BLOG_STORE must be %q, %q or %q, got %q",
			StoreFile, StoreMongo, StorePostgres, cfg.BlogStore)
	}

	if cfg.Env == "production" && cfg.BlogStore == StorePostgres {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// CacheEnabled reports whether the blog list cache is configured.
func (c *Config) CacheEnabled() bool {
	return c.ValkeyAddr != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitList parses a comma-separated env value, trimming entries and
// dropping empties.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
