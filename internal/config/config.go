package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string // "development", "production"

	// Persistence
	StorageBackend string // "file" or "sqlite"
	DataFile       string // JSON ledger path (file backend)
	DatabasePath   string // SQLite database path (sqlite backend)

	// CORS
	AllowedOrigins []string

	// Localization
	DefaultLanguage string // "en" or "fr"

	// Recurring processor
	RecurringEnabled  bool
	RecurringSchedule string        // Cron expression (5 fields)
	RecurringTimeout  time.Duration // Timeout for a full processing run

	// Server timeouts
	ShutdownTimeout time.Duration
}

func Load() *Config {
	// Missing .env is fine; real env vars still apply
	_ = godotenv.Load()

	return &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Persistence
		StorageBackend: getEnv("STORAGE_BACKEND", "file"),
		DataFile:       getEnv("DATA_FILE", "data/ledger.json"),
		DatabasePath:   getEnv("DATABASE_PATH", "data/ledger.db"),

		// CORS
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),

		// Localization
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),

		// Recurring processor
		RecurringEnabled:  getBoolEnv("RECURRING_ENABLED", true),
		RecurringSchedule: getEnv("RECURRING_SCHEDULE", "0 6 * * *"), // Default: daily at 06:00
		RecurringTimeout:  getDurationEnv("RECURRING_TIMEOUT", 2*time.Minute),

		// Server timeouts
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
