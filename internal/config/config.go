// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all settings for the ingestion service.
type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	RedisAddr     string
	ListenPort    string
	ScrapeSecret  string
	AllowedOrigin string

	// Pipeline tuning.
	RunTimeout     time.Duration
	FetchTimeout   time.Duration
	DetailTimeout  time.Duration
	DetailWorkers  int
	RateLimitMs    int
	MaxPerSource   int
	MaxPerRun      int
	MinViable      int
	RetentionDays  int
	EnableHeadless bool
}

// Load reads an optional .env file and returns a populated Config.
func Load() *Config {
	// Missing .env is fine; system env vars still apply.
	_ = godotenv.Load()

	return &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "soiree"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "soiree"),
		PostgresDB:       getEnv("POSTGRES_DB", "soiree_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		ListenPort:    getEnv("PORT", "8080"),
		ScrapeSecret:  getEnv("SCRAPE_SECRET", ""),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),

		RunTimeout:     getEnvDuration("RUN_TIMEOUT", 2*time.Minute),
		FetchTimeout:   getEnvDuration("FETCH_TIMEOUT", 10*time.Second),
		DetailTimeout:  getEnvDuration("DETAIL_TIMEOUT", 5*time.Second),
		DetailWorkers:  getEnvInt("DETAIL_WORKERS", 5),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 200),
		MaxPerSource:   getEnvInt("MAX_PER_SOURCE", 20),
		MaxPerRun:      getEnvInt("MAX_PER_RUN", 50),
		MinViable:      getEnvInt("MIN_VIABLE_EVENTS", 5),
		RetentionDays:  getEnvInt("RETENTION_DAYS", 7),
		EnableHeadless: getEnvBool("ENABLE_HEADLESS", false),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.PostgresUser, c.PostgresPassword, c.PostgresHost, c.PostgresPort,
		c.PostgresDB, c.PostgresSSLMode)
}

// Retention returns the purge window as a duration.
func (c *Config) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
