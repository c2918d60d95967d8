// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE resolves on images without zoneinfo
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string for the export audit
	// trail. Required.
	DatabaseURL string

	// UpstreamBaseURL is the root of the hotel backend REST API. Required.
	UpstreamBaseURL string

	// UpstreamTimeout bounds every hotel backend call. Defaults to 30s.
	UpstreamTimeout time.Duration

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// Location is the hotel's time zone. Every "today" and every calendar
	// date the service derives is computed in it. Defaults to Asia/Bangkok.
	Location *time.Location

	// BookingsCacheTTL is how long a fetched booking snapshot is served
	// before the hotel backend is asked again. Defaults to 10s.
	BookingsCacheTTL time.Duration

	// RedisAddr selects the Redis snapshot cache. Empty means an in-process
	// cache.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// Every missing or malformed variable is reported in one error.
func Load() (Config, error) {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		UpstreamBaseURL: os.Getenv("UPSTREAM_BASE_URL"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
	}

	var missing, invalid []string

	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.UpstreamBaseURL == "" {
		missing = append(missing, "UPSTREAM_BASE_URL")
	}

	var err error
	if cfg.UpstreamTimeout, err = getDuration("UPSTREAM_TIMEOUT", 30*time.Second); err != nil {
		invalid = append(invalid, err.Error())
	}
	if cfg.BookingsCacheTTL, err = getDuration("BOOKINGS_CACHE_TTL", 10*time.Second); err != nil {
		invalid = append(invalid, err.Error())
	}
	if cfg.Location, err = time.LoadLocation(getEnv("TIMEZONE", "Asia/Bangkok")); err != nil {
		invalid = append(invalid, fmt.Sprintf("TIMEZONE: %v", err))
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		invalid = append(invalid, err.Error())
	}
	maxBody, err := getInt("MAX_BODY_BYTES", 1<<20)
	if err != nil {
		invalid = append(invalid, err.Error())
	}
	cfg.MaxBodyBytes = int64(maxBody)

	var problems []string
	if len(missing) > 0 {
		problems = append(problems, "required environment variables not set: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		problems = append(problems, "invalid environment variables: "+strings.Join(invalid, "; "))
	}
	if len(problems) > 0 {
		return Config{}, fmt.Errorf("config.Load: %s", strings.Join(problems, "; "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return fallback, fmt.Errorf("%s: %q is not a non-negative duration", key, v)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback, fmt.Errorf("%s: %q is not a non-negative integer", key, v)
	}
	return n, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
