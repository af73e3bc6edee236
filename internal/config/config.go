package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the API server.
type Config struct {
	ListenAddr      string
	DatabaseURL     string
	JWTSecret       string
	TokenTTL        time.Duration
	CleanupInterval time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:      strings.TrimSpace(os.Getenv("LISTEN_ADDR")),
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:       strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:        parseDays(strings.TrimSpace(os.Getenv("TOKEN_TTL_DAYS"))),
		CleanupInterval: parseInterval(strings.TrimSpace(os.Getenv("CLEANUP_INTERVAL_HOURS"))),
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "todo.db"
	}

	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = 10 * 24 * time.Hour
	}

	if cfg.CleanupInterval == 0 {
		cfg.CleanupInterval = 12 * time.Hour
	}

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func parseDays(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return 0
	}
	return time.Duration(days) * 24 * time.Hour
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
