package client

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvAPIKey       = "PLACES_API_KEY"
	EnvLegacyAPIKey = "GOOGLE_PLACES_API_KEY"
	EnvBaseURL      = "PLACES_BASE_URL"
	EnvUserAgent    = "PLACES_USER_AGENT"
	EnvRateLimit    = "PLACES_RATE_LIMIT"
	EnvTimeout      = "PLACES_TIMEOUT"
	EnvRedisURL     = "REDIS_URL"
)

// ConfigFromEnv loads a .env file from the working directory if present and
// builds a Config from the environment. Unset variables keep their
// DefaultConfig values. When REDIS_URL is set the returned Config carries a
// Redis client the caller must close.
func ConfigFromEnv() (Config, error) {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	apiKey := os.Getenv(EnvAPIKey)
	if apiKey == "" {
		apiKey = os.Getenv(EnvLegacyAPIKey)
	}
	cfg := DefaultConfig(apiKey)

	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvUserAgent); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv(EnvRateLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", EnvRateLimit, err)
		}
		cfg.RateLimit = n
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv(EnvRedisURL); v != "" {
		opts, err := redis.ParseURL(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", EnvRedisURL, err)
		}
		cfg.Redis = redis.NewClient(opts)
	}

	return cfg, nil
}
