// Package logging configures structured logging with zerolog.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvLevel  = "LOG_LEVEL"
	EnvPretty = "LOG_PRETTY"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output instead of JSON.
	Pretty bool

	// Output defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig returns JSON logging at info level to stderr.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
	}
}

// ConfigFromEnv starts from DefaultConfig and applies LOG_LEVEL and LOG_PRETTY.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if level := os.Getenv(EnvLevel); level != "" {
		cfg.Level = LogLevel(strings.ToLower(level))
	}
	if pretty, err := strconv.ParseBool(os.Getenv(EnvPretty)); err == nil {
		cfg.Pretty = pretty
	}
	return cfg
}

// Setup configures the global zerolog logger and returns it.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output}
	}

	logger := zerolog.New(output).With().Timestamp().Logger()
	log.Logger = logger

	return logger
}

func parseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(string(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger returns a child of the global logger tagged with component.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Log Level Guidelines:
//
// Debug: per-request and per-page detail
//   - Outgoing request (endpoint, parameter count)
//   - Page merged (page number, items, has_next)
//   - Query aborted (page number of the failed fetch)
//   - Quota state reads
//
// Info: completed operations
//   - Query complete (pages, items, status, truncated)
//   - Proxy startup/shutdown
//
// Warn: degraded but continuing
//   - Retry attempts
//   - Upstream OVER_QUERY_LIMIT, quota cool-down active, HTTP 429
//
// Error: failures needing attention
//   - Transport and decode failures (logged once, by the client)
//   - Requests failed after retries
//   - Quota store unavailable
//   - Configuration errors
//
// Context Fields:
//   - component: emitting package (places-client, pagination, quota, ...)
//   - endpoint: service endpoint (textsearch, nearbysearch, details, ...)
//   - page / pages: page number / pages fetched
//   - status: upstream status code (OK, ZERO_RESULTS, ...)
//   - status_code: HTTP status code
//   - error_class: network, client, server, quota
//   - duration: elapsed time
