package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration
type Config struct {
	Level      zerolog.Level
	Format     string // "json", "console" or "auto"
	TimeFormat string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "auto",
		TimeFormat: time.RFC3339,
	}
}

// New creates a new zerolog logger writing to stderr.
func New(cfg Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates a zerolog logger writing to out.
// The "auto" format picks console output when out is a terminal.
func NewWithWriter(cfg Config, out io.Writer) zerolog.Logger {
	output := out

	format := cfg.Format
	if format == "auto" || format == "" {
		format = "json"
		if f, ok := out.(*os.File); ok && isTerminal(f.Fd()) {
			format = "console"
		}
	}

	if format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: cfg.TimeFormat,
		}
	}

	return zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// NewFromConfigValues builds a logger from raw config strings.
func NewFromConfigValues(level, format string) zerolog.Logger {
	cfg := DefaultConfig()
	cfg.Level = ParseLevel(level)
	switch format {
	case "json", "console", "auto":
		cfg.Format = format
	}
	return New(cfg)
}

// NewFromEnv creates a logger based on environment variables
// DRAGKIT_LOG_LEVEL: trace, debug, info, warn, error (default: info)
// DRAGKIT_LOG_FORMAT: json, console, auto (default: auto)
func NewFromEnv() zerolog.Logger {
	return NewFromConfigValues(os.Getenv("DRAGKIT_LOG_LEVEL"), os.Getenv("DRAGKIT_LOG_FORMAT"))
}
