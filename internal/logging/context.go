package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext extracts the logger from context
// If no logger is found, returns a disabled logger (no-op)
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent creates a child logger with a component field
func WithComponent(ctx context.Context, component string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("component", component).Logger()
	return WithContext(ctx, childLogger)
}

// WithOperationID creates a child logger with an operation_id field
func WithOperationID(ctx context.Context, operationID string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("operation_id", operationID).Logger()
	return WithContext(ctx, childLogger)
}

// WithZoneID creates a child logger with a zone_id field
func WithZoneID(ctx context.Context, zoneID string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("zone_id", zoneID).Logger()
	return WithContext(ctx, childLogger)
}
