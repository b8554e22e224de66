// Package log provides a structured logging interface for the MNIST exporters.
//
// This package defines a minimal, slog-compatible logging interface so the
// pipelines never depend on a concrete backend. The production backend is
// zerolog writing to stderr; tests use TestLogger, which captures JSON lines
// in memory.
//
// Example usage:
//
//	logger := log.GetLogger().With(log.ComponentKey, "bulk")
//	logger.Info("Design matrix written",
//	    log.OperationKey, log.OperationWrite,
//	    log.SamplesKey, 60000,
//	    log.FeaturesKey, 784,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are passed as alternating key-value pairs. For Error, an error value
// passed as the first field is attached as the error of the record together
// with its stack trace.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	//
	// Example:
	//   logger.Error("Bulk export failed",
	//       err,
	//       log.OperationKey, log.OperationWrite,
	//   )
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
