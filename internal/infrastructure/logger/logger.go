// Package logger provides structured logging using zerolog.
// It supports JSON and console output formats with configurable log levels.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Field names shared by the sweeper and the viewer.
const (
	FieldRunID     = "run_id"
	FieldRequestID = "request_id"
	FieldTuple     = "tuple"
	FieldMode      = "mode"
	FieldStatus    = "status"
)

// Config holds the logger configuration options.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Format is the output format (json, console)
	Format string `env:"LOG_FORMAT" envDefault:"console"`

	// EnableCaller adds caller information to log entries
	EnableCaller bool `env:"LOG_CALLER" envDefault:"false"`

	// ServiceName is attached to every entry
	ServiceName string `env:"SERVICE_NAME" envDefault:"offer-sweeper"`
}

// DefaultConfig returns human-readable info logging.
func DefaultConfig() Config {
	return Config{
		Level:       "info",
		Format:      "console",
		ServiceName: "offer-sweeper",
	}
}

// Logger wraps zerolog.Logger with sweep-specific context helpers.
type Logger struct {
	zerolog.Logger
}

// New creates a Logger writing to stdout.
func New(cfg Config) *Logger {
	return NewWithOutput(cfg, os.Stdout)
}

// NewWithOutput creates a Logger writing to output.
// Tests pass a buffer here.
func NewWithOutput(cfg Config, output io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var writer io.Writer = output
	if cfg.Format == "console" {
		writer = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	ctx := zerolog.New(writer).
		Level(level).
		With().
		Timestamp()
	if cfg.ServiceName != "" {
		ctx = ctx.Str("service", cfg.ServiceName)
	}
	if cfg.EnableCaller {
		ctx = ctx.Caller()
	}

	return &Logger{Logger: ctx.Logger()}
}

// WithContext returns a child logger with one extra string field.
func (l *Logger) WithContext(key, value string) *Logger {
	return &Logger{Logger: l.With().Str(key, value).Logger()}
}

// WithRunID tags every entry with the sweep run id.
func (l *Logger) WithRunID(runID string) *Logger {
	return l.WithContext(FieldRunID, runID)
}

// WithRequestID tags every entry with the HTTP request id.
func (l *Logger) WithRequestID(requestID string) *Logger {
	return l.WithContext(FieldRequestID, requestID)
}

// WithTuple tags every entry with a sweep tuple key.
func (l *Logger) WithTuple(key string) *Logger {
	return l.WithContext(FieldTuple, key)
}

// Nop returns a disabled logger.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}
