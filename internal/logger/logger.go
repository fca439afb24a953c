package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogConfig holds logging configuration
type LogConfig struct {
	Level      string // trace, debug, info, warn, error
	Format     string // json, console
	TimeFormat string
	Output     string // stdout, stderr, or file path
}

// DefaultConfig returns the logging configuration used when nothing is set
func DefaultConfig() LogConfig {
	return LogConfig{
		Level:      "info",
		Format:     "console",
		TimeFormat: time.RFC3339,
		Output:     "stderr",
	}
}

// Setup initializes the global logger
func Setup(config LogConfig) error {
	l, err := New(config)
	if err != nil {
		return err
	}
	log.Logger = l
	return nil
}

// New builds a logger from config without touching the global one
func New(config LogConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(config.Level))
	if err != nil {
		return zerolog.Nop(), err
	}

	output, err := openOutput(config.Output)
	if err != nil {
		return zerolog.Nop(), err
	}

	if strings.ToLower(config.Format) != "json" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: config.TimeFormat,
		}
	}

	if config.TimeFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger(), nil
}

func openOutput(output string) (io.Writer, error) {
	switch output {
	case "", "stderr":
		// stdout carries generated documents
		return os.Stderr, nil
	case "stdout":
		return os.Stdout, nil
	default:
		return os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	}
}

// GetLogger returns the global logger
func GetLogger() zerolog.Logger {
	return log.Logger
}

// WithComponent returns a logger with a component field
func WithComponent(component string) zerolog.Logger {
	return log.Logger.With().Str("component", component).Logger()
}

type requestIDKey struct{}

// ContextWithRequestID attaches a request id to ctx
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the request id attached to ctx, or ""
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithRequestID adds a request_id field to l when ctx carries one
func WithRequestID(ctx context.Context, l zerolog.Logger) zerolog.Logger {
	id := RequestIDFromContext(ctx)
	if id == "" {
		return l
	}
	return l.With().Str("request_id", id).Logger()
}
