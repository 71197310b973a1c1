// Package logger wraps zerolog with the small surface the toolkit needs:
// leveled, structured logging with a component name on every event.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Standard field keys used across the toolkit.
const (
	FieldProvider     = "provider"
	FieldOperation    = "operation"
	FieldCallID       = "call_id"
	FieldErrorKind    = "error_kind"
	FieldUsedFallback = "used_fallback"
	FieldDuration     = "duration_ms"
	FieldError        = "error"
)

// Config contains logging configuration.
type Config struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	Level string `mapstructure:"level"`
	// Format is "json" or "console".
	Format string `mapstructure:"format"`
	// Output is "stdout" or "stderr".
	Output string `mapstructure:"output"`
}

// ApplyDefaults fills zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
}

// Validate checks the config values.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("logger: invalid level %q", c.Level)
	}
	switch c.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logger: format must be json or console (got %q)", c.Format)
	}
	return nil
}

// Logger wraps a zerolog.Logger with a component name.
type Logger struct {
	zl zerolog.Logger
}

// New creates a logger from config for the named component.
func New(cfg Config, component string) *Logger {
	cfg.ApplyDefaults()

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.Output == "stderr" {
		out = os.Stderr
	}
	if strings.ToLower(cfg.Format) == "console" {
		out = zerolog.ConsoleWriter{Out: out}
	}

	zl := zerolog.New(out).Level(level).With().
		Timestamp().
		Str("component", component).
		Logger()

	return &Logger{zl: zl}
}

// NewDefault creates a console logger at info level.
func NewDefault(component string) *Logger {
	return New(Config{}, component)
}

// Nop creates a logger that discards everything. Useful in tests.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(fields map[string]any) *Logger {
	return &Logger{zl: l.zl.With().Fields(fields).Logger()}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, fields map[string]any) {
	l.zl.Debug().Fields(fields).Msg(msg)
}

// Info logs at info level.
func (l *Logger) Info(msg string, fields map[string]any) {
	l.zl.Info().Fields(fields).Msg(msg)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, fields map[string]any) {
	l.zl.Warn().Fields(fields).Msg(msg)
}

// Error logs at error level.
func (l *Logger) Error(msg string, fields map[string]any) {
	l.zl.Error().Fields(fields).Msg(msg)
}

// Zerolog exposes the underlying logger for advanced use.
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zl
}
