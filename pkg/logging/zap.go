package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements Logger interface using zap
type ZapLogger struct {
	logger    *zap.Logger
	component string
	context   map[string]interface{}
}

// NewZapLogger creates a new ZapLogger writing at the given level.
// Format "console" gives human readable output, anything else JSON.
func NewZapLogger(component, level, format string) (*ZapLogger, error) {
	base, err := BuildZap(level, format)
	if err != nil {
		return nil, err
	}
	return NewZapLoggerFrom(base, component), nil
}

// NewZapLoggerFrom wraps an already built zap logger
func NewZapLoggerFrom(base *zap.Logger, component string) *ZapLogger {
	if base == nil {
		base = zap.NewNop()
	}
	return &ZapLogger{
		logger:    base,
		component: component,
		context:   make(map[string]interface{}),
	}
}

// BuildZap builds the process-wide zap logger
func BuildZap(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var config zap.Config
	if strings.EqualFold(format, "console") {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}
	config.Level = zap.NewAtomicLevelAt(lvl)

	return config.Build()
}

// Zap exposes the underlying zap logger
func (z *ZapLogger) Zap() *zap.Logger {
	return z.logger
}

// Info logs an info message
func (z *ZapLogger) Info(msg string, fields map[string]interface{}) {
	z.logger.Info(z.format(msg), z.buildZapFields(fields)...)
}

// Error logs an error message
func (z *ZapLogger) Error(msg string, err error, fields map[string]interface{}) {
	zapFields := z.buildZapFields(fields)
	if err != nil {
		zapFields = append(zapFields, zap.Error(err))
	}
	z.logger.Error(z.format(msg), zapFields...)
}

// Warn logs a warning message
func (z *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	z.logger.Warn(z.format(msg), z.buildZapFields(fields)...)
}

// Debug logs a debug message
func (z *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	z.logger.Debug(z.format(msg), z.buildZapFields(fields)...)
}

// WithComponent returns a logger for another component sharing the same sink
func (z *ZapLogger) WithComponent(component string) Logger {
	return &ZapLogger{
		logger:    z.logger,
		component: component,
		context:   mergeFields(z.context, nil),
	}
}

// WithContext creates a new logger with additional context
func (z *ZapLogger) WithContext(ctx map[string]interface{}) Logger {
	return &ZapLogger{
		logger:    z.logger,
		component: z.component,
		context:   mergeFields(z.context, ctx),
	}
}

func (z *ZapLogger) format(msg string) string {
	if z.component == "" {
		return msg
	}
	return fmt.Sprintf("[%s] %s", z.component, msg)
}

// buildZapFields converts map fields to zap fields
func (z *ZapLogger) buildZapFields(fields map[string]interface{}) []zap.Field {
	zapFields := make([]zap.Field, 0, len(z.context)+len(fields)+1)
	if z.component != "" {
		zapFields = append(zapFields, zap.String("component", z.component))
	}

	for k, v := range mergeFields(z.context, fields) {
		zapFields = append(zapFields, zap.Any(k, v))
	}

	return zapFields
}
