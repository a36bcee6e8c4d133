package logging

import "fmt"

// ScopedLogger prefixes messages with a scope and tags every entry with it
type ScopedLogger struct {
	base    Logger
	key     string
	scope   string
	context map[string]interface{}
}

// NewScopedLogger creates a logger whose entries carry key=scope
func NewScopedLogger(base Logger, key, scope string) *ScopedLogger {
	return &ScopedLogger{
		base:    base,
		key:     key,
		scope:   scope,
		context: make(map[string]interface{}),
	}
}

// Info logs informational messages with scope context
func (s *ScopedLogger) Info(msg string, fields map[string]interface{}) {
	s.base.Info(s.prefix(msg), s.enrichFields(fields))
}

// Error logs error messages with scope context
func (s *ScopedLogger) Error(msg string, err error, fields map[string]interface{}) {
	s.base.Error(s.prefix(msg), err, s.enrichFields(fields))
}

// Warn logs warning messages with scope context
func (s *ScopedLogger) Warn(msg string, fields map[string]interface{}) {
	s.base.Warn(s.prefix(msg), s.enrichFields(fields))
}

// Debug logs debug messages with scope context
func (s *ScopedLogger) Debug(msg string, fields map[string]interface{}) {
	s.base.Debug(s.prefix(msg), s.enrichFields(fields))
}

// WithComponent moves the underlying logger to another component
func (s *ScopedLogger) WithComponent(component string) Logger {
	return &ScopedLogger{
		base:    s.base.WithComponent(component),
		key:     s.key,
		scope:   s.scope,
		context: mergeFields(s.context, nil),
	}
}

// WithContext creates a new logger with additional context fields
func (s *ScopedLogger) WithContext(ctx map[string]interface{}) Logger {
	return &ScopedLogger{
		base:    s.base,
		key:     s.key,
		scope:   s.scope,
		context: mergeFields(s.context, ctx),
	}
}

func (s *ScopedLogger) prefix(msg string) string {
	return fmt.Sprintf("[%s] %s", s.scope, msg)
}

// enrichFields combines scope context with provided fields
func (s *ScopedLogger) enrichFields(fields map[string]interface{}) map[string]interface{} {
	enriched := mergeFields(s.context, fields)
	enriched[s.key] = s.scope
	return enriched
}

// NewServiceLogger scopes a logger to one catalog service
func NewServiceLogger(base Logger, service string) *ScopedLogger {
	return NewScopedLogger(base, "service", service)
}

// NewRequestLogger scopes a logger to one HTTP request
func NewRequestLogger(base Logger, method, path, requestID string) Logger {
	scoped := NewScopedLogger(base, "route", method+" "+path)
	return scoped.WithContext(map[string]interface{}{
		"method":     method,
		"path":       path,
		"request_id": requestID,
	})
}
