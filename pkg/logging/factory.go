package logging

import (
	"sync"

	"go.uber.org/zap"
)

// DefaultLoggerFactory implements LoggerFactory using zap loggers, with
// optional persistence of warnings and errors
type DefaultLoggerFactory struct {
	base       *zap.Logger
	repository LogRepository
	minLevel   string

	loggers map[string]Logger
	mu      sync.Mutex
}

// FactoryOption configures a DefaultLoggerFactory
type FactoryOption func(*DefaultLoggerFactory)

// WithPersistence stores entries at or above minLevel through repository
func WithPersistence(repository LogRepository, minLevel string) FactoryOption {
	return func(f *DefaultLoggerFactory) {
		f.repository = repository
		f.minLevel = minLevel
	}
}

// NewLoggerFactory creates a new logger factory around a built zap logger
func NewLoggerFactory(base *zap.Logger, opts ...FactoryOption) *DefaultLoggerFactory {
	if base == nil {
		base = zap.NewNop()
	}
	f := &DefaultLoggerFactory{
		base:     base,
		minLevel: LevelWarn,
		loggers:  make(map[string]Logger),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateLogger creates a basic logger for the specified component.
// Loggers are cached per component.
func (f *DefaultLoggerFactory) CreateLogger(component string) Logger {
	f.mu.Lock()
	defer f.mu.Unlock()

	if logger, exists := f.loggers[component]; exists {
		return logger
	}

	var logger Logger = NewZapLoggerFrom(f.base, component)
	if f.repository != nil {
		logger = NewDatabaseLogger(logger, f.repository, component, f.minLevel)
	}

	f.loggers[component] = logger
	return logger
}

// CreateServiceLogger creates a logger for a catalog service
func (f *DefaultLoggerFactory) CreateServiceLogger(service string) Logger {
	return NewServiceLogger(f.CreateLogger("catalog"), service)
}

// CreateRequestLogger creates a logger for a single API request
func (f *DefaultLoggerFactory) CreateRequestLogger(method, path, requestID string) Logger {
	return NewRequestLogger(f.CreateLogger("api"), method, path, requestID)
}

// Sync flushes buffered zap output
func (f *DefaultLoggerFactory) Sync() error {
	return f.base.Sync()
}
