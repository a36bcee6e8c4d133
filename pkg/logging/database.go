package logging

// DatabaseLogger writes through to a base logger and persists entries at or
// above a minimum level to a LogRepository
type DatabaseLogger struct {
	base       Logger
	repository LogRepository
	component  string
	context    map[string]interface{}
	minLevel   string
}

// NewDatabaseLogger creates a new database-backed logger. Entries below
// minLevel only reach the base logger.
func NewDatabaseLogger(base Logger, repository LogRepository, component, minLevel string) *DatabaseLogger {
	if _, ok := levelRank[minLevel]; !ok {
		minLevel = LevelWarn
	}
	return &DatabaseLogger{
		base:       base,
		repository: repository,
		component:  component,
		context:    make(map[string]interface{}),
		minLevel:   minLevel,
	}
}

// Info logs an info message
func (d *DatabaseLogger) Info(msg string, fields map[string]interface{}) {
	d.base.Info(msg, fields)
	d.persist(LevelInfo, msg, nil, fields)
}

// Error logs an error message
func (d *DatabaseLogger) Error(msg string, err error, fields map[string]interface{}) {
	d.base.Error(msg, err, fields)
	d.persist(LevelError, msg, err, fields)
}

// Warn logs a warning message
func (d *DatabaseLogger) Warn(msg string, fields map[string]interface{}) {
	d.base.Warn(msg, fields)
	d.persist(LevelWarn, msg, nil, fields)
}

// Debug logs a debug message
func (d *DatabaseLogger) Debug(msg string, fields map[string]interface{}) {
	d.base.Debug(msg, fields)
	d.persist(LevelDebug, msg, nil, fields)
}

// WithComponent returns a logger for another component
func (d *DatabaseLogger) WithComponent(component string) Logger {
	return &DatabaseLogger{
		base:       d.base.WithComponent(component),
		repository: d.repository,
		component:  component,
		context:    mergeFields(d.context, nil),
		minLevel:   d.minLevel,
	}
}

// WithContext creates a new logger with additional context
func (d *DatabaseLogger) WithContext(ctx map[string]interface{}) Logger {
	return &DatabaseLogger{
		base:       d.base.WithContext(ctx),
		repository: d.repository,
		component:  d.component,
		context:    mergeFields(d.context, ctx),
		minLevel:   d.minLevel,
	}
}

func (d *DatabaseLogger) persist(level, msg string, err error, fields map[string]interface{}) {
	if d.repository == nil || levelRank[level] < levelRank[d.minLevel] {
		return
	}

	entry := d.buildLogEntry(level, msg, err, fields)
	if saveErr := d.repository.SaveLog(entry); saveErr != nil {
		// base only, persisting this would recurse
		d.base.Error("Failed to save log to database", saveErr, map[string]interface{}{
			"original_message": msg,
			"original_level":   level,
		})
	}
}

// buildLogEntry creates a LogEntry for database persistence
func (d *DatabaseLogger) buildLogEntry(level, msg string, err error, fields map[string]interface{}) LogEntry {
	all := mergeFields(d.context, fields)

	entry := LogEntry{
		Component: d.component,
		Level:     level,
		Message:   msg,
		Fields:    all,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if id, ok := all["request_id"].(string); ok {
		entry.RequestID = id
	}
	entry.SetID = setIDFrom(all["set_id"])

	return entry
}

func setIDFrom(v interface{}) *uint {
	var id uint
	switch n := v.(type) {
	case uint:
		id = n
	case int:
		if n < 0 {
			return nil
		}
		id = uint(n)
	case int64:
		if n < 0 {
			return nil
		}
		id = uint(n)
	default:
		return nil
	}
	return &id
}
