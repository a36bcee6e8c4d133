package logging

// NopLogger discards everything
type NopLogger struct{}

// NewNopLogger returns a Logger that drops all entries
func NewNopLogger() Logger {
	return NopLogger{}
}

func (NopLogger) Info(string, map[string]interface{}) {}

func (NopLogger) Error(string, error, map[string]interface{}) {}

func (NopLogger) Warn(string, map[string]interface{}) {}

func (NopLogger) Debug(string, map[string]interface{}) {}

func (n NopLogger) WithComponent(string) Logger { return n }

func (n NopLogger) WithContext(map[string]interface{}) Logger { return n }
