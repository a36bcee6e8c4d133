package logging

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type memoryRepo struct {
	mu      sync.Mutex
	entries []LogEntry
	err     error
}

func (m *memoryRepo) SaveLog(entry LogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, entry)
	return nil
}

func observed(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

func TestZapLogger_ComponentAndFields(t *testing.T) {
	base, logs := observed(zapcore.DebugLevel)
	logger := NewZapLoggerFrom(base, "catalog").WithContext(map[string]interface{}{"set_id": 7})

	logger.Info("set created", map[string]interface{}{"name": "Alpha"})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "[catalog] set created", entry.Message)
	ctx := entry.ContextMap()
	assert.Equal(t, "catalog", ctx["component"])
	assert.EqualValues(t, 7, ctx["set_id"])
	assert.Equal(t, "Alpha", ctx["name"])
}

func TestZapLogger_ErrorAttachesErr(t *testing.T) {
	base, logs := observed(zapcore.DebugLevel)
	NewZapLoggerFrom(base, "api").Error("boom", errors.New("disk full"), nil)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "disk full", logs.All()[0].ContextMap()["error"])
}

func TestBuildZap_RejectsUnknownLevel(t *testing.T) {
	_, err := BuildZap("loud", "json")
	assert.Error(t, err)

	l, err := BuildZap("debug", "console")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestDatabaseLogger_PersistsAtMinLevel(t *testing.T) {
	base, _ := observed(zapcore.DebugLevel)
	repo := &memoryRepo{}
	logger := NewDatabaseLogger(NewZapLoggerFrom(base, "api"), repo, "api", LevelWarn)

	logger.Info("ignored", nil)
	logger.Warn("slow query", map[string]interface{}{"set_id": uint(4), "request_id": "req-1"})
	logger.Error("failed", errors.New("nope"), nil)

	require.Len(t, repo.entries, 2)
	warn := repo.entries[0]
	assert.Equal(t, LevelWarn, warn.Level)
	assert.Equal(t, "api", warn.Component)
	assert.Equal(t, "req-1", warn.RequestID)
	require.NotNil(t, warn.SetID)
	assert.EqualValues(t, 4, *warn.SetID)

	assert.Equal(t, "nope", repo.entries[1].Error)
}

func TestDatabaseLogger_SaveFailureDoesNotRecurse(t *testing.T) {
	base, logs := observed(zapcore.DebugLevel)
	repo := &memoryRepo{err: errors.New("db down")}
	logger := NewDatabaseLogger(NewZapLoggerFrom(base, "api"), repo, "api", LevelError)

	logger.Error("failed", nil, nil)

	assert.Equal(t, 2, logs.Len())
	assert.Empty(t, repo.entries)
}

func TestFactory_CachesAndScopes(t *testing.T) {
	base, logs := observed(zapcore.DebugLevel)
	repo := &memoryRepo{}
	f := NewLoggerFactory(base, WithPersistence(repo, LevelError))

	assert.Same(t, f.CreateLogger("api"), f.CreateLogger("api"))

	f.CreateServiceLogger("cards").Error("create failed", errors.New("x"), nil)
	require.Len(t, repo.entries, 1)
	assert.Equal(t, "catalog", repo.entries[0].Component)
	assert.Equal(t, "cards", repo.entries[0].Fields["service"])

	f.CreateRequestLogger("GET", "/api/sets", "abc").Info("handled", nil)
	last := logs.All()[logs.Len()-1]
	assert.Equal(t, "[api] [GET /api/sets] handled", last.Message)
	assert.Equal(t, "abc", last.ContextMap()["request_id"])
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger().WithComponent("x").WithContext(map[string]interface{}{"a": 1})
	assert.NotPanics(t, func() {
		l.Info("a", nil)
		l.Error("b", errors.New("c"), nil)
	})
}
