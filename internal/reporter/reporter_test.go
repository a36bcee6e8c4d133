package reporter

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/latoulicious/setforge/pkg/catalog"
	"github.com/latoulicious/setforge/pkg/catalog/shared"
	"github.com/latoulicious/setforge/pkg/crunch"
	"github.com/latoulicious/setforge/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeSource struct {
	mu      sync.Mutex
	sets    []shared.SetSummary
	reports map[uint]*crunch.Report
	listErr error
	calls   int
}

func (f *fakeSource) ListSets(context.Context) ([]shared.SetSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.sets, f.listErr
}

func (f *fakeSource) NumberCrunch(_ context.Context, id uint) (*crunch.Report, error) {
	if r, ok := f.reports[id]; ok {
		return r, nil
	}
	return nil, catalog.NotFound("set", id)
}

func (f *fakeSource) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newSource() *fakeSource {
	alpha := crunch.Compute(crunch.Target{TotalCards: 2}, []crunch.CardSummary{{Colors: []string{"red"}, Rarity: "common"}})
	alpha.SetID, alpha.SetName = 1, "Alpha"
	beta := crunch.Compute(crunch.Target{}, nil)
	beta.SetID, beta.SetName = 2, "Beta"

	src := &fakeSource{reports: map[uint]*crunch.Report{1: &alpha, 2: &beta}}
	for _, id := range []uint{1, 2} {
		var s shared.SetSummary
		s.ID = id
		src.sets = append(src.sets, s)
	}
	return src
}

func observedLogger() (logging.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logging.NewZapLoggerFrom(zap.New(core), "reporter"), logs
}

func TestRunOnce_LogsEverySet(t *testing.T) {
	logger, logs := observedLogger()
	r := New(newSource(), logger, "@every 1h")

	lines, err := r.RunOnce(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Alpha #1: 1/2 cards (50.0%)")
	assert.Contains(t, lines[1], "Beta #2: 0/0 cards (no target)")

	infos := logs.FilterLevelExact(zapcore.InfoLevel).All()
	require.Len(t, infos, 2)
	assert.Equal(t, "[reporter] "+lines[0], infos[0].Message)
	assert.EqualValues(t, 1, infos[0].ContextMap()["set_id"])

	last, count := r.LastRun()
	assert.False(t, last.IsZero())
	assert.Equal(t, 2, count)
}

func TestRunOnce_SkipsFailingSet(t *testing.T) {
	src := newSource()
	var ghost shared.SetSummary
	ghost.ID = 9
	src.sets = append(src.sets, ghost)

	logger, logs := observedLogger()
	lines, err := New(src, logger, "@every 1h").RunOnce(context.Background())

	assert.Len(t, lines, 2)
	require.Error(t, err)
	assert.True(t, catalog.IsNotFound(err))
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestRunOnce_ListFailure(t *testing.T) {
	src := newSource()
	src.listErr = errors.New("db gone")

	lines, err := New(src, nil, "@every 1h").RunOnce(context.Background())
	assert.Nil(t, lines)
	assert.ErrorContains(t, err, "db gone")
}

func TestStart_RejectsBadSchedule(t *testing.T) {
	r := New(newSource(), nil, "every now and then")
	assert.Error(t, r.Start(context.Background()))
}

func TestStart_RunsOnScheduleUntilStopped(t *testing.T) {
	src := newSource()
	r := New(src, nil, "@every 1s")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, r.Start(ctx))
	assert.Error(t, r.Start(ctx), "second start is rejected")

	assert.Eventually(t, func() bool { return src.listCalls() > 0 }, 5*time.Second, 50*time.Millisecond)

	r.Stop()
	calls := src.listCalls()
	time.Sleep(1500 * time.Millisecond)
	assert.Equal(t, calls, src.listCalls())

	r.Stop()
}

func TestStop_ReleasesWatcherWhileContextLives(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	r := New(newSource(), nil, "@every 1h")
	require.NoError(t, r.Start(context.Background()))
	r.Stop()
}

func TestStop_CanRestart(t *testing.T) {
	r := New(newSource(), nil, "@every 1h")
	ctx := context.Background()

	require.NoError(t, r.Start(ctx))
	r.Stop()
	require.NoError(t, r.Start(ctx))
	r.Stop()
}

type fakePurger struct {
	cutoff time.Time
	purged int64
	err    error
}

func (f *fakePurger) PurgeBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.purged, f.err
}

func TestPurgeLogs(t *testing.T) {
	purger := &fakePurger{purged: 4}
	logger, logs := observedLogger()
	r := New(newSource(), logger, "@every 1h", WithLogRetention(purger, 48*time.Hour))

	purged, err := r.PurgeLogs(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 4, purged)
	assert.WithinDuration(t, time.Now().Add(-48*time.Hour), purger.cutoff, time.Minute)
	assert.Equal(t, 1, logs.FilterMessage("[reporter] Purged old log entries").Len())
}

func TestPurgeLogs_DisabledOrFailing(t *testing.T) {
	purger := &fakePurger{purged: 4}
	purged, err := New(newSource(), nil, "@every 1h", WithLogRetention(purger, 0)).PurgeLogs(context.Background())
	require.NoError(t, err)
	assert.Zero(t, purged)
	assert.True(t, purger.cutoff.IsZero(), "purger is not called without retention")

	failing := &fakePurger{err: errors.New("locked")}
	_, err = New(newSource(), nil, "@every 1h", WithLogRetention(failing, time.Hour)).PurgeLogs(context.Background())
	assert.ErrorContains(t, err, "locked")
}
