// Package reporter periodically logs how far every set is from its target
// distribution.
package reporter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/latoulicious/setforge/pkg/catalog/shared"
	"github.com/latoulicious/setforge/pkg/crunch"
	"github.com/latoulicious/setforge/pkg/logging"
	"github.com/latoulicious/setforge/pkg/render"
	"github.com/robfig/cron/v3"
)

const (
	defaultRunTimeout    = 2 * time.Minute
	defaultPurgeSchedule = "@daily"
)

// Source is the slice of the catalog the reporter reads from
type Source interface {
	ListSets(ctx context.Context) ([]shared.SetSummary, error)
	NumberCrunch(ctx context.Context, setID uint) (*crunch.Report, error)
}

// LogPurger deletes persisted log entries older than a cutoff
type LogPurger interface {
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Reporter runs the progress job on a cron schedule, and optionally a log
// retention job next to it
type Reporter struct {
	source     Source
	logger     logging.Logger
	renderer   render.ReportRenderer
	schedule   string
	runTimeout time.Duration

	purger        LogPurger
	retention     time.Duration
	purgeSchedule string

	mu       sync.Mutex
	cron     *cron.Cron
	stopped  chan struct{}
	lastRun  time.Time
	lastSets int
}

// Option configures a Reporter
type Option func(*Reporter)

// WithRenderer replaces the default text renderer
func WithRenderer(r render.ReportRenderer) Option {
	return func(rep *Reporter) { rep.renderer = r }
}

// WithRunTimeout bounds a single run
func WithRunTimeout(d time.Duration) Option {
	return func(rep *Reporter) { rep.runTimeout = d }
}

// WithLogRetention purges log entries older than retention on the daily
// schedule. A zero retention disables the job.
func WithLogRetention(purger LogPurger, retention time.Duration) Option {
	return func(rep *Reporter) {
		rep.purger = purger
		rep.retention = retention
	}
}

// New creates a Reporter. schedule is any spec cron.ParseStandard accepts,
// including descriptors such as "@every 30m".
func New(source Source, logger logging.Logger, schedule string, opts ...Option) *Reporter {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	r := &Reporter{
		source:     source,
		logger:     logger,
		renderer:   render.NewTextRenderer(0),
		schedule:   schedule,
		runTimeout: defaultRunTimeout,

		purgeSchedule: defaultPurgeSchedule,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start schedules the job. Runs stop being scheduled once ctx is done or
// Stop is called.
func (r *Reporter) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cron != nil {
		return errors.New("reporter already started")
	}

	c := cron.New(cron.WithChain(
		cron.Recover(cronLogger{r.logger}),
		cron.SkipIfStillRunning(cronLogger{r.logger}),
	))
	if _, err := c.AddFunc(r.schedule, func() { r.run(ctx) }); err != nil {
		return fmt.Errorf("invalid reporter schedule %q: %w", r.schedule, err)
	}
	if r.retentionEnabled() {
		if _, err := c.AddFunc(r.purgeSchedule, func() { r.purge(ctx) }); err != nil {
			return fmt.Errorf("invalid retention schedule %q: %w", r.purgeSchedule, err)
		}
	}
	c.Start()
	r.cron = c
	stopped := make(chan struct{})
	r.stopped = stopped

	r.logger.Info("Progress reporter started", map[string]interface{}{
		"schedule":      r.schedule,
		"log_retention": r.retention.String(),
	})

	go func() {
		select {
		case <-ctx.Done():
			r.Stop()
		case <-stopped:
		}
	}()
	return nil
}

// Stop halts scheduling and waits for a run in progress to finish
func (r *Reporter) Stop() {
	r.mu.Lock()
	c := r.cron
	r.cron = nil
	if r.stopped != nil {
		close(r.stopped)
		r.stopped = nil
	}
	r.mu.Unlock()

	if c == nil {
		return
	}
	<-c.Stop().Done()
	r.logger.Info("Progress reporter stopped", nil)
}

func (r *Reporter) retentionEnabled() bool {
	return r.purger != nil && r.retention > 0
}

func (r *Reporter) purge(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	runCtx, cancel := context.WithTimeout(ctx, r.runTimeout)
	defer cancel()

	if _, err := r.PurgeLogs(runCtx); err != nil {
		r.logger.Error("Log retention run failed", err, nil)
	}
}

// PurgeLogs deletes persisted log entries older than the retention window.
// It does nothing when retention is not configured.
func (r *Reporter) PurgeLogs(ctx context.Context) (int64, error) {
	if !r.retentionEnabled() {
		return 0, nil
	}
	cutoff := time.Now().Add(-r.retention)
	purged, err := r.purger.PurgeBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge logs: %w", err)
	}
	r.logger.Info("Purged old log entries", map[string]interface{}{
		"purged": purged,
		"cutoff": cutoff.UTC().Format(time.RFC3339),
	})
	return purged, nil
}

// LastRun returns when the job last completed and how many sets it covered
func (r *Reporter) LastRun() (time.Time, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastRun, r.lastSets
}

func (r *Reporter) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	runCtx, cancel := context.WithTimeout(ctx, r.runTimeout)
	defer cancel()

	if _, err := r.RunOnce(runCtx); err != nil {
		r.logger.Error("Progress report run failed", err, nil)
	}
}

// RunOnce crunches every set and logs one progress line per set. A set that
// fails is logged and skipped; the returned error joins every failure.
// It returns the rendered lines in set order.
func (r *Reporter) RunOnce(ctx context.Context) ([]string, error) {
	start := time.Now()

	sets, err := r.source.ListSets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sets: %w", err)
	}

	lines := make([]string, 0, len(sets))
	var errs []error
	for _, set := range sets {
		report, err := r.source.NumberCrunch(ctx, set.ID)
		if err != nil {
			r.logger.Warn("Skipping set in progress report", map[string]interface{}{
				"set_id": set.ID,
				"error":  err.Error(),
			})
			errs = append(errs, fmt.Errorf("set %d: %w", set.ID, err))
			continue
		}

		line := r.renderer.Progress(report)
		lines = append(lines, line)
		r.logger.Info(line, map[string]interface{}{
			"set_id":      set.ID,
			"total_cards": report.ActualDistribution.TotalCards,
			"target":      report.TargetDistribution.TotalCards,
		})
	}

	r.mu.Lock()
	r.lastRun = time.Now()
	r.lastSets = len(lines)
	r.mu.Unlock()

	r.logger.Debug("Progress report completed", map[string]interface{}{
		"sets":        len(lines),
		"failed":      len(errs),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return lines, errors.Join(errs...)
}

// cronLogger adapts a Logger to cron.Logger
type cronLogger struct {
	logger logging.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.logger.Debug("cron: "+msg, pairs(keysAndValues))
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.logger.Error("cron: "+msg, err, pairs(keysAndValues))
}

func pairs(keysAndValues []interface{}) map[string]interface{} {
	if len(keysAndValues) == 0 {
		return nil
	}
	fields := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
