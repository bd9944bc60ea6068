package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/osse101/Farmstead_Go/internal/logger"
	"github.com/osse101/Farmstead_Go/internal/metrics"
)

// Ticker advances every active farm session
type Ticker interface {
	TickAll(ctx context.Context, ticks int) error
}

// Saver persists every active farm session
type Saver interface {
	SaveAll(ctx context.Context) error
}

// TickJob applies one clock interval to all sessions per run.
// Intervals the scheduler could not deliver are folded into the next run,
// which is exact because tick(n) equals n single ticks.
type TickJob struct {
	ticker  Ticker
	backlog atomic.Int64
	running atomic.Bool
}

// NewTickJob creates the clock job
func NewTickJob(ticker Ticker) *TickJob {
	return &TickJob{ticker: ticker}
}

// Missed records an interval whose job could not be queued
func (j *TickJob) Missed() {
	j.backlog.Add(1)
	j.reportBacklog()
}

// Process implements Job
func (j *TickJob) Process(ctx context.Context) error {
	// A second worker picking up the same job while one is running would
	// reorder ticks, so it defers its interval to the running one.
	if !j.running.CompareAndSwap(false, true) {
		j.backlog.Add(1)
		j.reportBacklog()
		return nil
	}
	defer j.running.Store(false)

	ticks := 1 + int(j.backlog.Swap(0))
	j.reportBacklog()
	if ticks > 1 {
		logger.FromContext(ctx).Debug(LogMsgTickBacklog, "ticks", ticks)
	}
	return j.ticker.TickAll(ctx, ticks)
}

// Pending returns intervals waiting to be applied
func (j *TickJob) Pending() int64 {
	return j.backlog.Load()
}

func (j *TickJob) reportBacklog() {
	metrics.TickBacklog.Set(float64(j.Pending()))
}

// AutosaveJob periodically writes all active sessions to storage
type AutosaveJob struct {
	saver   Saver
	timeout time.Duration
}

// NewAutosaveJob creates the autosave job; timeout bounds a single pass
func NewAutosaveJob(saver Saver, timeout time.Duration) *AutosaveJob {
	return &AutosaveJob{saver: saver, timeout: timeout}
}

// Process implements Job
func (j *AutosaveJob) Process(ctx context.Context) error {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	log := logger.FromContext(ctx)
	start := time.Now()
	log.Debug(LogMsgAutosaveStarted)
	err := j.saver.SaveAll(ctx)
	log.Debug(LogMsgAutosaveFinished, "duration", time.Since(start), "error", err)
	return err
}
