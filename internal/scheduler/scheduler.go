// Package scheduler turns wall-clock intervals into jobs on the worker pool.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/osse101/Farmstead_Go/internal/logger"
	"github.com/osse101/Farmstead_Go/internal/worker"
)

// Queue accepts jobs without blocking the caller
type Queue interface {
	TryEnqueue(job worker.Job) bool
}

// Missable jobs are told when an interval fired but the queue was full
type Missable interface {
	Missed()
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	queue    Queue
	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a new scheduler
func New(queue Queue) *Scheduler {
	return &Scheduler{
		queue: queue,
		quit:  make(chan struct{}),
	}
}

// Schedule starts enqueueing job every interval until Stop is called.
// A full queue never blocks the timer: the interval is skipped, and
// Missable jobs are notified so they can catch up.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if s.queue.TryEnqueue(job) {
					continue
				}
				if m, ok := job.(Missable); ok {
					m.Missed()
					continue
				}
				logger.Warn(LogMsgJobSkipped, "job", fmt.Sprintf("%T", job), "interval", interval)
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs. Stopping the clock is how a session's ticking ends.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}

// LogMsgJobSkipped is logged when a non-missable job could not be queued
const LogMsgJobSkipped = "Scheduler skipped job, worker queue full"
