package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Farmstead_Go/internal/testing/leaktest"
	"github.com/osse101/Farmstead_Go/internal/worker"
)

// MockJob is a simple job for testing
type MockJob struct {
	RunCount atomic.Int32
	Done     chan struct{}
}

func (m *MockJob) Process(ctx context.Context) error {
	m.RunCount.Add(1)
	select {
	case m.Done <- struct{}{}:
	default:
	}
	return nil
}

type missableJob struct {
	missed atomic.Int32
}

func (m *missableJob) Process(context.Context) error { return nil }
func (m *missableJob) Missed()                       { m.missed.Add(1) }

type fullQueue struct{}

func (fullQueue) TryEnqueue(worker.Job) bool { return false }

func TestScheduler(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &MockJob{Done: make(chan struct{}, 10)}
	sched.Schedule(10*time.Millisecond, job)

	timeout := time.After(time.Second)
	runCount := 0
	for runCount < 2 {
		select {
		case <-job.Done:
			runCount++
		case <-timeout:
			t.Fatal("Timeout waiting for job execution")
		}
	}

	assert.GreaterOrEqual(t, runCount, 2)
}

func TestScheduler_FullQueueNotifiesMissable(t *testing.T) {
	sched := New(fullQueue{})
	job := &missableJob{}
	sched.Schedule(5*time.Millisecond, job)

	require.Eventually(t, func() bool { return job.missed.Load() >= 2 }, time.Second, 5*time.Millisecond)
	sched.Stop()
}

func TestScheduler_StopEndsGoroutines(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	sched := New(fullQueue{})
	sched.Schedule(time.Millisecond, &MockJob{Done: make(chan struct{}, 1)})
	sched.Schedule(time.Millisecond, &missableJob{})
	sched.Stop()
	sched.Stop()

	checker.Check(0)
}
