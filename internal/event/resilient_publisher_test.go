package event

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Farmstead_Go/internal/domain"
)

// flakyBus fails the calls for which failOn returns true
type flakyBus struct {
	mu     sync.Mutex
	calls  []Event
	times  []time.Time
	failOn func(call int) bool
}

func (b *flakyBus) Publish(_ context.Context, event Event) error {
	b.mu.Lock()
	b.calls = append(b.calls, event)
	b.times = append(b.times, time.Now())
	call := len(b.calls)
	b.mu.Unlock()

	if b.failOn != nil && b.failOn(call) {
		return errors.New("bus unavailable")
	}
	return nil
}

func (b *flakyBus) Subscribe(Type, Handler) {}

func (b *flakyBus) CallCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

func (b *flakyBus) CallTimes() []time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]time.Time(nil), b.times...)
}

func soldEvent(farmID string) Event {
	return NewGoodsSoldEvent(farmID, map[domain.GoodID]int{domain.CropCorn: 3}, 15, false)
}

func readDeadLetters(t *testing.T, path string) []DeadLetterEntry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []DeadLetterEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry DeadLetterEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())
	return entries
}

func TestResilientPublisher_PublishesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &flakyBus{}

	rp, err := NewResilientPublisher(bus, 3, 10*time.Millisecond, path)
	require.NoError(t, err)

	require.NoError(t, rp.Publish(context.Background(), soldEvent("farm-1")))
	assert.Equal(t, 1, bus.CallCount())

	require.NoError(t, rp.Shutdown(context.Background()))
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_PublishNeverFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &flakyBus{failOn: func(int) bool { return true }}

	rp, err := NewResilientPublisher(bus, 1, time.Hour, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	assert.NoError(t, rp.Publish(context.Background(), soldEvent("farm-1")))
}

func TestResilientPublisher_SubscribeDelegates(t *testing.T) {
	inner := NewMemoryBus()
	rp, err := NewResilientPublisher(inner, 1, time.Millisecond, filepath.Join(t.TempDir(), "dl.jsonl"))
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	var got []string
	rp.Subscribe(GoodsSold, func(_ context.Context, e Event) error {
		got = append(got, e.FarmID())
		return nil
	})

	require.NoError(t, rp.Publish(context.Background(), soldEvent("farm-7")))
	assert.Equal(t, []string{"farm-7"}, got)
}

func TestResilientPublisher_RetrySucceeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &flakyBus{failOn: func(call int) bool { return call == 1 }}

	rp, err := NewResilientPublisher(bus, 3, 20*time.Millisecond, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), soldEvent("farm-1"))

	require.Eventually(t, func() bool { return bus.CallCount() == 2 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))

	assert.Equal(t, 2, bus.CallCount())
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_RetryExhaustionWritesDeadLetter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &flakyBus{failOn: func(int) bool { return true }}

	rp, err := NewResilientPublisher(bus, 3, 10*time.Millisecond, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), soldEvent("farm-9"))

	// initial attempt plus three retries
	require.Eventually(t, func() bool { return bus.CallCount() == 4 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, DeadLetterSchemaVersion, entries[0].SchemaVersion)
	assert.Equal(t, GoodsSold, entries[0].Event.Type)
	assert.Equal(t, "farm-9", entries[0].Event.FarmID())
	assert.Equal(t, "farm-9", entries[0].FarmID)
	assert.Equal(t, 1, rp.deadLetter.Written())
	assert.Equal(t, 4, entries[0].Attempts)
	assert.Equal(t, "bus unavailable", entries[0].LastError)
}

func TestResilientPublisher_BackoffDoubles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &flakyBus{failOn: func(call int) bool { return call < 3 }}
	base := 40 * time.Millisecond

	rp, err := NewResilientPublisher(bus, 5, base, path)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), soldEvent("farm-1"))
	require.Eventually(t, func() bool { return bus.CallCount() == 3 }, 2*time.Second, 5*time.Millisecond)

	times := bus.CallTimes()
	assert.GreaterOrEqual(t, times[1].Sub(times[0]), base)
	assert.GreaterOrEqual(t, times[2].Sub(times[1]), 2*base)
}

func TestResilientPublisher_QueueOverflowGoesToDeadLetter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	dl, err := NewDeadLetterWriter(path)
	require.NoError(t, err)

	// no retry worker, so the queue only drains into the dead-letter file
	rp := &ResilientPublisher{
		bus:        &flakyBus{failOn: func(int) bool { return true }},
		retryQueue: make(chan retryEntry, 2),
		maxRetries: 3,
		retryDelay: time.Hour,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	for i := 0; i < 5; i++ {
		rp.PublishWithRetry(context.Background(), soldEvent("farm-1"))
	}
	require.NoError(t, rp.Shutdown(context.Background()))

	assert.Equal(t, 3, dl.Written())
	entries := readDeadLetters(t, path)
	assert.Len(t, entries, 3)
	for _, entry := range entries {
		assert.Equal(t, 1, entry.Attempts)
	}
}

func TestResilientPublisher_ShutdownFlushesPendingRetries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	bus := &flakyBus{failOn: func(call int) bool { return call == 1 }}

	// the retry would normally wait an hour
	rp, err := NewResilientPublisher(bus, 5, time.Hour, path)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), soldEvent("farm-1"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, rp.Shutdown(ctx))

	assert.Equal(t, 2, bus.CallCount())
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_ConcurrentPublishes(t *testing.T) {
	bus := &flakyBus{}
	rp, err := NewResilientPublisher(bus, 3, 10*time.Millisecond, filepath.Join(t.TempDir(), "dl.jsonl"))
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	const farms, sales = 8, 5
	var wg sync.WaitGroup
	for i := 0; i < farms; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < sales; j++ {
				rp.PublishWithRetry(context.Background(), soldEvent("farm"))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, farms*sales, bus.CallCount())
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 2 * time.Second
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 1))
	assert.Equal(t, 4*time.Second, CalculateRetryDelay(base, 2))
	assert.Equal(t, 32*time.Second, CalculateRetryDelay(base, 5))
}
