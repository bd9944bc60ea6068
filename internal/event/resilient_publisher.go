package event

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/Farmstead_Go/internal/logger"
)

type retryEntry struct {
	event     Event
	attempt   int
	nextRetry time.Time
	lastErr   error
}

// ResilientPublisher wraps an event bus with asynchronous retries and a dead-letter file.
// Publish never fails from the caller's point of view once the event is accepted.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter

	shutdown     chan struct{}
	shutdownOnce sync.Once
	wg           sync.WaitGroup
}

// NewResilientPublisher creates a publisher and starts its retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	p := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	p.wg.Add(1)
	go p.retryWorker()
	return p, nil
}

// Publish implements Bus
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	p.PublishWithRetry(ctx, event)
	return nil
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

// PublishWithRetry publishes once synchronously and queues the event for retry on failure
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := p.bus.Publish(ctx, event)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err)

	p.enqueue(retryEntry{
		event:     event,
		attempt:   1,
		nextRetry: time.Now().Add(CalculateRetryDelay(p.retryDelay, 1)),
		lastErr:   err,
	})
}

func (p *ResilientPublisher) enqueue(entry retryEntry) {
	select {
	case p.retryQueue <- entry:
	default:
		logger.Warn(LogMsgRetryQueueFull, "event_type", entry.event.Type)
		p.writeDeadLetter(entry)
	}
}

func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.shutdown:
			p.drain()
			return
		case entry := <-p.retryQueue:
			if !p.waitUntil(entry.nextRetry) {
				p.retryOnce(entry, false)
				p.drain()
				return
			}
			p.retryOnce(entry, true)
		}
	}
}

// waitUntil sleeps until t and returns false if shutdown started first
func (p *ResilientPublisher) waitUntil(t time.Time) bool {
	d := time.Until(t)
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-p.shutdown:
		return false
	}
}

func (p *ResilientPublisher) retryOnce(entry retryEntry, requeue bool) {
	err := p.bus.Publish(context.Background(), entry.event)
	if err == nil {
		logger.Info(LogMsgEventRetrySucceeded, "event_type", entry.event.Type, "attempt", entry.attempt)
		return
	}

	entry.lastErr = err
	if !requeue || entry.attempt >= p.maxRetries {
		logger.Warn(LogMsgEventRetryExhausted, "event_type", entry.event.Type, "attempts", entry.attempt+1)
		p.writeDeadLetter(entry)
		return
	}

	entry.attempt++
	entry.nextRetry = time.Now().Add(CalculateRetryDelay(p.retryDelay, entry.attempt))
	logger.Debug(LogMsgEventRetryFailed, "event_type", entry.event.Type, "attempt", entry.attempt, "error", err)
	p.enqueue(entry)
}

// drain gives every queued event one last attempt during shutdown
func (p *ResilientPublisher) drain() {
	drained := 0
	for {
		select {
		case entry := <-p.retryQueue:
			p.retryOnce(entry, false)
			drained++
		default:
			if drained > 0 {
				logger.Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

func (p *ResilientPublisher) writeDeadLetter(entry retryEntry) {
	if p.deadLetter == nil {
		logger.Warn(LogMsgEventDroppedShutdown, "event_type", entry.event.Type)
		return
	}
	// Total attempts includes the initial synchronous publish
	if err := p.deadLetter.Write(entry.event, entry.attempt+1, entry.lastErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "error", err)
	}
}

// Shutdown stops the retry worker after draining the queue
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	p.shutdownOnce.Do(func() { close(p.shutdown) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}

	if p.deadLetter != nil {
		return p.deadLetter.Close()
	}
	return nil
}
