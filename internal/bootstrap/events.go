package bootstrap

import (
	"cmp"
	"fmt"
	"log/slog"

	"github.com/osse101/Farmstead_Go/internal/config"
	"github.com/osse101/Farmstead_Go/internal/event"
	"github.com/osse101/Farmstead_Go/internal/metrics"
	"github.com/osse101/Farmstead_Go/internal/sse"
)

// InitializeEventSystem returns the in-process bus that subscribers attach to
// and the publisher that farm sessions emit through. Zero values in cfg fall
// back to the config defaults.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	bus := event.NewMemoryBus()

	retries := cmp.Or(cfg.EventMaxRetries, config.DefaultEventMaxRetries)
	delay := cmp.Or(cfg.EventRetryDelay, config.DefaultEventRetryDelay)
	path := cmp.Or(cfg.EventDeadLetterPath, config.DefaultEventDeadLetterPath)

	publisher, err := event.NewResilientPublisher(bus, retries, delay, path)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", retries,
		"retry_delay", delay,
		"deadletter_path", path)
	return bus, publisher, nil
}

// EventHandlerDependencies are the consumers attached to the bus at startup
type EventHandlerDependencies struct {
	EventBus event.Bus
	Hub      *sse.Hub
}

// RegisterEventHandlers attaches the metrics collector and the stream bridge
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	if err := metrics.NewEventMetricsCollector().Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	sse.NewSubscriber(deps.Hub, deps.EventBus).Subscribe()
	return nil
}
