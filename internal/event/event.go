package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/Farmstead_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// FarmID returns the farm session the event belongs to, or "" for global events
func (e Event) FarmID() string {
	id, _ := e.GetMetadataValue(MetadataKeyFarmID).(string)
	return id
}

// Farm event types
const (
	FarmCreated      Type = domain.EventTypeFarmCreated
	FarmTicked       Type = domain.EventTypeFarmTicked
	CropPlanted      Type = domain.EventTypeCropPlanted
	CropRipened      Type = domain.EventTypeCropRipened
	CropHarvested    Type = domain.EventTypeCropHarvested
	AnimalPurchased  Type = domain.EventTypeAnimalPurchased
	AnimalReady      Type = domain.EventTypeAnimalReady
	ProductCollected Type = domain.EventTypeProductCollected
	GoodsSold        Type = domain.EventTypeGoodsSold
	UpgradePurchased Type = domain.EventTypeUpgradePurchased
)

// FarmTypes returns every farm event type
func FarmTypes() []Type {
	out := make([]Type, 0, len(domain.AllFarmEventTypes))
	for _, t := range domain.AllFarmEventTypes {
		out = append(out, Type(t))
	}
	return out
}

// NewFarmEvent wraps a farm payload, tagging it with the owning session
func NewFarmEvent(eventType Type, farmID string, payload interface{}) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: payload,
		Metadata: map[string]interface{}{
			MetadataKeyFarmID: farmID,
		},
	}
}

// NewFarmCreatedEvent creates a farm.created event
func NewFarmCreatedEvent(farmID string, difficulty domain.Difficulty) Event {
	return NewFarmEvent(FarmCreated, farmID, domain.FarmCreatedPayload{
		FarmID:     farmID,
		Difficulty: difficulty,
		Timestamp:  time.Now().Unix(),
	})
}

// NewFarmTickedEvent creates a farm.ticked event
func NewFarmTickedEvent(farmID string, ticks int, tickCount int64) Event {
	return NewFarmEvent(FarmTicked, farmID, domain.FarmTickedPayload{
		FarmID:    farmID,
		Ticks:     ticks,
		TickCount: tickCount,
		Timestamp: time.Now().Unix(),
	})
}

// NewGoodsSoldEvent creates a farm.goods_sold event
func NewGoodsSoldEvent(farmID string, goods map[domain.GoodID]int, earned int, smart bool) Event {
	return NewFarmEvent(GoodsSold, farmID, domain.GoodsSoldPayload{
		FarmID:      farmID,
		Goods:       goods,
		CoinsEarned: earned,
		SmartSell:   smart,
		Timestamp:   time.Now().Unix(),
	})
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	// Handlers run synchronously on the publisher's goroutine
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll registers one handler for several event types
func SubscribeAll(bus Bus, types []Type, handler Handler) {
	for _, t := range types {
		bus.Subscribe(t, handler)
	}
}
