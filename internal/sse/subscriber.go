package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/Farmstead_Go/internal/event"
)

// Subscriber bridges the internal event bus to the hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers the bridge for every farm event type
func (s *Subscriber) Subscribe() {
	types := event.FarmTypes()
	event.SubscribeAll(s.bus, types, s.handle)

	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	slog.Info(LogMsgSubscriberReady, "types", names)
}

func (s *Subscriber) handle(_ context.Context, evt event.Event) error {
	farmID := evt.FarmID()
	s.hub.Broadcast(farmID, string(evt.Type), evt.Payload)
	slog.Debug(LogMsgEventBroadcast, "event_type", evt.Type, "farm_id", farmID)
	return nil
}
