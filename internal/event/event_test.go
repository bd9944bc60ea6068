package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Farmstead_Go/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	handled := false

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		if event.Type != eventType {
			t.Errorf("Expected event type %s, got %s", eventType, event.Type)
		}
		if event.Payload.(string) != "payload" {
			t.Errorf("Expected payload 'payload', got %v", event.Payload)
		}
		handled = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{
		Version: "1.0",
		Type:    eventType,
		Payload: "payload",
	})

	if err != nil {
		t.Errorf("Publish returned error: %v", err)
	}

	if !handled {
		t.Error("Handler was not called")
	}
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")
	count := 0

	handler := func(ctx context.Context, event Event) error {
		count++
		return nil
	}

	bus.Subscribe(eventType, handler)
	bus.Subscribe(eventType, handler)

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType})
	if err != nil {
		t.Errorf("Publish returned error: %v", err)
	}

	if count != 2 {
		t.Errorf("Expected 2 handlers to be called, got %d", count)
	}
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	eventType := Type("test_event")

	bus.Subscribe(eventType, func(ctx context.Context, event Event) error {
		return errors.New("handler error")
	})

	err := bus.Publish(context.Background(), Event{Version: "1.0", Type: eventType})
	if err == nil {
		t.Error("Expected error from Publish, got nil")
	}
}

func TestNewFarmEvent_CarriesFarmID(t *testing.T) {
	ev := NewGoodsSoldEvent("farm-1", map[domain.GoodID]int{domain.GoodEgg: -2}, 36, false)

	assert.Equal(t, GoodsSold, ev.Type)
	assert.Equal(t, EventSchemaVersion, ev.Version)
	assert.Equal(t, "farm-1", ev.FarmID())

	payload, err := DecodePayload[domain.GoodsSoldPayload](ev.Payload)
	require.NoError(t, err)
	assert.Equal(t, 36, payload.CoinsEarned)

	assert.Equal(t, "", Event{Type: "x"}.FarmID())
}

func TestDecodePayload_JSONFallback(t *testing.T) {
	raw := map[string]interface{}{"farm_id": "f", "ticks": 3, "tick_count": 42}

	payload, err := DecodePayload[domain.FarmTickedPayload](raw)
	require.NoError(t, err)
	assert.Equal(t, "f", payload.FarmID)
	assert.Equal(t, int64(42), payload.TickCount)
}

func TestSubscribeAll(t *testing.T) {
	bus := NewMemoryBus()
	var seen []Type
	SubscribeAll(bus, FarmTypes(), func(_ context.Context, e Event) error {
		seen = append(seen, e.Type)
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), NewFarmCreatedEvent("a", domain.DifficultyEasy)))
	require.NoError(t, bus.Publish(context.Background(), NewFarmTickedEvent("a", 1, 1)))
	require.NoError(t, bus.Publish(context.Background(), Event{Type: "unrelated"}))

	assert.Equal(t, []Type{FarmCreated, FarmTicked}, seen)
	assert.Len(t, FarmTypes(), len(domain.AllFarmEventTypes))
}

func TestDecodePayload_PointerAndRaw(t *testing.T) {
	sold := &domain.GoodsSoldPayload{FarmID: "f", CoinsEarned: 18}
	payload, err := DecodePayload[domain.GoodsSoldPayload](sold)
	require.NoError(t, err)
	assert.Equal(t, 18, payload.CoinsEarned)

	ticked, err := DecodePayload[domain.FarmTickedPayload](json.RawMessage(`{"farm_id":"g","tick_count":7}`))
	require.NoError(t, err)
	assert.Equal(t, "g", ticked.FarmID)
	assert.Equal(t, int64(7), ticked.TickCount)

	_, err = DecodePayload[domain.FarmTickedPayload]([]byte(`{not json`))
	assert.Error(t, err)
}
