package sse

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Farmstead_Go/internal/domain"
	"github.com/osse101/Farmstead_Go/internal/event"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)
	return hub
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n },
		time.Second, 5*time.Millisecond)
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case evt, ok := <-c.EventChannel:
		require.True(t, ok, "channel closed")
		return evt
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func assertNothing(t *testing.T, c *Client) {
	t.Helper()
	select {
	case evt := <-c.EventChannel:
		t.Fatalf("unexpected event %s for farm %s", evt.Type, evt.FarmID)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_FiltersByFarmAndType(t *testing.T) {
	hub := startHub(t)

	all := hub.Register("", nil)
	farmA := hub.Register("a", nil)
	ripeOnly := hub.Register("a", []string{string(event.CropRipened)})
	waitForClients(t, hub, 3)

	hub.Broadcast("a", string(event.FarmTicked), nil)
	hub.Broadcast("b", string(event.CropRipened), nil)
	hub.Broadcast("a", string(event.CropRipened), nil)

	assert.Equal(t, string(event.FarmTicked), receive(t, all).Type)
	assert.Equal(t, "b", receive(t, all).FarmID)
	assert.Equal(t, "a", receive(t, all).FarmID)

	assert.Equal(t, string(event.FarmTicked), receive(t, farmA).Type)
	assert.Equal(t, string(event.CropRipened), receive(t, farmA).Type)
	assertNothing(t, farmA)

	got := receive(t, ripeOnly)
	assert.Equal(t, string(event.CropRipened), got.Type)
	assert.Equal(t, "a", got.FarmID)
	assert.NotEmpty(t, got.ID)
	assertNothing(t, ripeOnly)
}

func TestHub_UnregisterClosesChannel(t *testing.T) {
	hub := startHub(t)
	c := hub.Register("a", nil)
	waitForClients(t, hub, 1)

	hub.Unregister(c.ID)
	waitForClients(t, hub, 0)

	_, ok := <-c.EventChannel
	assert.False(t, ok)
}

func TestHub_StopClosesClientsAndIsIdempotent(t *testing.T) {
	hub := NewHub()
	hub.Start()
	c := hub.Register("a", nil)
	waitForClients(t, hub, 1)

	hub.Stop()
	hub.Stop()

	_, ok := <-c.EventChannel
	assert.False(t, ok)
	assert.Equal(t, 0, hub.ClientCount())

	// late registrations and unregistrations do not block
	late := hub.Register("a", nil)
	_, ok = <-late.EventChannel
	assert.False(t, ok)
	hub.Unregister(late.ID)
}

func TestFormatSSEMessage(t *testing.T) {
	msg, err := FormatSSEMessage(Event{ID: "1", Type: "farm.ticked", FarmID: "a", Payload: map[string]int{"ticks": 2}})
	require.NoError(t, err)

	s := string(msg)
	assert.True(t, strings.HasPrefix(s, "id: 1\nevent: farm.ticked\ndata: {"))
	assert.Contains(t, s, `"farm_id":"a"`)
	assert.True(t, strings.HasSuffix(s, "\n\n"))
}

func TestSubscriber_BridgesFarmEvents(t *testing.T) {
	hub := startHub(t)
	bus := event.NewMemoryBus()
	NewSubscriber(hub, bus).Subscribe()

	c := hub.Register("farm-1", nil)
	waitForClients(t, hub, 1)

	require.NoError(t, bus.Publish(context.Background(),
		event.NewFarmTickedEvent("farm-1", 2, 10)))
	require.NoError(t, bus.Publish(context.Background(),
		event.NewFarmTickedEvent("farm-2", 2, 10)))

	got := receive(t, c)
	assert.Equal(t, string(event.FarmTicked), got.Type)
	assert.Equal(t, "farm-1", got.FarmID)
	payload, ok := got.Payload.(domain.FarmTickedPayload)
	require.True(t, ok)
	assert.Equal(t, int64(10), payload.TickCount)
	assertNothing(t, c)
}

func TestHub_FarmClientCount(t *testing.T) {
	hub := startHub(t)

	a1 := hub.Register("a", nil)
	hub.Register("a", nil)
	hub.Register("b", nil)
	hub.Register("", nil)
	waitForClients(t, hub, 4)

	assert.Equal(t, 2, hub.FarmClientCount("a"))
	assert.Equal(t, 1, hub.FarmClientCount("b"))
	assert.Equal(t, 1, hub.FarmClientCount(""))
	assert.Equal(t, 0, hub.FarmClientCount("c"))

	hub.Unregister(a1.ID)
	waitForClients(t, hub, 3)
	assert.Equal(t, 1, hub.FarmClientCount("a"))

	// unknown ids are ignored
	hub.Unregister("nobody")
	hub.Unregister(a1.ID)
	assert.Never(t, func() bool { return hub.ClientCount() != 3 }, 50*time.Millisecond, 5*time.Millisecond)
}

func TestHub_DisconnectsClientThatStopsReading(t *testing.T) {
	hub := startHub(t)

	stalled := hub.Register("a", nil)
	other := hub.Register("b", nil)
	waitForClients(t, hub, 2)

	for i := 0; i < ClientEventBuffer+MaxMissedEvents; i++ {
		hub.Broadcast("a", string(event.FarmTicked), nil)
	}
	waitForClients(t, hub, 1)
	assert.Equal(t, 0, hub.FarmClientCount("a"))

	// buffered events are still readable, then the channel is closed
	received := 0
	for range stalled.EventChannel {
		received++
	}
	assert.Equal(t, ClientEventBuffer, received)

	hub.Broadcast("b", string(event.FarmTicked), nil)
	assert.Equal(t, "b", receive(t, other).FarmID)
}

func TestHub_RegisterIgnoresBlankTypes(t *testing.T) {
	hub := startHub(t)

	c := hub.Register("a", []string{" ", ""})
	assert.Nil(t, c.EventFilter)

	ripe := hub.Register("a", []string{" " + string(event.CropRipened) + " "})
	waitForClients(t, hub, 2)
	assert.True(t, ripe.EventFilter[string(event.CropRipened)])

	hub.Broadcast("a", string(event.FarmTicked), nil)
	assert.Equal(t, string(event.FarmTicked), receive(t, c).Type)
	assertNothing(t, ripe)
}
