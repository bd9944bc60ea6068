package sse

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event represents an event sent to stream clients
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	FarmID    string      `json:"farm_id,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Client represents a connected stream client
type Client struct {
	ID           string
	FarmID       string // empty receives every farm
	EventChannel chan Event
	EventFilter  map[string]bool // nil means all events, otherwise only specified types

	// consecutive events this client could not take; owned by the hub loop
	missed int
}

func (c *Client) wants(eventType string) bool {
	return c.EventFilter == nil || c.EventFilter[eventType]
}

// Hub fans farm events out to stream clients. Clients are indexed by the
// farm they follow so a tick on one farm only visits that farm's clients
// and the all-farm watchers.
type Hub struct {
	mu        sync.RWMutex
	followers map[string]map[string]*Client // farm id, "" for all farms -> client id -> client
	farmOf    map[string]string             // client id -> followed farm

	broadcast  chan Event
	register   chan *Client
	unregister chan string
	shutdown   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		followers:  make(map[string]map[string]*Client),
		farmOf:     make(map[string]string),
		broadcast:  make(chan Event, BroadcastBufferSize),
		register:   make(chan *Client, ClientChannelBuffer),
		unregister: make(chan string, ClientChannelBuffer),
		shutdown:   make(chan struct{}),
	}
}

// Start starts the hub's broadcast loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop shuts the hub down and closes every client channel so
// connected handlers return.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		for _, clients := range h.followers {
			for _, client := range clients {
				close(client.EventChannel)
			}
		}
		h.followers = make(map[string]map[string]*Client)
		h.farmOf = make(map[string]string)
		h.mu.Unlock()
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.add(client)
			h.mu.Unlock()

		case clientID := <-h.unregister:
			h.mu.Lock()
			h.remove(clientID)
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.deliver(event)

		case <-h.shutdown:
			return
		}
	}
}

// Caller must hold the write lock
func (h *Hub) add(client *Client) {
	clients, ok := h.followers[client.FarmID]
	if !ok {
		clients = make(map[string]*Client)
		h.followers[client.FarmID] = clients
	}
	clients[client.ID] = client
	h.farmOf[client.ID] = client.FarmID
}

// Caller must hold the write lock
func (h *Hub) remove(clientID string) {
	farmID, ok := h.farmOf[clientID]
	if !ok {
		return
	}
	clients := h.followers[farmID]
	close(clients[clientID].EventChannel)
	delete(clients, clientID)
	if len(clients) == 0 {
		delete(h.followers, farmID)
	}
	delete(h.farmOf, clientID)
}

// deliver hands event to every interested client without blocking. A client
// that misses MaxMissedEvents in a row is disconnected so it can reconnect
// and resync from a fresh snapshot instead of silently drifting.
func (h *Hub) deliver(event Event) {
	var stalled []string

	h.mu.RLock()
	targets := []map[string]*Client{h.followers[event.FarmID]}
	if event.FarmID != "" {
		targets = append(targets, h.followers[""])
	}
	for _, clients := range targets {
		for id, client := range clients {
			if !client.wants(event.Type) {
				continue
			}
			select {
			case client.EventChannel <- event:
				client.missed = 0
			default:
				client.missed++
				if client.missed >= MaxMissedEvents {
					stalled = append(stalled, id)
				}
			}
		}
	}
	h.mu.RUnlock()

	if len(stalled) == 0 {
		return
	}
	h.mu.Lock()
	for _, id := range stalled {
		slog.Warn(LogMsgSlowClientDropped, "client_id", id, "farm_id", h.farmOf[id])
		h.remove(id)
	}
	h.mu.Unlock()
}

// Register adds a client following farmID (empty for all farms),
// optionally limited to eventTypes
func (h *Hub) Register(farmID string, eventTypes []string) *Client {
	client := &Client{
		ID:           uuid.New().String(),
		FarmID:       farmID,
		EventChannel: make(chan Event, ClientEventBuffer),
	}

	for _, t := range eventTypes {
		if t = strings.TrimSpace(t); t == "" {
			continue
		}
		if client.EventFilter == nil {
			client.EventFilter = make(map[string]bool)
		}
		client.EventFilter[t] = true
	}

	select {
	case h.register <- client:
	case <-h.shutdown:
		close(client.EventChannel)
	}
	return client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.shutdown:
	}
}

// Broadcast queues an event for every client following farmID
func (h *Hub) Broadcast(farmID, eventType string, payload interface{}) {
	event := Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		FarmID:    farmID,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}

	select {
	case h.broadcast <- event:
	default:
		slog.Warn(LogMsgEventDropped, "type", eventType, "farm_id", farmID)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.farmOf)
}

// FarmClientCount returns how many clients follow farmID specifically,
// not counting all-farm watchers
func (h *Hub) FarmClientCount(farmID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.followers[farmID])
}

// FormatSSEMessage renders an event as an SSE frame:
// "id: <id>\nevent: <type>\ndata: <json>\n\n"
func FormatSSEMessage(event Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.Grow(len(data) + len(event.ID) + len(event.Type) + 24)
	b.WriteString("id: ")
	b.WriteString(event.ID)
	b.WriteString("\nevent: ")
	b.WriteString(event.Type)
	b.WriteString("\ndata: ")
	b.Write(data)
	b.WriteString("\n\n")
	return []byte(b.String()), nil
}
