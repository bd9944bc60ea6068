package event

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DeadLetterSchemaVersion tags every line of the dead-letter log.
// Bump it when DeadLetterEntry changes shape.
const DeadLetterSchemaVersion = "1.0"

// DeadLetterEntry is one event that could not be delivered
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	FarmID        string    `json:"farm_id,omitempty"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

// DeadLetterWriter appends undeliverable events to a JSON Lines file so an
// operator can inspect or replay them.
type DeadLetterWriter struct {
	mu      sync.Mutex
	file    *os.File
	enc     *json.Encoder
	written int
}

// NewDeadLetterWriter opens path for appending, creating it and its
// directory when missing.
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create dead-letter directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("open dead-letter file: %w", err)
	}
	return &DeadLetterWriter{file: f, enc: json.NewEncoder(f)}, nil
}

// Write records event after attempts failed deliveries
func (w *DeadLetterWriter) Write(event Event, attempts int, lastErr error) error {
	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Timestamp:     time.Now().UTC(),
		FarmID:        event.FarmID(),
		Event:         event,
		Attempts:      attempts,
	}
	if lastErr != nil {
		entry.LastError = lastErr.Error()
	}

	slog.Warn("event_dead_lettered",
		"event_type", event.Type,
		"farm_id", entry.FarmID,
		"attempts", attempts,
		"error", entry.LastError)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enc.Encode(entry); err != nil {
		return err
	}
	w.written++
	return nil
}

// Written reports how many entries this writer has appended
func (w *DeadLetterWriter) Written() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Close closes the underlying file
func (w *DeadLetterWriter) Close() error {
	return w.file.Close()
}
