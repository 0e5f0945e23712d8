// Package audit records mutating operations to an append-only JSON-lines
// trail. Audit failures are reported to the caller but are never meant to
// abort the operation they describe.
package audit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is a single audit entry.
type Event struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Action    string         `json:"action"`
	Resource  string         `json:"resource"`
	Details   map[string]any `json:"details,omitempty"`
	Status    string         `json:"status"`
	Error     string         `json:"error,omitempty"`
}

// Trail appends events to a file, one JSON object per line.
type Trail struct {
	mu   sync.Mutex
	path string
}

// NewTrail creates a trail writing to path, creating the directory if
// needed.
func NewTrail(path string) (*Trail, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create audit dir: %w", err)
	}
	return &Trail{path: path}, nil
}

// Record appends one event. opErr, when non-nil, marks the event failed
// and captures the message.
func (t *Trail) Record(action, resource string, details map[string]any, opErr error) error {
	evt := Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Action:    action,
		Resource:  resource,
		Details:   details,
		Status:    "ok",
	}
	if opErr != nil {
		evt.Status = "failed"
		evt.Error = opErr.Error()
	}

	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	data = append(data, '\n')

	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if err != nil {
		return fmt.Errorf("open audit trail: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write audit event: %w", err)
	}
	return nil
}

// Read returns all events in the trail, oldest first. A missing trail
// yields no events.
func (t *Trail) Read() ([]Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	data, err := os.ReadFile(t.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read audit trail: %w", err)
	}

	var events []Event
	dec := json.NewDecoder(bytes.NewReader(data))
	for dec.More() {
		var evt Event
		if err := dec.Decode(&evt); err != nil {
			return nil, fmt.Errorf("decode audit event: %w", err)
		}
		events = append(events, evt)
	}
	return events, nil
}
