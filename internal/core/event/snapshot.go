// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-18
// Last Modified: 2026-10-18

package event

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Snapshot is the event payload handed from the "save" phase of a workflow
// to the "export" phase of the same run. It is written once and read once.
type Snapshot struct {
	ID        string          `json:"snapshot_id"`
	EventName string          `json:"event_name"`
	SavedAt   time.Time       `json:"saved_at"`
	Labels    []string        `json:"labels"`
	Payload   json.RawMessage `json:"payload"`
}

// NewSnapshot captures a raw payload. Labels are flattened from the parsed
// payload so consumers do not need to walk it.
func NewSnapshot(eventName string, raw []byte) (*Snapshot, error) {
	payload, err := Parse(eventName, raw)
	if err != nil {
		return nil, err
	}
	ctx := Extract(payload, Overrides{})

	labels := ctx.Labels
	if labels == nil {
		labels = []string{}
	}

	return &Snapshot{
		ID:        uuid.NewString(),
		EventName: eventName,
		SavedAt:   time.Now().UTC(),
		Labels:    labels,
		Payload:   json.RawMessage(raw),
	}, nil
}

// Context re-parses the stored payload and extracts its context.
func (s *Snapshot) Context(ov Overrides) (Context, error) {
	payload, err := Parse(s.EventName, s.Payload)
	if err != nil {
		return Context{}, err
	}
	return Extract(payload, ov), nil
}

// SaveSnapshot writes the snapshot to path.
func SaveSnapshot(path string, s *Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", path, err)
	}
	return nil
}

// LoadSnapshot reads a snapshot written by SaveSnapshot.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	if s.EventName == "" || len(s.Payload) == 0 {
		return nil, fmt.Errorf("snapshot %s is missing the event payload", path)
	}
	return &s, nil
}
