package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the board service.
const (
	ColumnCreated = "column.created"
	ColumnRenamed = "column.renamed"
	ColumnDeleted = "column.deleted"
	TaskCreated   = "task.created"
	TaskRenamed   = "task.renamed"
	TaskMoved     = "task.moved"
	TaskDeleted   = "task.deleted"
)

// BoardEvent describes a change to a column or task.
type BoardEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the event type constants
	Type string `json:"type"`

	// ColumnID is the affected column; for task events it is the task's column
	// after the change
	ColumnID int64 `json:"column_id,omitempty"`

	// TaskID is the affected task, zero for column events
	TaskID int64 `json:"task_id,omitempty"`

	// Payload carries event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *BoardEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewBoardEvent creates a BoardEvent with the specified type, ids and payload.
// A nil payload leaves Payload empty.
func NewBoardEvent(eventType string, columnID, taskID int64, payload interface{}) (*BoardEvent, error) {
	event := &BoardEvent{
		ID:        uuid.New(),
		Type:      eventType,
		ColumnID:  columnID,
		TaskID:    taskID,
		CreatedAt: time.Now().UTC(),
	}

	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		event.Payload = payloadBytes
	}

	return event, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *BoardEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *BoardEvent) error
}

// HandlerFunc adapts an ordinary function to the EventHandler interface.
type HandlerFunc func(ctx context.Context, event *BoardEvent) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *BoardEvent) error {
	return f(ctx, event)
}
