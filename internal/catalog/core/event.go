package core

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType labels a lifecycle or mutation event.
type EventType string

const (
	EventCreated   EventType = "created"
	EventUpdated   EventType = "updated"
	EventPatched   EventType = "patched"
	EventActivated EventType = "activated"
	EventDisabled  EventType = "disabled"
)

// Event records a committed mutation. Engine operations return events
// instead of accumulating them on the aggregate, so emission is testable
// without hidden mutable state. Events become durable only after the
// surrounding unit of work commits; a failed validation or write emits
// nothing.
type Event struct {
	Kind          string    `json:"kind"`
	Type          EventType `json:"type"`
	AggregateID   uuid.UUID `json:"aggregate_id"`
	OccurredAt    time.Time `json:"occurred_at"`
	ChangedFields []string  `json:"changed_fields,omitempty"`
}

// EventPublisher drains committed events to an external sink. Implementations
// must tolerate publish-after-commit: the mutation is already durable, so a
// failing publisher must not undo it.
type EventPublisher interface {
	Publish(ctx context.Context, events []Event) error
}
