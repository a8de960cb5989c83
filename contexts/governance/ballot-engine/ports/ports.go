package ports

import (
	"context"
	"encoding/json"
	"time"

	"ballotbox/contexts/governance/ballot-engine/domain/entities"
)

// ElectionRepository persists the single election aggregate. Update applies
// the mutation closure inside one serialization boundary: either the whole
// closure commits or the stored state is unchanged.
type ElectionRepository interface {
	CreateElection(ctx context.Context, election entities.Election) error
	GetElection(ctx context.Context) (entities.Election, error)
	UpdateElection(ctx context.Context, mutate func(*entities.Election) error) (entities.Election, error)
}

// EventEnvelope is the audit event shape written to the outbox and carried
// on the bus.
type EventEnvelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	SourceService string          `json:"source_service"`
	TraceID       string          `json:"trace_id"`
	SchemaVersion int             `json:"schema_version"`
	PartitionKey  string          `json:"partition_key"`
	Data          json.RawMessage `json:"data"`
}

type OutboxRecord struct {
	OutboxID    string
	EventType   string
	Payload     []byte
	Status      string
	CreatedAt   time.Time
	PublishedAt *time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, event EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxRecord, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

// EventSubscriber registers a handler for a topic. The subscription lives
// until ctx is cancelled.
type EventSubscriber interface {
	Subscribe(ctx context.Context, topic string, handler func(context.Context, EventEnvelope) error) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
