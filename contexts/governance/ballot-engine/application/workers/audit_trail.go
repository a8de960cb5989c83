package workers

import (
	"context"
	"log/slog"

	application "ballotbox/contexts/governance/ballot-engine/application"
	"ballotbox/contexts/governance/ballot-engine/ports"
)

// ballotAuditTopics are the event types the engine emits through the outbox.
var ballotAuditTopics = []string{
	"election.created",
	"voter.authorized",
	"vote.cast",
	"candidate.result",
	"election.tallied",
}

// AuditTrailConsumer subscribes to every ballot topic and records delivered
// events as the durable audit trail on the consuming side of the bus.
type AuditTrailConsumer struct {
	Subscriber ports.EventSubscriber
	Logger     *slog.Logger
}

// Start registers the audit handler for each ballot topic. Subscriptions
// live until ctx is cancelled.
func (c AuditTrailConsumer) Start(ctx context.Context) error {
	logger := application.ResolveLogger(c.Logger)
	for _, topic := range ballotAuditTopics {
		if err := c.Subscriber.Subscribe(ctx, topic, c.handleAuditEvent); err != nil {
			logger.Error("audit trail subscribe failed",
				"event", "ballot_audit_subscribe_failed",
				"module", "governance/ballot-engine",
				"layer", "worker",
				"topic", topic,
				"error", err.Error(),
			)
			return err
		}
	}
	logger.Info("audit trail subscriptions active",
		"event", "ballot_audit_consumer_started",
		"module", "governance/ballot-engine",
		"layer", "worker",
		"topic_count", len(ballotAuditTopics),
	)
	return nil
}

func (c AuditTrailConsumer) handleAuditEvent(_ context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(c.Logger)
	logger.Info("audit event consumed",
		"event", "ballot_audit_event_consumed",
		"module", "governance/ballot-engine",
		"layer", "worker",
		"event_id", event.EventID,
		"event_type", event.EventType,
		"election_id", event.PartitionKey,
		"occurred_at", event.OccurredAt,
	)
	return nil
}
