package commands

import (
	"encoding/json"
	"time"

	"ballotbox/contexts/governance/ballot-engine/ports"
)

func newBallotEnvelope(
	eventID string,
	eventType string,
	electionID string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	// Audit events are partitioned by election so consumers observe one
	// election's history in order.
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:       eventID,
		EventType:     eventType,
		OccurredAt:    occurredAt.UTC(),
		SourceService: "ballot-engine",
		TraceID:       eventID,
		SchemaVersion: 1,
		PartitionKey:  electionID,
		Data:          payload,
	}, nil
}
