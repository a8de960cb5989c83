package workers_test

import (
	"context"
	"errors"
	"testing"

	ballotengine "ballotbox/contexts/governance/ballot-engine"
	"ballotbox/contexts/governance/ballot-engine/application/commands"
	"ballotbox/contexts/governance/ballot-engine/application/workers"
	"ballotbox/contexts/governance/ballot-engine/ports"
)

type capturingPublisher struct {
	topics  []string
	events  []ports.EventEnvelope
	failAt  int
	publish int
}

func (p *capturingPublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	p.publish++
	if p.failAt > 0 && p.publish == p.failAt {
		return errors.New("bus unavailable")
	}
	p.topics = append(p.topics, topic)
	p.events = append(p.events, event)
	return nil
}

func moduleWithEvents(t *testing.T) ballotengine.Module {
	t.Helper()
	module := ballotengine.NewInMemoryModule(nil, nil)
	ctx := context.Background()
	if _, err := module.Handler.Ballots.CreateElection(ctx, commands.CreateElectionCommand{
		OwnerID:        "owner-1",
		Name:           "Best Language",
		CandidateNames: []string{"Rust", "Go"},
	}); err != nil {
		t.Fatalf("create election failed: %v", err)
	}
	if err := module.Handler.Ballots.AuthorizeVoter(ctx, commands.AuthorizeVoterCommand{
		CallerID:  "owner-1",
		AccountID: "alice",
	}); err != nil {
		t.Fatalf("authorize failed: %v", err)
	}
	if err := module.Handler.Ballots.CastVote(ctx, commands.CastVoteCommand{CallerID: "alice", CandidateIndex: 0}); err != nil {
		t.Fatalf("cast vote failed: %v", err)
	}
	return module
}

func TestRunOncePublishesPendingInOrder(t *testing.T) {
	module := moduleWithEvents(t)
	publisher := &capturingPublisher{}
	relay := workers.OutboxRelay{
		Outbox:    module.Store,
		Publisher: publisher,
		Clock:     module.Store,
	}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}
	want := []string{"election.created", "voter.authorized", "vote.cast"}
	if len(publisher.topics) != len(want) {
		t.Fatalf("expected %d published events, got %v", len(want), publisher.topics)
	}
	for i, topic := range want {
		if publisher.topics[i] != topic {
			t.Fatalf("event %d: expected topic %q, got %q", i, topic, publisher.topics[i])
		}
	}
	if got := module.Store.PendingOutboxCount(); got != 0 {
		t.Fatalf("expected empty outbox after relay, got %d pending", got)
	}
	for _, event := range publisher.events {
		if event.EventID == "" || event.PartitionKey == "" {
			t.Fatalf("published envelope missing identity: %+v", event)
		}
	}
}

func TestRunOnceIsIdempotentWhenDrained(t *testing.T) {
	module := moduleWithEvents(t)
	publisher := &capturingPublisher{}
	relay := workers.OutboxRelay{Outbox: module.Store, Publisher: publisher}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("first relay run failed: %v", err)
	}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("second relay run failed: %v", err)
	}
	if len(publisher.topics) != 3 {
		t.Fatalf("drained relay republished events: %v", publisher.topics)
	}
}

func TestRunOnceStopsOnFirstPublishFailure(t *testing.T) {
	module := moduleWithEvents(t)
	publisher := &capturingPublisher{failAt: 2}
	relay := workers.OutboxRelay{Outbox: module.Store, Publisher: publisher}

	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatalf("expected relay run to fail")
	}
	if len(publisher.topics) != 1 || publisher.topics[0] != "election.created" {
		t.Fatalf("expected only the first event published, got %v", publisher.topics)
	}
	// The failed and unattempted rows stay pending for the next cycle.
	if got := module.Store.PendingOutboxCount(); got != 2 {
		t.Fatalf("expected 2 pending rows after failure, got %d", got)
	}

	publisher.failAt = 0
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("retry relay run failed: %v", err)
	}
	if got := module.Store.PendingOutboxCount(); got != 0 {
		t.Fatalf("expected empty outbox after retry, got %d pending", got)
	}
}

func TestRunOnceHonorsBatchSize(t *testing.T) {
	module := moduleWithEvents(t)
	publisher := &capturingPublisher{}
	relay := workers.OutboxRelay{Outbox: module.Store, Publisher: publisher, BatchSize: 2}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}
	if len(publisher.topics) != 2 {
		t.Fatalf("expected batch of 2, got %v", publisher.topics)
	}
	if got := module.Store.PendingOutboxCount(); got != 1 {
		t.Fatalf("expected 1 pending row after bounded batch, got %d", got)
	}
}
