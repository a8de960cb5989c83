package messaging

import (
	"context"
	"testing"
	"time"

	"ballotbox/contexts/governance/ballot-engine/ports"
)

func TestSubscribeDeliversPublishedEvents(t *testing.T) {
	bus := NewBus(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	delivered := make(chan ports.EventEnvelope, 1)
	err := bus.Subscribe(ctx, "vote.cast", func(_ context.Context, event ports.EventEnvelope) error {
		delivered <- event
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	want := ports.EventEnvelope{EventID: "event-1", EventType: "vote.cast", PartitionKey: "election-1"}
	if err := bus.Publish(ctx, "vote.cast", want); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case got := <-delivered:
		if got.EventID != want.EventID || got.EventType != want.EventType {
			t.Fatalf("unexpected event delivered: %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("subscriber never received the event")
	}
}

func TestPublishSkipsOtherTopics(t *testing.T) {
	bus := NewBus(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	delivered := make(chan ports.EventEnvelope, 1)
	if err := bus.Subscribe(ctx, "voter.authorized", func(_ context.Context, event ports.EventEnvelope) error {
		delivered <- event
		return nil
	}); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	if err := bus.Publish(ctx, "vote.cast", ports.EventEnvelope{EventID: "event-1"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case got := <-delivered:
		t.Fatalf("subscriber received an event for another topic: %+v", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCancelledSubscriberIsRemoved(t *testing.T) {
	bus := NewBus(nil)
	ctx, cancel := context.WithCancel(context.Background())

	if err := bus.Subscribe(ctx, "vote.cast", func(context.Context, ports.EventEnvelope) error {
		return nil
	}); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for {
		bus.mu.RLock()
		remaining := len(bus.subscribers["vote.cast"])
		bus.mu.RUnlock()
		if remaining == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("subscriber still registered after cancellation")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := bus.Publish(context.Background(), "vote.cast", ports.EventEnvelope{EventID: "event-1"}); err != nil {
		t.Fatalf("publish after unsubscribe failed: %v", err)
	}
}
