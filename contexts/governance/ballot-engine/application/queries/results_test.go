package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	ballotengine "ballotbox/contexts/governance/ballot-engine"
	"ballotbox/contexts/governance/ballot-engine/application/commands"
	"ballotbox/contexts/governance/ballot-engine/domain/entities"
	domainerrors "ballotbox/contexts/governance/ballot-engine/domain/errors"
)

func seededModule(t *testing.T) ballotengine.Module {
	t.Helper()
	created := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	election, err := entities.NewElection("election-1", "owner-1", "Best Language", []string{"Rust", "Go"}, created)
	if err != nil {
		t.Fatalf("seed election failed: %v", err)
	}
	return ballotengine.NewInMemoryModule(&election, nil)
}

func TestElectionReadFailsBeforeConstruction(t *testing.T) {
	module := ballotengine.NewInMemoryModule(nil, nil)
	if _, err := module.Handler.Results.Election(context.Background()); !errors.Is(err, domainerrors.ErrElectionNotFound) {
		t.Fatalf("expected ErrElectionNotFound, got %v", err)
	}
}

func TestElectionInfoFormatsCreatedAt(t *testing.T) {
	module := seededModule(t)
	info, err := module.Handler.Results.Election(context.Background())
	if err != nil {
		t.Fatalf("election read failed: %v", err)
	}
	if info.CreatedAt != "2026-03-01T12:00:00Z" {
		t.Fatalf("unexpected created_at: %q", info.CreatedAt)
	}
	if info.ElectionID != "election-1" || info.Owner != "owner-1" || info.TotalVotes != 0 {
		t.Fatalf("unexpected election info: %+v", info)
	}
}

func TestVoterStatusDefaultsForUnknownAccount(t *testing.T) {
	module := seededModule(t)
	record, err := module.Handler.Results.VoterStatus(context.Background(), "  stranger  ")
	if err != nil {
		t.Fatalf("voter status read failed: %v", err)
	}
	if record.AccountID != "stranger" {
		t.Fatalf("expected trimmed account id, got %q", record.AccountID)
	}
	if record.Authorized || record.HasVoted || record.ChosenCandidate != nil {
		t.Fatalf("expected zero record, got %+v", record)
	}
}

func TestAnalyticsReflectsBallots(t *testing.T) {
	module := seededModule(t)
	ctx := context.Background()

	for _, account := range []string{"alice", "bob", "carol"} {
		if err := module.Handler.Ballots.AuthorizeVoter(ctx, commands.AuthorizeVoterCommand{
			CallerID:  "owner-1",
			AccountID: account,
		}); err != nil {
			t.Fatalf("authorize %s failed: %v", account, err)
		}
	}
	if err := module.Handler.Ballots.CastVote(ctx, commands.CastVoteCommand{CallerID: "alice", CandidateIndex: 1}); err != nil {
		t.Fatalf("cast vote failed: %v", err)
	}
	if err := module.Handler.Ballots.CastVote(ctx, commands.CastVoteCommand{CallerID: "bob", CandidateIndex: 1}); err != nil {
		t.Fatalf("cast vote failed: %v", err)
	}

	analytics, err := module.Handler.Results.Analytics(ctx)
	if err != nil {
		t.Fatalf("analytics read failed: %v", err)
	}
	if analytics.AuthorizedVoters != 3 || analytics.BallotsCast != 2 || analytics.TotalVotes != 2 {
		t.Fatalf("unexpected analytics: %+v", analytics)
	}
	if len(analytics.Leaders) != 1 || analytics.Leaders[0].Name != "Go" || analytics.Leaders[0].VoteCount != 2 {
		t.Fatalf("unexpected leaders: %+v", analytics.Leaders)
	}
}
