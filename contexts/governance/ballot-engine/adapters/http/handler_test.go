package httpadapter

import (
	"context"
	"strconv"
	"testing"
	"time"

	"ballotbox/contexts/governance/ballot-engine/application/commands"
	"ballotbox/contexts/governance/ballot-engine/application/queries"
	"ballotbox/contexts/governance/ballot-engine/domain/entities"
)

// driftingElections advances the stored tally on every read, standing in for
// voters casting ballots between repository calls.
type driftingElections struct {
	election entities.Election
	reads    int
}

func (d *driftingElections) CreateElection(_ context.Context, election entities.Election) error {
	d.election = election.Clone()
	return nil
}

func (d *driftingElections) GetElection(_ context.Context) (entities.Election, error) {
	snapshot := d.election.Clone()
	d.reads++
	voter := "drive-by-" + strconv.Itoa(d.reads)
	d.election.AuthorizeVoter(voter, time.Now())
	if err := d.election.CastVote(voter, 0, time.Now()); err != nil {
		return entities.Election{}, err
	}
	return snapshot, nil
}

func (d *driftingElections) UpdateElection(_ context.Context, mutate func(*entities.Election) error) (entities.Election, error) {
	if err := mutate(&d.election); err != nil {
		return entities.Election{}, err
	}
	return d.election.Clone(), nil
}

func TestTallyResponseIsInternallyConsistent(t *testing.T) {
	election, err := entities.NewElection("election-1", "owner-1", "Best Language", []string{"Rust", "Go"}, time.Now().UTC())
	if err != nil {
		t.Fatalf("seed election failed: %v", err)
	}
	repo := &driftingElections{election: election}
	handler := Handler{
		Ballots: commands.BallotUseCase{Elections: repo},
		Results: queries.ResultsUseCase{Elections: repo},
	}

	resp, err := handler.TallyHandler(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}
	sum := 0
	for _, item := range resp.Items {
		sum += item.VoteCount
	}
	if resp.TotalVotes != sum {
		t.Fatalf("total %d disagrees with per-candidate sum %d", resp.TotalVotes, sum)
	}
	if repo.reads < 1 {
		t.Fatalf("repository was never read")
	}
}
