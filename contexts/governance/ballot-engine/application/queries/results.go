package queries

import (
	"context"
	"strings"
	"time"

	"ballotbox/contexts/governance/ballot-engine/domain/entities"
	"ballotbox/contexts/governance/ballot-engine/ports"
)

// ResultsUseCase serves the read accessors. None of them has preconditions;
// every read reflects current state.
type ResultsUseCase struct {
	Elections ports.ElectionRepository
}

// ElectionInfo is the summary read model for the election header.
type ElectionInfo struct {
	ElectionID string
	Owner      string
	Name       string
	TotalVotes int
	CreatedAt  string
}

func (uc ResultsUseCase) Election(ctx context.Context) (ElectionInfo, error) {
	election, err := uc.Elections.GetElection(ctx)
	if err != nil {
		return ElectionInfo{}, err
	}
	return ElectionInfo{
		ElectionID: election.ElectionID,
		Owner:      election.Owner,
		Name:       election.Name,
		TotalVotes: election.TotalVotes,
		CreatedAt:  election.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

// Candidates returns the candidate sequence with live counts, in the exact
// order supplied at construction.
func (uc ResultsUseCase) Candidates(ctx context.Context) ([]entities.CandidateResult, error) {
	election, err := uc.Elections.GetElection(ctx)
	if err != nil {
		return nil, err
	}
	return election.Results(), nil
}

// VoterStatus returns one account's roster record; accounts never seen by
// authorize or vote yield the default record.
func (uc ResultsUseCase) VoterStatus(ctx context.Context, accountID string) (entities.VoterRecord, error) {
	election, err := uc.Elections.GetElection(ctx)
	if err != nil {
		return entities.VoterRecord{}, err
	}
	return election.Voter(strings.TrimSpace(accountID)), nil
}

func (uc ResultsUseCase) Analytics(ctx context.Context) (entities.ElectionAnalytics, error) {
	election, err := uc.Elections.GetElection(ctx)
	if err != nil {
		return entities.ElectionAnalytics{}, err
	}
	return election.Analytics(), nil
}
