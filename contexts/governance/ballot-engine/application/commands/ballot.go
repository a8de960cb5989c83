package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "ballotbox/contexts/governance/ballot-engine/application"
	"ballotbox/contexts/governance/ballot-engine/domain/entities"
	domainerrors "ballotbox/contexts/governance/ballot-engine/domain/errors"
	"ballotbox/contexts/governance/ballot-engine/ports"
)

// CreateElectionCommand carries the constructor arguments supplied by the
// host driver. OwnerID is the externally authenticated constructing account.
type CreateElectionCommand struct {
	OwnerID        string
	Name           string
	CandidateNames []string
}

// AuthorizeVoterCommand grants one account the right to cast a ballot.
type AuthorizeVoterCommand struct {
	CallerID  string
	AccountID string
}

// CastVoteCommand records one ballot for the caller.
type CastVoteCommand struct {
	CallerID       string
	CandidateIndex int
}

// TallyCommand surfaces per-candidate results. Tallying is owner-only,
// repeatable, and does not close voting.
type TallyCommand struct {
	CallerID string
}

// BallotUseCase orchestrates the election state machine: single construction,
// owner-guarded authorization and tally, one ballot per authorized account,
// and audit event emission through the outbox.
type BallotUseCase struct {
	Elections ports.ElectionRepository
	Outbox    ports.OutboxWriter
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

// CreateElection constructs the one election this engine instance manages.
// A second construction fails with ErrElectionExists and changes nothing.
func (uc BallotUseCase) CreateElection(ctx context.Context, cmd CreateElectionCommand) (entities.Election, error) {
	logger := application.ResolveLogger(uc.Logger)
	logger.Info("election create processing started",
		"event", "ballot_election_create_started",
		"module", "governance/ballot-engine",
		"layer", "application",
		"owner", strings.TrimSpace(cmd.OwnerID),
		"name", strings.TrimSpace(cmd.Name),
		"candidate_count", len(cmd.CandidateNames),
	)

	now := uc.now()
	electionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Election{}, err
	}
	election, err := entities.NewElection(electionID, cmd.OwnerID, cmd.Name, cmd.CandidateNames, now)
	if err != nil {
		logger.Warn("election create validation failed",
			"event", "ballot_election_create_validation_failed",
			"module", "governance/ballot-engine",
			"layer", "application",
			"owner", strings.TrimSpace(cmd.OwnerID),
			"name", strings.TrimSpace(cmd.Name),
			"candidate_count", len(cmd.CandidateNames),
		)
		return entities.Election{}, err
	}

	if err := uc.Elections.CreateElection(ctx, election); err != nil {
		return entities.Election{}, err
	}
	if err := uc.appendBallotEvent(ctx, "election.created", election, now, map[string]any{
		"owner":           election.Owner,
		"name":            election.Name,
		"candidate_count": len(election.Candidates),
	}); err != nil {
		return entities.Election{}, err
	}

	logger.Info("election created",
		"event", "ballot_election_created",
		"module", "governance/ballot-engine",
		"layer", "application",
		"election_id", election.ElectionID,
		"owner", election.Owner,
		"name", election.Name,
		"candidate_count", len(election.Candidates),
	)
	return election, nil
}

// AuthorizeVoter idempotently sets the one-way authorized flag. Only the
// owner may grant; an audit event is appended only for a new grant.
func (uc BallotUseCase) AuthorizeVoter(ctx context.Context, cmd AuthorizeVoterCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	accountID := strings.TrimSpace(cmd.AccountID)
	logger.Info("voter authorize processing started",
		"event", "ballot_voter_authorize_started",
		"module", "governance/ballot-engine",
		"layer", "application",
		"caller_id", strings.TrimSpace(cmd.CallerID),
		"account_id", accountID,
	)
	if accountID == "" {
		logger.Warn("voter authorize validation failed",
			"event", "ballot_voter_authorize_validation_failed",
			"module", "governance/ballot-engine",
			"layer", "application",
			"caller_id", strings.TrimSpace(cmd.CallerID),
		)
		return domainerrors.ErrInvalidConfiguration
	}

	now := uc.now()
	newlyGranted := false
	election, err := uc.Elections.UpdateElection(ctx, func(election *entities.Election) error {
		if !election.IsOwner(cmd.CallerID) {
			return domainerrors.ErrUnauthorized
		}
		newlyGranted = election.AuthorizeVoter(accountID, now)
		return nil
	})
	if err != nil {
		logger.Warn("voter authorize rejected",
			"event", "ballot_voter_authorize_rejected",
			"module", "governance/ballot-engine",
			"layer", "application",
			"caller_id", strings.TrimSpace(cmd.CallerID),
			"account_id", accountID,
			"error", err.Error(),
		)
		return err
	}
	if newlyGranted {
		if err := uc.appendBallotEvent(ctx, "voter.authorized", election, now, map[string]any{
			"account_id": accountID,
		}); err != nil {
			return err
		}
	}

	logger.Info("voter authorized",
		"event", "ballot_voter_authorized",
		"module", "governance/ballot-engine",
		"layer", "application",
		"election_id", election.ElectionID,
		"account_id", accountID,
		"newly_granted", newlyGranted,
	)
	return nil
}

// CastVote applies one ballot atomically: voter flags, candidate count, and
// the running total commit together or not at all. Precondition failures are
// reported in contract order: already-voted, then not-authorized, then the
// candidate bounds check.
func (uc BallotUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	callerID := strings.TrimSpace(cmd.CallerID)
	logger.Info("vote cast processing started",
		"event", "ballot_vote_cast_started",
		"module", "governance/ballot-engine",
		"layer", "application",
		"caller_id", callerID,
		"candidate_index", cmd.CandidateIndex,
	)
	if callerID == "" {
		logger.Warn("vote cast validation failed",
			"event", "ballot_vote_cast_validation_failed",
			"module", "governance/ballot-engine",
			"layer", "application",
			"candidate_index", cmd.CandidateIndex,
		)
		return domainerrors.ErrNotAuthorized
	}

	now := uc.now()
	election, err := uc.Elections.UpdateElection(ctx, func(election *entities.Election) error {
		return election.CastVote(callerID, cmd.CandidateIndex, now)
	})
	if err != nil {
		logger.Warn("vote cast rejected",
			"event", "ballot_vote_cast_rejected",
			"module", "governance/ballot-engine",
			"layer", "application",
			"caller_id", callerID,
			"candidate_index", cmd.CandidateIndex,
			"error", err.Error(),
		)
		return err
	}
	if err := uc.appendBallotEvent(ctx, "vote.cast", election, now, map[string]any{
		"account_id":      callerID,
		"candidate_index": cmd.CandidateIndex,
		"candidate_name":  election.Candidates[cmd.CandidateIndex].Name,
		"total_votes":     election.TotalVotes,
	}); err != nil {
		return err
	}

	logger.Info("vote cast",
		"event", "ballot_vote_cast",
		"module", "governance/ballot-engine",
		"layer", "application",
		"election_id", election.ElectionID,
		"caller_id", callerID,
		"candidate_index", cmd.CandidateIndex,
		"total_votes", election.TotalVotes,
	)
	return nil
}

// Tally emits one observable result record per candidate in index order and
// returns the election snapshot the records were derived from, so callers can
// report totals consistent with the per-candidate counts. It reads live
// state: tallying neither locks nor closes the election, and repeated calls
// reflect votes cast in between.
func (uc BallotUseCase) Tally(ctx context.Context, cmd TallyCommand) (entities.Election, []entities.CandidateResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	logger.Info("tally processing started",
		"event", "ballot_tally_started",
		"module", "governance/ballot-engine",
		"layer", "application",
		"caller_id", strings.TrimSpace(cmd.CallerID),
	)

	election, err := uc.Elections.GetElection(ctx)
	if err != nil {
		return entities.Election{}, nil, err
	}
	if !election.IsOwner(cmd.CallerID) {
		logger.Warn("tally rejected",
			"event", "ballot_tally_rejected",
			"module", "governance/ballot-engine",
			"layer", "application",
			"caller_id", strings.TrimSpace(cmd.CallerID),
		)
		return entities.Election{}, nil, domainerrors.ErrUnauthorized
	}

	now := uc.now()
	results := election.Results()
	for _, result := range results {
		logger.Info("candidate result",
			"event", "ballot_candidate_result",
			"module", "governance/ballot-engine",
			"layer", "application",
			"election_id", election.ElectionID,
			"candidate_index", result.Index,
			"candidate_name", result.Name,
			"vote_count", result.VoteCount,
		)
		if err := uc.appendBallotEvent(ctx, "candidate.result", election, now, map[string]any{
			"candidate_index": result.Index,
			"candidate_name":  result.Name,
			"vote_count":      result.VoteCount,
		}); err != nil {
			return entities.Election{}, nil, err
		}
	}
	if err := uc.appendBallotEvent(ctx, "election.tallied", election, now, map[string]any{
		"total_votes":     election.TotalVotes,
		"candidate_count": len(results),
	}); err != nil {
		return entities.Election{}, nil, err
	}

	logger.Info("tally completed",
		"event", "ballot_tally_completed",
		"module", "governance/ballot-engine",
		"layer", "application",
		"election_id", election.ElectionID,
		"total_votes", election.TotalVotes,
		"candidate_count", len(results),
	)
	return election, results, nil
}

func (uc BallotUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

func (uc BallotUseCase) appendBallotEvent(
	ctx context.Context,
	eventType string,
	election entities.Election,
	occurredAt time.Time,
	data map[string]any,
) error {
	// Outbox is optional for pure read/test wiring, so nil is treated as no-op.
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope, err := newBallotEnvelope(eventID, eventType, election.ElectionID, occurredAt, data)
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, envelope)
}
