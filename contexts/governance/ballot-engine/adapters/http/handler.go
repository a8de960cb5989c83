package httpadapter

import (
	"context"
	"log/slog"

	"ballotbox/contexts/governance/ballot-engine/application/commands"
	"ballotbox/contexts/governance/ballot-engine/application/queries"
	"ballotbox/contexts/governance/ballot-engine/domain/entities"
	httptransport "ballotbox/contexts/governance/ballot-engine/transport/http"
)

type Handler struct {
	Ballots commands.BallotUseCase
	Results queries.ResultsUseCase
	Logger  *slog.Logger
}

// CreateElectionHandler godoc
// @Summary Construct the election
// @Description Creates the single election this engine instance manages. Fails once constructed.
// @Tags ballot-engine
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Constructing account identifier (becomes owner)"
// @Param request body httptransport.CreateElectionRequest true "Election name and ordered candidate names"
// @Success 200 {object} httptransport.ElectionResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/ballot/v1/election [post]
func (h Handler) CreateElectionHandler(
	ctx context.Context,
	ownerID string,
	req httptransport.CreateElectionRequest,
) (httptransport.ElectionResponse, error) {
	election, err := h.Ballots.CreateElection(ctx, commands.CreateElectionCommand{
		OwnerID:        ownerID,
		Name:           req.Name,
		CandidateNames: req.Candidates,
	})
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return httptransport.ElectionResponse{
		ElectionID: election.ElectionID,
		Owner:      election.Owner,
		Name:       election.Name,
		TotalVotes: election.TotalVotes,
	}, nil
}

// GetElectionHandler godoc
// @Summary Election summary
// @Description Returns name, owner, and the current ballot total.
// @Tags ballot-engine
// @Produce json
// @Success 200 {object} httptransport.ElectionResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/ballot/v1/election [get]
func (h Handler) GetElectionHandler(ctx context.Context) (httptransport.ElectionResponse, error) {
	info, err := h.Results.Election(ctx)
	if err != nil {
		return httptransport.ElectionResponse{}, err
	}
	return httptransport.ElectionResponse{
		ElectionID: info.ElectionID,
		Owner:      info.Owner,
		Name:       info.Name,
		TotalVotes: info.TotalVotes,
		CreatedAt:  info.CreatedAt,
	}, nil
}

// AuthorizeVoterHandler godoc
// @Summary Authorize an account to vote
// @Description Owner-only. Granting is one-way and idempotent.
// @Tags ballot-engine
// @Produce json
// @Param X-User-Id header string true "Caller account identifier"
// @Param account_id path string true "Account to authorize"
// @Success 200 {object} httptransport.VoterStatusResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/ballot/v1/voters/{account_id}/authorize [post]
func (h Handler) AuthorizeVoterHandler(ctx context.Context, callerID string, accountID string) (httptransport.VoterStatusResponse, error) {
	if err := h.Ballots.AuthorizeVoter(ctx, commands.AuthorizeVoterCommand{
		CallerID:  callerID,
		AccountID: accountID,
	}); err != nil {
		return httptransport.VoterStatusResponse{}, err
	}
	record, err := h.Results.VoterStatus(ctx, accountID)
	if err != nil {
		return httptransport.VoterStatusResponse{}, err
	}
	return mapVoterStatus(record), nil
}

// VoterStatusHandler godoc
// @Summary Voter roster record
// @Description Returns the authorized/voted flags; unseen accounts report the default record.
// @Tags ballot-engine
// @Produce json
// @Param account_id path string true "Account identifier"
// @Success 200 {object} httptransport.VoterStatusResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/ballot/v1/voters/{account_id} [get]
func (h Handler) VoterStatusHandler(ctx context.Context, accountID string) (httptransport.VoterStatusResponse, error) {
	record, err := h.Results.VoterStatus(ctx, accountID)
	if err != nil {
		return httptransport.VoterStatusResponse{}, err
	}
	return mapVoterStatus(record), nil
}

// CastVoteHandler godoc
// @Summary Cast a ballot
// @Description One ballot per authorized account, for one candidate index.
// @Tags ballot-engine
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Caller account identifier"
// @Param request body httptransport.CastVoteRequest true "Chosen candidate index"
// @Success 200 {object} httptransport.VoterStatusResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/ballot/v1/votes [post]
func (h Handler) CastVoteHandler(ctx context.Context, callerID string, req httptransport.CastVoteRequest) (httptransport.VoterStatusResponse, error) {
	if err := h.Ballots.CastVote(ctx, commands.CastVoteCommand{
		CallerID:       callerID,
		CandidateIndex: req.CandidateIndex,
	}); err != nil {
		return httptransport.VoterStatusResponse{}, err
	}
	record, err := h.Results.VoterStatus(ctx, callerID)
	if err != nil {
		return httptransport.VoterStatusResponse{}, err
	}
	return mapVoterStatus(record), nil
}

// CandidatesHandler godoc
// @Summary Candidate sequence with live counts
// @Description Candidates in construction order; counts reflect votes cast so far.
// @Tags ballot-engine
// @Produce json
// @Success 200 {object} httptransport.CandidatesResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/ballot/v1/candidates [get]
func (h Handler) CandidatesHandler(ctx context.Context) (httptransport.CandidatesResponse, error) {
	results, err := h.Results.Candidates(ctx)
	if err != nil {
		return httptransport.CandidatesResponse{}, err
	}
	return httptransport.CandidatesResponse{Items: mapResults(results)}, nil
}

// TallyHandler godoc
// @Summary Surface per-candidate results
// @Description Owner-only. Read-only and repeatable; tallying does not close voting.
// @Tags ballot-engine
// @Produce json
// @Param X-User-Id header string true "Caller account identifier"
// @Success 200 {object} httptransport.TallyResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/ballot/v1/tally [post]
func (h Handler) TallyHandler(ctx context.Context, callerID string) (httptransport.TallyResponse, error) {
	// TotalVotes and the per-candidate items come from the same snapshot so
	// the response stays internally consistent under concurrent voting.
	election, results, err := h.Ballots.Tally(ctx, commands.TallyCommand{CallerID: callerID})
	if err != nil {
		return httptransport.TallyResponse{}, err
	}
	return httptransport.TallyResponse{
		ElectionID: election.ElectionID,
		TotalVotes: election.TotalVotes,
		Items:      mapResults(results),
	}, nil
}

// AnalyticsHandler godoc
// @Summary Turnout analytics
// @Description Authorized count, ballots cast, turnout ratio, and current leaders.
// @Tags ballot-engine
// @Produce json
// @Success 200 {object} httptransport.AnalyticsResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/ballot/v1/analytics [get]
func (h Handler) AnalyticsHandler(ctx context.Context) (httptransport.AnalyticsResponse, error) {
	analytics, err := h.Results.Analytics(ctx)
	if err != nil {
		return httptransport.AnalyticsResponse{}, err
	}
	return httptransport.AnalyticsResponse{
		AuthorizedVoters: analytics.AuthorizedVoters,
		BallotsCast:      analytics.BallotsCast,
		TotalVotes:       analytics.TotalVotes,
		Turnout:          analytics.Turnout,
		Leaders:          mapResults(analytics.Leaders),
	}, nil
}

func mapVoterStatus(record entities.VoterRecord) httptransport.VoterStatusResponse {
	return httptransport.VoterStatusResponse{
		AccountID:       record.AccountID,
		Authorized:      record.Authorized,
		HasVoted:        record.HasVoted,
		ChosenCandidate: record.ChosenCandidate,
	}
}

func mapResults(results []entities.CandidateResult) []httptransport.CandidateItem {
	items := make([]httptransport.CandidateItem, 0, len(results))
	for _, result := range results {
		items = append(items, httptransport.CandidateItem{
			Index:     result.Index,
			Name:      result.Name,
			VoteCount: result.VoteCount,
		})
	}
	return items
}
