package entities

import (
	"strings"
	"time"

	domainerrors "ballotbox/contexts/governance/ballot-engine/domain/errors"
)

// Candidate is identified by its position in the election's candidate
// sequence. The position is stable for the life of the election; only
// VoteCount mutates.
type Candidate struct {
	Name      string
	VoteCount int
}

// VoterRecord tracks the two monotone flags per account. Absent accounts
// behave as the zero record (unauthorized, unvoted).
type VoterRecord struct {
	AccountID       string
	Authorized      bool
	HasVoted        bool
	ChosenCandidate *int
}

// Election is the full ballot state: owner, fixed candidate sequence,
// voter roster, and the running total. One election per engine instance.
type Election struct {
	ElectionID string
	Owner      string
	Name       string
	Candidates []Candidate
	TotalVotes int
	Voters     map[string]VoterRecord
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewElection builds the single election aggregate. The candidate list and
// every candidate name must be non-empty, and the owner identity must be
// supplied by the host.
func NewElection(electionID string, owner string, name string, candidateNames []string, now time.Time) (Election, error) {
	owner = strings.TrimSpace(owner)
	name = strings.TrimSpace(name)
	if owner == "" || name == "" || len(candidateNames) == 0 {
		return Election{}, domainerrors.ErrInvalidConfiguration
	}
	candidates := make([]Candidate, 0, len(candidateNames))
	for _, candidateName := range candidateNames {
		candidateName = strings.TrimSpace(candidateName)
		if candidateName == "" {
			return Election{}, domainerrors.ErrInvalidConfiguration
		}
		candidates = append(candidates, Candidate{Name: candidateName})
	}
	return Election{
		ElectionID: strings.TrimSpace(electionID),
		Owner:      owner,
		Name:       name,
		Candidates: candidates,
		Voters:     make(map[string]VoterRecord),
		CreatedAt:  now.UTC(),
		UpdatedAt:  now.UTC(),
	}, nil
}

// Voter returns the record for an account, or the default record when the
// roster has no entry for it.
func (e Election) Voter(accountID string) VoterRecord {
	accountID = strings.TrimSpace(accountID)
	if record, ok := e.Voters[accountID]; ok {
		return record
	}
	return VoterRecord{AccountID: accountID}
}

// IsOwner reports whether the caller is the election owner.
func (e Election) IsOwner(accountID string) bool {
	return strings.TrimSpace(accountID) == e.Owner
}

// AuthorizeVoter grants the one-way voting permission. Granting twice is a
// no-op; the returned flag reports whether the grant was new.
func (e *Election) AuthorizeVoter(accountID string, now time.Time) bool {
	record := e.Voter(accountID)
	if record.Authorized {
		return false
	}
	record.Authorized = true
	e.Voters[record.AccountID] = record
	e.UpdatedAt = now.UTC()
	return true
}

// CastVote validates and applies one ballot. Precondition order is part of
// the observable contract: already-voted is reported before missing
// authorization, and the bounds check runs last.
func (e *Election) CastVote(accountID string, candidateIndex int, now time.Time) error {
	record := e.Voter(accountID)
	if record.HasVoted {
		return domainerrors.ErrAlreadyVoted
	}
	if !record.Authorized {
		return domainerrors.ErrNotAuthorized
	}
	if candidateIndex < 0 || candidateIndex >= len(e.Candidates) {
		return domainerrors.ErrInvalidCandidate
	}

	chosen := candidateIndex
	record.HasVoted = true
	record.ChosenCandidate = &chosen
	e.Voters[record.AccountID] = record
	e.Candidates[candidateIndex].VoteCount++
	e.TotalVotes++
	e.UpdatedAt = now.UTC()
	return nil
}

// CandidateResult is one tally line: candidate position, name, and the
// accumulated count.
type CandidateResult struct {
	Index     int
	Name      string
	VoteCount int
}

// Results returns the current tally in candidate-index order. Reading the
// results never locks or closes voting.
func (e Election) Results() []CandidateResult {
	results := make([]CandidateResult, 0, len(e.Candidates))
	for i, candidate := range e.Candidates {
		results = append(results, CandidateResult{
			Index:     i,
			Name:      candidate.Name,
			VoteCount: candidate.VoteCount,
		})
	}
	return results
}

// ElectionAnalytics is the turnout view derived from roster and tally state.
type ElectionAnalytics struct {
	AuthorizedVoters int
	BallotsCast      int
	TotalVotes       int
	Turnout          float64
	Leaders          []CandidateResult
}

// Analytics derives turnout and the current leading candidates. Ties share
// the lead; an election with no votes has no leaders.
func (e Election) Analytics() ElectionAnalytics {
	analytics := ElectionAnalytics{TotalVotes: e.TotalVotes}
	for _, record := range e.Voters {
		if record.Authorized {
			analytics.AuthorizedVoters++
		}
		if record.HasVoted {
			analytics.BallotsCast++
		}
	}
	if analytics.AuthorizedVoters > 0 {
		analytics.Turnout = float64(analytics.BallotsCast) / float64(analytics.AuthorizedVoters)
	}

	best := 0
	for _, candidate := range e.Candidates {
		if candidate.VoteCount > best {
			best = candidate.VoteCount
		}
	}
	if best == 0 {
		return analytics
	}
	for i, candidate := range e.Candidates {
		if candidate.VoteCount == best {
			analytics.Leaders = append(analytics.Leaders, CandidateResult{
				Index:     i,
				Name:      candidate.Name,
				VoteCount: candidate.VoteCount,
			})
		}
	}
	return analytics
}

// Clone deep-copies the aggregate so repository callers cannot alias the
// stored candidate slice or voter map.
func (e Election) Clone() Election {
	copied := e
	copied.Candidates = append([]Candidate(nil), e.Candidates...)
	copied.Voters = make(map[string]VoterRecord, len(e.Voters))
	for accountID, record := range e.Voters {
		if record.ChosenCandidate != nil {
			chosen := *record.ChosenCandidate
			record.ChosenCandidate = &chosen
		}
		copied.Voters[accountID] = record
	}
	return copied
}
