package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateElectionRequest struct {
	Name       string   `json:"name"`
	Candidates []string `json:"candidates"`
}

type ElectionResponse struct {
	ElectionID string `json:"election_id"`
	Owner      string `json:"owner"`
	Name       string `json:"name"`
	TotalVotes int    `json:"total_votes"`
	CreatedAt  string `json:"created_at,omitempty"`
}

type CandidateItem struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	VoteCount int    `json:"vote_count"`
}

type CandidatesResponse struct {
	Items []CandidateItem `json:"items"`
}

type VoterStatusResponse struct {
	AccountID       string `json:"account_id"`
	Authorized      bool   `json:"authorized"`
	HasVoted        bool   `json:"has_voted"`
	ChosenCandidate *int   `json:"chosen_candidate,omitempty"`
}

type CastVoteRequest struct {
	CandidateIndex int `json:"candidate_index"`
}

type TallyResponse struct {
	ElectionID string          `json:"election_id"`
	TotalVotes int             `json:"total_votes"`
	Items      []CandidateItem `json:"items"`
}

type AnalyticsResponse struct {
	AuthorizedVoters int             `json:"authorized_voters"`
	BallotsCast      int             `json:"ballots_cast"`
	TotalVotes       int             `json:"total_votes"`
	Turnout          float64         `json:"turnout"`
	Leaders          []CandidateItem `json:"leaders"`
}
