package errors

import "errors"

var (
	ErrInvalidConfiguration = errors.New("invalid election configuration")
	ErrUnauthorized         = errors.New("caller is not the election owner")
	ErrNotAuthorized        = errors.New("account is not authorized to vote")
	ErrAlreadyVoted         = errors.New("account has already voted")
	ErrInvalidCandidate     = errors.New("candidate index is out of range")
	ErrElectionNotFound     = errors.New("election has not been constructed")
	ErrElectionExists       = errors.New("election is already constructed")
)
