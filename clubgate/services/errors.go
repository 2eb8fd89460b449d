package services

import (
	"errors"

	"github.com/vantage-club/clubgate/clubgate/token"
)

var (
	// ErrInvalidClaim mirrors the codec's verification failure: bad
	// signature, malformed token or past expiry.
	ErrInvalidClaim = token.ErrInvalidClaim

	// ErrClaimAlreadyUsed covers both a genuine replay and losing the race
	// against a concurrent redemption of the same token.
	ErrClaimAlreadyUsed = errors.New("claim has already been used")

	// ErrCollaboratorUnavailable marks transient failures of a load-bearing
	// collaborator (store, email). Best-effort side channels never raise it,
	// they log and move on.
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")

	ErrMembershipNotFound = errors.New("membership link not found")
)
