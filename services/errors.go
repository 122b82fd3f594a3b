package services

import "errors"

// Sentinel errors surfaced to the HTTP layer.
var (
	ErrMissingQuestion = errors.New("missing question")
	ErrInvalidPersona  = errors.New("unknown persona")
	ErrInvalidRounds   = errors.New("invalid roundsPlanned")
	ErrSessionNotFound = errors.New("session not found")
	ErrRoundExceeded   = errors.New("round exceeds planned rounds")
	ErrNoTurns         = errors.New("no turns found for this session")
)
