package domain

import "errors"

// Validation errors returned by the record constructors.
var (
	ErrInvalidFamily      = errors.New("family id is required")
	ErrInvalidUser        = errors.New("user id is required")
	ErrInvalidName        = errors.New("name is required")
	ErrInvalidRoundNumber = errors.New("round number must be at least 1")
	ErrInvalidRound       = errors.New("round id is required")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrNegativeBalance    = errors.New("balance must not be negative")
)
