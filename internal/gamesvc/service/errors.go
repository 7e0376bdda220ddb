package service

import "errors"

// Client-input failures. Reported to the caller, never retried.
var (
	ErrInvalidBid             = errors.New("bid not allowed by game config")
	ErrSessionNotActive       = errors.New("session round is complete")
	ErrSessionNotFound        = errors.New("session not found")
	ErrConfigNotFound         = errors.New("game config not found")
	ErrTokenNotFound          = errors.New("embed token not found")
	ErrInsufficientPermission = errors.New("embed token lacks capability")
)

// Transient failures.
var (
	// ErrStorageConflict is a lost optimistic-concurrency race on the
	// session move counter after the retry budget ran out.
	ErrStorageConflict = errors.New("session advance conflict")

	// ErrStorageUnavailable means the move could not be durably
	// recorded. The move must not be reported as resolved.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
