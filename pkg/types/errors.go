package types

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrRequestNotFound = errors.New("donation request not found")

	// ErrRequestUnavailable is returned when a donate commit loses the race:
	// the request was no longer pending (or already had a donor) at write time.
	ErrRequestUnavailable = errors.New("request no longer available")

	// ErrDuplicateTransaction is returned when a fund is recorded twice with
	// the same payment provider transaction id.
	ErrDuplicateTransaction = errors.New("transaction already recorded")

	ErrEmailTaken = errors.New("email already registered")
)
