// Package common defines shared constants and sentinel errors used across
// client and server layers of the billing portal. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Shared-access errors.
	ErrInvalidPin       = errors.New("invalid pin")
	ErrInvalidPinFormat = errors.New("pin must be a numeric string of 4-6 digits")
	ErrSessionExpired   = errors.New("session expired")
	ErrInvalidToken     = errors.New("invalid token")

	// Invoice lifecycle errors.
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidAmount     = errors.New("invalid amount")

	// Transport errors. Read paths may retry once with backoff;
	// mutating paths must surface these as pending sync instead.
	ErrNetwork = errors.New("network error")

	// Scheduler errors.
	ErrTemplateLeaseHeld = errors.New("template lease held by another run")
)
