package domain

import "errors"

var (
	// ErrInvalidDate is returned when a date string does not match YYYY-MM-DD.
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")

	// ErrNotYetAvailable signals a cache miss with a backfill request already
	// published. The caller should retry after a short delay.
	ErrNotYetAvailable = errors.New("news not yet available, backfill in progress")

	// ErrProviderNotFound means the external provider has no data for the date.
	ErrProviderNotFound = errors.New("provider has no news for date")

	// ErrProviderInvalidRequest means the provider rejected the request shape.
	ErrProviderInvalidRequest = errors.New("provider rejected request")

	// ErrProviderUnavailable covers timeouts, 5xx and network failures.
	ErrProviderUnavailable = errors.New("provider unavailable")
)
