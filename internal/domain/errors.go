package domain

import (
	"errors"
	"fmt"
)

// ErrDeviceNotFound marks a detail lookup for an id absent from the
// loaded catalog. It is a user-visible state, not a fetch failure, and
// carries no retry affordance.
var ErrDeviceNotFound = errors.New("device not found")

// FetchErrorKind classifies a failed feed fetch for user messaging.
type FetchErrorKind string

const (
	FetchTimeout  FetchErrorKind = "timeout"
	FetchNotFound FetchErrorKind = "not-found"
	FetchServer   FetchErrorKind = "server"
	FetchNetwork  FetchErrorKind = "network"
	FetchGeneric  FetchErrorKind = "generic"
)

// FetchError is the typed error surfaced for any failed catalog fetch:
// network unreachable, non-2xx status or an unreadable body.
type FetchError struct {
	Kind       FetchErrorKind
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog fetch failed (%s, status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("catalog fetch failed (%s): %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Retryable reports whether showing a retry action makes sense for this
// failure. Not-found is a terminal state.
func (e *FetchError) Retryable() bool {
	return e.Kind != FetchNotFound
}
