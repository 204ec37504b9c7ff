package entity

import "errors"

var (
	// ErrDragInProgress is returned when a drag begins while another is active.
	ErrDragInProgress = errors.New("drag operation already in progress")
	// ErrNoActiveDrag is returned by operations that require an active drag.
	ErrNoActiveDrag = errors.New("no active drag operation")

	ErrTokenNotFound = errors.New("token not found")
	ErrTokenConsumed = errors.New("token already consumed")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenForged   = errors.New("token signature mismatch")

	// ErrStaleResponse is returned when a payload arrives for a gesture
	// that is no longer current.
	ErrStaleResponse = errors.New("stale payload response")
)
