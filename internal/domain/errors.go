package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrNoSession     = errors.New("no active session")
	ErrInvalidTime   = errors.New("invalid time of day")
	ErrClosedHours   = errors.New("time falls in closed hours")
	ErrLateAdmission = errors.New("time falls in the late-admission window")
	ErrUnknownItem   = errors.New("price is not on the menu")
	ErrUnknownTax    = errors.New("unknown tax mode")
	ErrBadCommand    = errors.New("malformed command")

	ErrUnknownCategory = errors.New("unknown menu category")
)
