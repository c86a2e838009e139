package service

import "errors"

// Domain errors. All are expected validation failures surfaced to the
// caller unchanged; none are retried here.
var (
	ErrEventNotFound      = errors.New("event not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionFull        = errors.New("session is at maximum capacity")
	ErrAlreadyRegistered  = errors.New("user already has an active registration for this session")
	ErrNotRegistered      = errors.New("user has no active registration for this session")
	ErrInvalidTransition  = errors.New("event status transition not allowed")
	ErrEventHasNoSessions = errors.New("event must have at least one session to be published")
)
