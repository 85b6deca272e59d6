package models

import "errors"

// Error taxonomy shared by services and handlers.
var (
	ErrInvalidPayload  = errors.New("invalid command payload")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrPersistence     = errors.New("persistence error")
	ErrNetwork         = errors.New("network error")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation error")
	ErrSessionActive   = errors.New("a workout session is already active")
	ErrNoActiveSession = errors.New("no active workout session")
	ErrTimerNotRunning = errors.New("rest timer is not running")
)
