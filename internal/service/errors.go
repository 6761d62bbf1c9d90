package service

import "errors"

// Sentinel errors for the turn engine. Controllers map these onto HTTP
// statuses with errors.Is.
var (
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrForbidden        = errors.New("session belongs to another user")
	ErrSessionCompleted = errors.New("session already completed")
	ErrTurnLimitReached = errors.New("maximum turns reached")
	ErrMissingIDs       = errors.New("either sessionId or scenarioId is required")
	ErrEmptyMessage     = errors.New("message is required and cannot be empty")
	ErrBackendFailure   = errors.New("generative backend request failed")
)
