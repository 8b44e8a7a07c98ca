package activity

import "errors"

var (
	ErrIdleLogNotFound      = errors.New("idle log not found")
	ErrIdleLogAlreadyClosed = errors.New("idle log already has an end time")
	ErrUnknownUser          = errors.New("user is not on the employee roster")
)
