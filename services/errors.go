package services

import (
	"errors"
	"fmt"
	"greenroute-backend/models"
)

var (
	// ErrInvalidTransition is returned when an event is not allowed from the job's current status
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrValidation is returned for missing or malformed input
	ErrValidation = errors.New("validation failed")
	// ErrPersistence wraps a rejected backend write; the in-memory change has been reverted
	ErrPersistence = errors.New("persistence failure")
	// ErrExternalServiceUnavailable signals an absent AI or weather collaborator. Callers fall back, never surface it.
	ErrExternalServiceUnavailable = errors.New("external service unavailable")
	// ErrJobNotFound is returned when a job does not exist in the caller's organization
	ErrJobNotFound = errors.New("job not found")
)

type JobEvent string

const (
	EventCreate        JobEvent = "create"
	EventAccept        JobEvent = "accept"
	EventReject        JobEvent = "reject"
	EventComplete      JobEvent = "complete"
	EventCancel        JobEvent = "cancel"
	EventRainDelay     JobEvent = "rain_delay"
	EventTogglePayment JobEvent = "toggle_payment"
	EventStartTimer    JobEvent = "start_timer"
	EventStopTimer     JobEvent = "stop_timer"
	EventReorder       JobEvent = "reorder"
	EventEdit          JobEvent = "edit"
)

// TransitionError names the status a job was in and the event that was refused
type TransitionError struct {
	JobID   string
	Current models.JobStatus
	Event   JobEvent
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s job %s in status %s", e.Event, e.JobID, e.Current)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ValidationError reports the offending field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func newValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}
