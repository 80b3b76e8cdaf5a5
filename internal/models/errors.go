package models

import (
	"errors"
	"fmt"
)

var (
	// ErrRemoteUnavailable is returned when the task store answers with a non-2xx status
	ErrRemoteUnavailable = errors.New("remote task store unavailable")

	// ErrNotFound is returned when an update lookup matches no task
	ErrNotFound = errors.New("no matching task found")

	ErrMalformedModelOutput  = errors.New("could not parse language model output")
	ErrIterationLimitReached = errors.New("agent iteration limit reached")

	// ErrMissingConfiguration is the only error that aborts start-up
	ErrMissingConfiguration = errors.New("missing configuration")

	ErrInvalidInput = errors.New("invalid input")
)

// Markers prefixed to every user-facing result.
const (
	SuccessMarker = "✅"
	FailureMarker = "❌"
	TaskMarker    = "📌"
)

// RemoteError carries the raw response of a failed task store call.
type RemoteError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s failed with status %d: %s", e.Operation, e.StatusCode, e.Body)
}

func (e *RemoteError) Unwrap() error {
	return ErrRemoteUnavailable
}

// MalformedOutputError keeps the model output that could not be parsed so
// it can be replayed to the model with the reason.
type MalformedOutputError struct {
	Reason string
	Output string
}

func NewMalformedOutputError(reason string, output string) error {
	return &MalformedOutputError{Reason: reason, Output: output}
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMalformedModelOutput, e.Reason)
}

func (e *MalformedOutputError) Unwrap() error {
	return ErrMalformedModelOutput
}

// Failure renders a user-facing failure line.
func Failure(format string, args ...any) string {
	return fmt.Sprintf("%s %s", FailureMarker, fmt.Sprintf(format, args...))
}

// Success renders a user-facing success line.
func Success(format string, args ...any) string {
	return fmt.Sprintf("%s %s", SuccessMarker, fmt.Sprintf(format, args...))
}
