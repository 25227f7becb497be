package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates caller-supplied input failed a precondition.
	// The operation did not proceed and no state was changed.
	ValidationError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }

func (e *NotFoundError) StatusCode() int   { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

// Is allows errors.Is() to match the sentinel counterparts
func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound              = errors.New("not found")
	ErrConflict              = errors.New("already exists")
	ErrValidation            = errors.New("validation failed")
	ErrAssistanceUnavailable = errors.New("assistance unavailable")
)

// ConflictError represents a name collision with an existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (drive, file)
	ResourceID   string // ID of the existing/conflicting resource
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) StatusCode() int { return http.StatusConflict }

// Is allows errors.Is() to match against ErrConflict and ErrValidation.
// A conflict is a failed precondition, so it is also a validation error.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict || target == ErrValidation
}

// CollaboratorError reports a failed call to the AI text collaborator
// (network, auth or provider failure). Never retried automatically.
type CollaboratorError struct {
	Operation string // e.g. "generate_readme", "assist:refactor"
	Err       error  // Underlying provider error
}

func (e *CollaboratorError) Error() string {
	return "assistance unavailable: " + e.Operation + " failed"
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

func (e *CollaboratorError) StatusCode() int { return http.StatusBadGateway }

// Is allows errors.Is() to match against ErrAssistanceUnavailable
func (e *CollaboratorError) Is(target error) bool {
	return target == ErrAssistanceUnavailable
}
