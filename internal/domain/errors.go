package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling.
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

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// StructuralError indicates a hierarchy invariant would be violated.
	// Reason is one of ErrCircularReference or ErrFolderNotEmpty.
	StructuralError struct {
		Message string
		Reason  error
	}

	// QuotaError indicates the local store is out of capacity.
	// Guidance carries user-actionable advice (what to delete, how to free space).
	QuotaError struct {
		Message  string
		Guidance string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *StructuralError) Error() string   { return e.Message }
func (e *QuotaError) Error() string {
	if e.Guidance != "" {
		return e.Message + ": " + e.Guidance
	}
	return e.Message
}

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *StructuralError) StatusCode() int   { return http.StatusConflict }
func (e *QuotaError) StatusCode() int        { return http.StatusInsufficientStorage }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("already exists")
	ErrValidation        = errors.New("validation failed")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrCircularReference = errors.New("circular folder reference")
	ErrFolderNotEmpty    = errors.New("folder is not empty")
	ErrQuotaExceeded     = errors.New("storage quota exceeded")

	// ErrRemoteUnavailable marks a failed cloud call. It is absorbed by the
	// unified store (logged, then local fallback) and never reaches callers
	// unless the local fallback also fails for its own reason.
	ErrRemoteUnavailable = errors.New("cloud storage unavailable")
)

// Is allows errors.Is() to match typed errors against their sentinels.
func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
func (e *QuotaError) Is(target error) bool      { return target == ErrQuotaExceeded }

func (e *StructuralError) Is(target error) bool { return target == e.Reason }

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (document, folder, project, persona, snippet)
	ResourceID   string // ID of the existing/conflicting resource
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
