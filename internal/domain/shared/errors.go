package shared

import "errors"

// DomainError represents a client-facing error with a stable code. The
// backend is the authority on business rules, so codes cover transport-level
// outcomes only; Message carries the backend's own wording when the response
// body had one.
type DomainError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"errors,omitempty"`
}

// FieldError describes a single rejected input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches errors by code so a backend-worded instance still compares equal
// to its category sentinel under errors.Is
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error category sentinels
var (
	ErrUnauthorized = NewDomainError("UNAUTHORIZED", "Session is invalid or expired")
	ErrForbidden    = NewDomainError("FORBIDDEN", "Not allowed to perform this action")
	ErrNotFound     = NewDomainError("NOT_FOUND", "Resource not found")
	ErrRateLimited  = NewDomainError("RATE_LIMITED", "Too many requests")
	ErrValidation   = NewDomainError("VALIDATION", "Request was rejected")
	ErrUnavailable  = NewDomainError("UNAVAILABLE", "Backend is unreachable")
	ErrUnknown      = NewDomainError("UNKNOWN", "Something went wrong")
)

// Message extracts a display-ready message from any error
func Message(err error) string {
	if err == nil {
		return ""
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}
