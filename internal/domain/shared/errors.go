package shared

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a DomainError. Callers branch on the kind, never on the message.
type ErrorKind string

const (
	KindNotFound            ErrorKind = "NOT_FOUND"
	KindInvalidTransition   ErrorKind = "INVALID_TRANSITION"
	KindPolicyViolation     ErrorKind = "POLICY_VIOLATION"
	KindValidation          ErrorKind = "VALIDATION_ERROR"
	KindConcurrencyConflict ErrorKind = "CONCURRENCY_CONFLICT"
)

// DomainError represents a domain-level error
type DomainError struct {
	Kind    ErrorKind      `json:"kind"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches another DomainError with the same code, so sentinels work with errors.Is
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// Retryable reports whether the operation that produced the error may be retried as-is
func (e *DomainError) Retryable() bool {
	return e.Kind == KindConcurrencyConflict
}

// WithDetail returns a copy of the error carrying an extra structured detail
func (e *DomainError) WithDetail(key string, value any) *DomainError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &DomainError{Kind: e.Kind, Code: e.Code, Message: e.Message, Details: details}
}

// NewDomainError creates a new domain error of the given kind
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// NewNotFoundError creates a NotFound error for the named entity
func NewNotFoundError(code, entity string, id fmt.Stringer) *DomainError {
	return NewDomainError(KindNotFound, code, fmt.Sprintf("%s not found: %s", entity, id)).
		WithDetail("entity", entity).
		WithDetail("id", id.String())
}

// NewInvalidTransitionError creates an InvalidTransition error naming both states
func NewInvalidTransitionError(code, message, current, target string) *DomainError {
	return NewDomainError(KindInvalidTransition, code, message).
		WithDetail("current", current).
		WithDetail("target", target)
}

// NewPolicyViolationError creates a PolicyViolation error
func NewPolicyViolationError(code, message string) *DomainError {
	return NewDomainError(KindPolicyViolation, code, message)
}

// NewValidationError creates a Validation error
func NewValidationError(code, message string) *DomainError {
	return NewDomainError(KindValidation, code, message)
}

// NewConcurrencyConflictError creates a ConcurrencyConflict error
func NewConcurrencyConflictError(message string) *DomainError {
	return NewDomainError(KindConcurrencyConflict, "CONCURRENCY_CONFLICT", message)
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError(KindNotFound, "NOT_FOUND", "Resource not found")
	ErrInvalidInput        = NewDomainError(KindValidation, "INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewConcurrencyConflictError("Resource was modified by another process")
	ErrInvalidState        = NewDomainError(KindInvalidTransition, "INVALID_STATE", "Operation not allowed in current state")
	ErrForbidden           = NewDomainError(KindPolicyViolation, "FORBIDDEN", "Not permitted to perform this action")
	ErrDuplicateRequest    = NewDomainError(KindPolicyViolation, "DUPLICATE_REQUEST", "Request has already been processed")
)

// KindOf returns the kind of a DomainError anywhere in err's chain, or "" if there is none
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// CodeOf returns the code of a DomainError anywhere in err's chain, or "" if there is none
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

func IsNotFound(err error) bool            { return KindOf(err) == KindNotFound }
func IsInvalidTransition(err error) bool   { return KindOf(err) == KindInvalidTransition }
func IsPolicyViolation(err error) bool     { return KindOf(err) == KindPolicyViolation }
func IsValidation(err error) bool          { return KindOf(err) == KindValidation }
func IsConcurrencyConflict(err error) bool { return KindOf(err) == KindConcurrencyConflict }
