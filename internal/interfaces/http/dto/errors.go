package dto

import (
	"net/http"

	"github.com/erp/lpcore/internal/domain/shared"
)

// Transport-level error codes for failures that never reach a service
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInvalidJSON  = "INVALID_JSON"
	ErrCodeInvalidID    = "INVALID_ID"
	ErrCodeMissingActor = "MISSING_ACTOR"
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeNotFound     = "ROUTE_NOT_FOUND"
)

// kindStatus maps each domain error kind to its HTTP status
var kindStatus = map[shared.ErrorKind]int{
	shared.KindValidation:          http.StatusBadRequest,
	shared.KindNotFound:            http.StatusNotFound,
	shared.KindInvalidTransition:   http.StatusConflict,
	shared.KindConcurrencyConflict: http.StatusConflict,
	shared.KindPolicyViolation:     http.StatusUnprocessableEntity,
}

// codeStatus overrides the kind mapping for individual codes
var codeStatus = map[string]int{
	"FORBIDDEN":           http.StatusForbidden,
	"QA_CHANGE_FORBIDDEN": http.StatusForbidden,
	"DUPLICATE_REQUEST":   http.StatusConflict,
}

// StatusFor returns the HTTP status for a domain error
func StatusFor(err *shared.DomainError) int {
	if status, ok := codeStatus[err.Code]; ok {
		return status
	}
	if status, ok := kindStatus[err.Kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}
