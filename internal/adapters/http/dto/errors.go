// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import "net/http"

// ErrorResponse is the wire shape of every error body. It matches the
// API contract clients already depend on: a numeric code mirroring the
// status, a machine-readable reason, a human message, and - for
// field-level validation failures - the offending field in location.
type ErrorResponse struct {
	Code     int    `json:"code"`
	Reason   string `json:"reason,omitempty"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
	TraceID  string `json:"traceId,omitempty"`
}

// Machine-readable reasons.
const (
	// ReasonValidation marks client-fault input failures: missing
	// required fields, duplicate quote text.
	ReasonValidation = "ValidationError"

	// ReasonAuthorization marks credential failures. The body carries
	// nothing beyond the generic denial.
	ReasonAuthorization = "AuthorizationError"

	// ReasonBadRequest marks malformed requests, including the
	// path/body identifier mismatch on update.
	ReasonBadRequest = "BadRequest"

	// ReasonNotFound marks requests for an absent resource.
	ReasonNotFound = "NotFound"
)

// NewErrorResponse creates an error body for the given status and reason.
func NewErrorResponse(status int, reason, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    status,
		Reason:  reason,
		Message: message,
	}
}

// NewValidationErrorResponse creates a 422 validation body. location
// names the offending field and may be empty for record-level failures.
func NewValidationErrorResponse(message, location string) *ErrorResponse {
	return &ErrorResponse{
		Code:     http.StatusUnprocessableEntity,
		Reason:   ReasonValidation,
		Message:  message,
		Location: location,
	}
}

// NewInternalErrorResponse creates the generic 500 body. Detail stays
// in the server logs, never here.
func NewInternalErrorResponse() *ErrorResponse {
	return &ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: "Internal server error",
	}
}

// NewUnauthorizedResponse creates the generic 401 denial.
func NewUnauthorizedResponse() *ErrorResponse {
	return &ErrorResponse{
		Code:    http.StatusUnauthorized,
		Reason:  ReasonAuthorization,
		Message: "Unauthorized",
	}
}

// WithTraceID adds a trace ID to the error response.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}
