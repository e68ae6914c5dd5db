package dto

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/social-quotes/internal/domain"
	"github.com/jsamuelsen/social-quotes/internal/platform/logging"
)

// MapDomainError maps a domain error to an HTTP status code and error body.
//
// Validation failures (missing field, duplicate content) are 422 with
// the ValidationError reason; a store conflict from a lost dedup race
// is reported the same way. Credential failures are an opaque 401.
// Everything unexpected - including store failures - collapses to the
// generic 500 body; detail is logged by HandleError, never serialized.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	switch {
	case domain.IsValidation(err):
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return http.StatusUnprocessableEntity,
				NewValidationErrorResponse(validationErr.Message, validationErr.Field)
		}

		return http.StatusUnprocessableEntity,
			NewValidationErrorResponse(err.Error(), "")

	case domain.IsConflict(err):
		return http.StatusUnprocessableEntity,
			NewValidationErrorResponse("This quote already exists", "")

	case domain.IsUnauthorized(err):
		return http.StatusUnauthorized, NewUnauthorizedResponse()

	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(
			http.StatusNotFound,
			ReasonNotFound,
			err.Error(),
		)

	default:
		return http.StatusInternalServerError, NewInternalErrorResponse()
	}
}

// HandleError writes the mapped error response to the gin.Context,
// including the trace ID if a span is active.
func HandleError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)

	if traceID := GetTraceID(c); traceID != "" {
		errResp.TraceID = traceID
	}

	// Internal errors keep their detail server-side only.
	if status == http.StatusInternalServerError {
		logger := logging.FromContext(c.Request.Context())
		logger.Error("internal error",
			"error", err.Error(),
			"trace_id", errResp.TraceID,
		)
	}

	c.JSON(status, errResp)
}

// HandleBadRequest writes a 400 with the given message. Used for
// adapter-level faults such as the path/body identifier mismatch and
// malformed JSON bodies.
func HandleBadRequest(c *gin.Context, message string) {
	errResp := NewErrorResponse(http.StatusBadRequest, ReasonBadRequest, message)

	if traceID := GetTraceID(c); traceID != "" {
		errResp.TraceID = traceID
	}

	c.JSON(http.StatusBadRequest, errResp)
}

// GetTraceID extracts the OpenTelemetry trace ID when a span is active.
func GetTraceID(c *gin.Context) string {
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	return ""
}
