package dto

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotation-service/internal/domain"
	"github.com/jsamuelsen/quotation-service/internal/platform/logging"
)

// TraceID returns the trace ID of the span in ctx, or "" when untraced.
func TraceID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return ""
}

// MapDomainError maps a domain error to an HTTP status and error envelope.
// Store and unknown failures get a fixed message so internals do not leak.
// A store call cut off by the request deadline is a 504 TIMEOUT.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	switch {
	case domain.IsValidation(err):
		resp := NewErrorResponse(ErrorCodeValidation, "request validation failed")

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && len(validationErr.Fields) > 0 {
			resp.Error.Details = validationErr.Fields
		}

		return http.StatusBadRequest, resp

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, NewErrorResponse(
			ErrorCodeTimeout,
			"the request did not complete in time",
		)

	case domain.IsPersistence(err):
		return http.StatusInternalServerError, NewErrorResponse(
			ErrorCodePersistence,
			"the quotation store could not complete the request",
		)

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(ErrorCodeUnavailable, err.Error())

	default:
		return http.StatusInternalServerError, NewErrorResponse(
			ErrorCodeInternal,
			"an internal error occurred",
		)
	}
}

// HandleError writes the envelope for err, adding the trace ID when the
// request is traced. Server-side failures are logged with their cause.
func HandleError(c *gin.Context, err error) {
	ctx := c.Request.Context()
	status, errResp := MapDomainError(err)
	errResp.TraceID = TraceID(ctx)

	if status >= http.StatusInternalServerError {
		logging.FromContext(ctx).Error("request failed",
			"error", err.Error(),
			"status", status,
			"trace_id", errResp.TraceID,
		)
	}

	c.JSON(status, errResp)
}

// RespondWithErrorCode writes an envelope for an adapter-level failure such
// as an undecodable body.
func RespondWithErrorCode(c *gin.Context, code, message string) {
	c.JSON(HTTPStatusFromCode(code), NewErrorResponse(code, message).WithTraceID(TraceID(c.Request.Context())))
}

// AbortWithErrorCode is RespondWithErrorCode for middleware; it stops the chain.
func AbortWithErrorCode(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, NewErrorResponse(code, message).WithTraceID(TraceID(c.Request.Context())))
}

// RespondWithValidationErrors writes a 400 with per-field messages.
func RespondWithValidationErrors(c *gin.Context, fieldErrors map[string]string) {
	c.JSON(http.StatusBadRequest, NewErrorResponseWithDetails(
		ErrorCodeValidation,
		"request validation failed",
		fieldErrors,
	).WithTraceID(TraceID(c.Request.Context())))
}
