// Package httpapi is the gin-based HTTP transport, grounded on the
// teacher project's internal/handlers, internal/middleware, and
// internal/errors packages, adapted to the errs.Kind taxonomy and to
// this domain's routes.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskforge/scheduler/internal/errs"
)

// APIError is the standardized error body, in the same shape as the
// teacher's internal/errors.APIError but keyed by the taxonomy Kind
// instead of a bespoke code string.
type APIError struct {
	Kind    errs.Kind   `json:"kind"`
	Message string      `json:"message"`
	Field   string      `json:"field,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// WriteError maps err to an HTTP status per SPEC_FULL.md §7 and writes
// the APIError body. Unrecognized errors degrade to 500.
func WriteError(c *gin.Context, err error) {
	var e *errs.Error
	if !errors.As(err, &e) {
		c.JSON(http.StatusInternalServerError, APIError{Kind: "INTERNAL_ERROR", Message: err.Error()})
		return
	}

	status := statusFor(e.Kind)
	body := APIError{Kind: e.Kind, Message: e.Message, Field: e.Field}
	if e.Kind == errs.KindPartialApply {
		body.Details = e.Outcomes
	}
	c.JSON(status, body)
}

func statusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation, errs.KindInvalidDuration:
		return http.StatusBadRequest
	case errs.KindNotFound, errs.KindNoTasksForDate:
		return http.StatusNotFound
	case errs.KindCycleDetected:
		return http.StatusConflict
	case errs.KindIllegalTransition:
		return http.StatusUnprocessableEntity
	case errs.KindStorageUnavailable:
		return http.StatusServiceUnavailable
	case errs.KindTimeout:
		return http.StatusGatewayTimeout
	case errs.KindPartialApply:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, APIError{Kind: errs.KindValidation, Message: message})
}

func unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, APIError{Kind: "UNAUTHORIZED", Message: message})
}
