package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/scribe/internal/document/domain"
)

type errorPayload struct {
	Type    string `json:"type"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandlingMiddleware renders the last handler error after the chain
// runs. Handlers push errors with AbortWithError and never write error
// bodies themselves.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

// mapError translates the failure taxonomy into HTTP. Validation failures
// carry the offending field and a French message telling the caller what
// to fix.
func mapError(err error) (int, errorPayload) {
	derr := domain.AsError(err)
	if derr == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "une erreur interne est survenue",
		}
	}

	switch derr.Kind {
	case domain.KindMissingField, domain.KindInvalidFormat, domain.KindConstraintViolation:
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Field:   derr.Field,
			Message: derr.Message,
		}
	case domain.KindDuplicateNumber:
		return http.StatusConflict, errorPayload{
			Type:    string(derr.Kind),
			Field:   derr.Field,
			Message: derr.Message,
		}
	case domain.KindAllocationFailure, domain.KindStorageUnavailable:
		return http.StatusServiceUnavailable, errorPayload{
			Type:    string(derr.Kind),
			Message: derr.Message,
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "une erreur interne est survenue",
		}
	}
}
