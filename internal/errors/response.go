package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard single-error response shape
type ErrorResponse struct {
	Error   string `json:"error"`   // error code, for client-side mapping
	Message string `json:"message"` // human-readable message
}

// ValidationResponse carries the ordered field-scoped error records of a
// failed mutation.
type ValidationResponse struct {
	Errors []*ValidationError `json:"errors"`
}

// RespondWithError renders a single-code error response
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// RespondWithValidationErrors renders a 400 with the mutation's error records
func RespondWithValidationErrors(c *gin.Context, errs []*ValidationError) {
	c.JSON(http.StatusBadRequest, ValidationResponse{Errors: errs})
}

// Shorthand responses for the common cases

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "You do not have permission to perform this action"
	}
	RespondWithError(c, http.StatusForbidden, AuthzForbidden, message)
}

func NotFoundResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Requested object was not found"
	}
	RespondWithError(c, http.StatusNotFound, ResourceNotFound, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "An internal error occurred. Please try again later"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}
