package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nilehomes/landing/internal/pkg/apperr"
)

const internalErrorMessage = "Internal server error"

// OK sends a 200 response.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message sends a 200 response carrying only a message.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func abort(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"ok": 0, "code": code, "message": message})
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, message)
}

// ValidationFailed sends a 400 error response listing every failed field.
func ValidationFailed(c *gin.Context, fields []apperr.FieldError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"ok":      0,
		"code":    http.StatusBadRequest,
		"message": "Validation failed",
		"errors":  fields,
	})
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context, message string) {
	abort(c, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 error response.
func Forbidden(c *gin.Context, message string) {
	abort(c, http.StatusForbidden, message)
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, message string) {
	abort(c, http.StatusNotFound, message)
}

// Conflict sends a 409 error response.
func Conflict(c *gin.Context, message string) {
	abort(c, http.StatusConflict, message)
}

// TooManyRequests sends a 429 error response.
func TooManyRequests(c *gin.Context, message string) {
	abort(c, http.StatusTooManyRequests, message)
}

// ServiceUnavailable sends a 503 error response.
func ServiceUnavailable(c *gin.Context, message string) {
	abort(c, http.StatusServiceUnavailable, message)
}

// InternalError records err on the context for the request logger and sends a generic 500.
func InternalError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	abort(c, http.StatusInternalServerError, internalErrorMessage)
}

// Error translates a service error into its HTTP response.
func Error(c *gin.Context, err error) {
	var verr *apperr.ValidationError
	switch {
	case errors.As(err, &verr):
		ValidationFailed(c, verr.Fields)
	case errors.Is(err, apperr.ErrNotFound):
		NotFound(c, apperr.Message(err, apperr.ErrNotFound))
	case errors.Is(err, apperr.ErrConflict):
		Conflict(c, apperr.Message(err, apperr.ErrConflict))
	case errors.Is(err, apperr.ErrNoOpUpdate):
		BadRequest(c, "No fields to update")
	case errors.Is(err, apperr.ErrInvalidCredentials):
		Unauthorized(c, "Invalid credentials")
	case errors.Is(err, apperr.ErrUnauthorized):
		Unauthorized(c, "Access token required")
	case errors.Is(err, apperr.ErrForbidden):
		Forbidden(c, "Invalid or expired token")
	case errors.Is(err, apperr.ErrRejected):
		BadRequest(c, "Unable to submit request")
	default:
		InternalError(c, err)
	}
}
