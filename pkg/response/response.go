package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avinash-a11y/insta-clone/pkg/apperr"
)

// Response represents a standard API response.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo contains error details.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success sends a successful response.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// Created sends a 201 created response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// Error sends an error response.
func Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	})
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, string(apperr.CodeInvalidArgument), message)
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, string(apperr.CodeUnauthenticated), message)
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, string(apperr.CodeNotFound), message)
}

// Conflict sends a 409 error response.
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, string(apperr.CodeConflict), message)
}

// Unavailable sends a 503 error response.
func Unavailable(c *gin.Context, message string) {
	Error(c, http.StatusServiceUnavailable, string(apperr.CodeUnavailable), message)
}

// InternalError sends a 500 error response.
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, string(apperr.CodeInternal), message)
}

// FromAppError maps a coded application error onto the wire. No-ops are
// reported as success with a changed=false marker so clients can suppress
// redundant feedback without treating them as failures.
func FromAppError(c *gin.Context, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		InternalError(c, "internal error")
		return
	}

	switch e.Code {
	case apperr.CodeInvalidArgument:
		BadRequest(c, e.Message)
	case apperr.CodeNotFound:
		NotFound(c, e.Message)
	case apperr.CodeNoOp:
		c.JSON(http.StatusOK, Response{
			Success: true,
			Data:    gin.H{"changed": false, "reason": e.Message},
		})
	case apperr.CodeConflict:
		Conflict(c, e.Message)
	case apperr.CodeUnauthenticated:
		Unauthorized(c, e.Message)
	case apperr.CodeUnavailable:
		Unavailable(c, e.Message)
	default:
		InternalError(c, e.Message)
	}
}
